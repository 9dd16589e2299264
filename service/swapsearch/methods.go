package swapsearch

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/tidwall/btree"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/core/types"
)

func (t *SwapSearch) SwapSize() uint64 {
	n := common.Address{}
	return t.tagSize(tagSwap, n[:])
}

func (t *SwapSearch) SwapList(index int) ([]SwapLog, error) {
	n := common.Address{}
	return t.swapList(tagSwap, n[:], index)
}

func (t *SwapSearch) AddressSwapSize(addr common.Address) uint64 {
	return t.tagSize(tagCaller, addr[:])
}

func (t *SwapSearch) AddressSwapList(addr common.Address, index int) ([]SwapLog, error) {
	return t.swapList(tagCaller, addr[:], index)
}

func (t *SwapSearch) TokenSwapSize(token common.Address) uint64 {
	return t.tagSize(tagToken, token[:])
}

func (t *SwapSearch) TokenSwapList(token common.Address, index int) ([]SwapLog, error) {
	return t.swapList(tagToken, token[:], index)
}

// RecentSwaps returns up to n of the latest indexed swaps, newest first.
func (t *SwapSearch) RecentSwaps(n int) []SwapLog {
	t.Lock()
	defer t.Unlock()

	logs := []SwapLog{}
	t.recent.Descend(func(item btree.Item) bool {
		if len(logs) >= n {
			return false
		}
		logs = append(logs, item.(*recentItem).log)
		return true
	})
	return logs
}

func (t *SwapSearch) tagSize(tag byte, scope []byte) uint64 {
	var aik addrIndexKey
	aik[0] = tag
	copy(aik[1:], scope)

	bs, _ := t.db.Get(aik[:], nil)
	if len(bs) != 8 {
		bs = make([]byte, 8)
	}
	return bin.Uint64(bs)
}

func (t *SwapSearch) swapList(tag byte, scope []byte, index int) ([]SwapLog, error) {
	size := t.tagSize(tag, scope)
	cacheKey := fmt.Sprintf("%d:%x:%d:%d", tag, scope, size, index)
	if v, err := t.pageCache.Get(cacheKey); err == nil {
		if logs, ok := v.([]SwapLog); ok {
			return logs, nil
		}
	}

	tlen, from, to := t.getRange(tag, scope, index)
	logs := make([]SwapLog, tlen)
	iter := t.db.NewIterator(&util.Range{Start: from, Limit: to}, nil)
	var i int
	for iter.Next() {
		i++
		data, err := bin.TypeReadAll(iter.Value(), 7)
		if err != nil {
			continue
		}
		method, ok := data[0].(string)
		if !ok {
			continue
		}
		txid, ok := data[1].([]byte)
		if !ok {
			continue
		}
		caller, ok := data[2].(common.Address)
		if !ok {
			continue
		}
		tokenIn, ok := data[3].(common.Address)
		if !ok {
			continue
		}
		tokenOut, ok := data[4].(common.Address)
		if !ok {
			continue
		}
		amountIn, ok := data[5].(*amount.Amount)
		if !ok {
			continue
		}
		amountOut, ok := data[6].(*amount.Amount)
		if !ok {
			continue
		}
		h, idx, err := types.ParseTransactionIDBytes(txid)
		if err != nil {
			continue
		}
		logs[int(tlen)-i] = SwapLog{
			TxID:      types.TransactionID(h, idx),
			Caller:    caller.String(),
			TokenIn:   tokenIn.String(),
			TokenOut:  tokenOut.String(),
			AmountIn:  amountIn.String(),
			AmountOut: amountOut.String(),
			Method:    method,
		}
	}
	iter.Release()

	t.pageCache.Set(cacheKey, logs)
	return logs, nil
}

func (t *SwapSearch) getRange(b byte, From []byte, index int) (uint64, []byte, []byte) {
	var aik addrIndexKey
	aik[0] = b
	copy(aik[1:], From)
	return t._getRange(aik[:], index)
}

func (t *SwapSearch) _getRange(aik []byte, index int) (uint64, []byte, []byte) {
	bs, _ := t.db.Get(aik, nil)
	if len(bs) != 8 {
		bs = make([]byte, 8)
	}
	s := bin.Uint64(bs)
	_to := int64(s) - int64(index*20) + 1
	if _to < 1 {
		_to = 1
	}
	_from := int64(s) - int64(index*20) - 20 + 1
	if _from < 1 {
		_from = 1
	}
	from := uint64(_from)
	to := uint64(_to)
	tlen := to - from
	bs = make([]byte, 8)
	binary.BigEndian.PutUint64(bs, from)
	fromKey := append(aik, bs...)
	binary.BigEndian.PutUint64(bs, to)
	toKey := append(aik, bs...)
	return tlen, fromKey, toKey
}

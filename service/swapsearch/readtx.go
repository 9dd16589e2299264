package swapsearch

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tidwall/btree"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/core/types"
)

type addrIndexKey [21]byte

type recentItem struct {
	seq uint64
	log SwapLog
}

func (i *recentItem) Less(item btree.Item, ctx interface{}) bool {
	return i.seq < item.(*recentItem).seq
}

// OnTxConnected indexes a relay swap transaction after its block sticks.
// Non-relay and non-swap transactions are ignored.
func (t *SwapSearch) OnTxConnected(height uint32, TXID string, tx *types.Transaction, ens []*types.Event) {
	if tx.To != t.relay {
		return
	}
	switch tx.Method {
	case "Swap", "SwapPair", "SwapPairReverse":
	default:
		return
	}

	h, index, err := types.ParseTransactionID(TXID)
	if err != nil {
		plog("CannotParseTxID", TXID, err)
		return
	}
	txidBytes := types.TransactionIDBytes(h, index)

	args, err := bin.TypeReadAll(tx.Args, -1)
	if err != nil {
		plog("CannotReadArgs", TXID, err)
		return
	}

	var tokenIn, tokenOut common.Address
	var amountIn *amount.Amount
	switch tx.Method {
	case "Swap":
		if len(args) < 3 {
			plog("InvalidSwapArgs", TXID)
			return
		}
		var ok bool
		if tokenIn, ok = args[0].(common.Address); !ok {
			return
		}
		if tokenOut, ok = args[1].(common.Address); !ok {
			return
		}
		if amountIn, ok = args[2].(*amount.Amount); !ok {
			return
		}
	case "SwapPair":
		if len(args) < 1 {
			plog("InvalidSwapArgs", TXID)
			return
		}
		var ok bool
		if amountIn, ok = args[0].(*amount.Amount); !ok {
			return
		}
		tokenIn, tokenOut = t.pairIn, t.pairOut
	case "SwapPairReverse":
		if len(args) < 1 {
			plog("InvalidSwapArgs", TXID)
			return
		}
		var ok bool
		if amountIn, ok = args[0].(*amount.Amount); !ok {
			return
		}
		tokenIn, tokenOut = t.pairOut, t.pairIn
	}

	amountOut := amount.NewAmount(0, 0)
	for _, en := range ens {
		if en.Type == types.EventTagTxMsg {
			is, err := bin.TypeReadAll(en.Result, 1)
			if err != nil {
				continue
			}
			if am, ok := is[0].(*amount.Amount); ok {
				amountOut = am
				break
			}
		}
	}

	t.Lock()
	defer t.Unlock()

	batch := new(leveldb.Batch)
	indexMap := map[addrIndexKey]uint64{}
	empty := common.Address{}

	t.Push(indexMap, batch, addrKey(tagSwap, empty[:]), tx.Method, txidBytes, tx.From, tokenIn, tokenOut, amountIn, amountOut)
	t.Push(indexMap, batch, addrKey(tagCaller, tx.From[:]), tx.Method, txidBytes, tx.From, tokenIn, tokenOut, amountIn, amountOut)
	t.Push(indexMap, batch, addrKey(tagToken, tokenIn[:]), tx.Method, txidBytes, tx.From, tokenIn, tokenOut, amountIn, amountOut)
	t.Push(indexMap, batch, addrKey(tagToken, tokenOut[:]), tx.Method, txidBytes, tx.From, tokenIn, tokenOut, amountIn, amountOut)

	for k, v := range indexMap {
		batch.Put(k[:], bin.Uint64Bytes(v))
	}
	if err := t.db.Write(batch, nil); err != nil {
		panic(err)
	}
	if t.Height() < height {
		t.setHeight(height)
	}

	t.recentSeq++
	t.recent.ReplaceOrInsert(&recentItem{
		seq: t.recentSeq,
		log: SwapLog{
			TxID:      TXID,
			Caller:    tx.From.String(),
			TokenIn:   tokenIn.String(),
			TokenOut:  tokenOut.String(),
			AmountIn:  amountIn.String(),
			AmountOut: amountOut.String(),
			Method:    tx.Method,
		},
	})
	for t.recent.Len() > recentLimit {
		var oldest btree.Item
		t.recent.Ascend(func(item btree.Item) bool {
			oldest = item
			return false
		})
		if oldest == nil {
			break
		}
		t.recent.Delete(oldest)
	}
}

func addrKey(tag byte, addrs ...[]byte) []byte {
	bs := []byte{}
	bs = append(bs, tag)
	for _, v := range addrs {
		bs = append(bs, v...)
	}
	return bs
}

func (t *SwapSearch) Push(indexMap map[addrIndexKey]uint64, batch *leveldb.Batch, tag []byte, args ...interface{}) {
	value := bin.TypeWriteAll(args...)
	var aik addrIndexKey
	copy(aik[:], tag)
	var index uint64
	var ok bool
	if index, ok = indexMap[aik]; !ok {
		bs, _ := t.db.Get(aik[:], nil)
		if len(bs) != 8 {
			bs = make([]byte, 8)
		}
		index = bin.Uint64(bs)
	}
	index++
	indexMap[aik] = index
	bs := make([]byte, 8)
	binary.BigEndian.PutUint64(bs, index)
	batch.Put(append(tag, bs...), value)
}

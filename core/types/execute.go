package types

import (
	"reflect"
	"strings"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/pkg/errors"
)

// ExecuteContractTx runs the transaction on the context with the recovered
// signer and returns the events of the execution
func ExecuteContractTx(ctx *Context, tx *Transaction, signer common.Address, TXID string) ([]*Event, error) {
	ExecLock.Lock()
	defer ExecLock.Unlock()

	_, i, err := ParseTransactionID(TXID)
	if err != nil {
		return nil, err
	}

	if tx.ChainID.Cmp(ctx.ChainID()) != 0 {
		return nil, errors.WithStack(ErrInvalidChainID)
	}

	if tx.UseSeq {
		seq := ctx.AddrSeq(signer)
		if seq != tx.Seq {
			return nil, errors.Errorf("invalid signer sequence signer %v seq %v, got %v", signer, seq, tx.Seq)
		}
		ctx.AddAddrSeq(signer)
	}
	tx.From = signer

	to, method, data, err := TxArg(tx)
	if err != nil {
		return nil, err
	}
	if method == "" {
		return nil, errors.New("method not given")
	}
	if !ctx.IsContract(to) {
		return nil, errors.WithStack(ErrNotExistContract)
	}
	cont, err := ctx.Contract(to)
	if err != nil {
		return nil, err
	}
	tx.Method = strings.ToUpper(string(method[0])) + method[1:]

	cc := ctx.ContractContext(cont, signer)
	intr := NewInteractor(ctx, cont, cc, TXID, true)
	cc.Exec = intr.Exec
	is, err := intr.Exec(cc, to, method, data)
	intr.Distroy()
	if err != nil {
		return nil, err
	}

	var result []interface{}
	for _, v := range is {
		if v != nil {
			if reflect.TypeOf(v).Kind() == reflect.Slice {
				s := reflect.ValueOf(v)
				if s.Len() > 0 {
					result = append(result, v)
				}
			} else {
				result = append(result, v)
			}
		}
	}

	var ens []*Event
	if len(result) > 0 {
		en := NewEvent(i, EventTagTxMsg, bin.TypeWriteAll(result...))
		ens = append(ens, en)
	}
	if len(intr.EventList()) > 0 {
		ens = append(ens, intr.EventList()...)
	}
	return ens, nil
}

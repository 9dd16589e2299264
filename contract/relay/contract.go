package relay

import (
	"bytes"
	"time"

	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/core/types"
)

type RelayContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RelayContract) Address() common.Address {
	return cont.addr
}

func (cont *RelayContract) Master() common.Address {
	return cont.master
}

func (cont *RelayContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *RelayContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &RelayContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Router == common.ZeroAddr {
		return errors.New("Relay: INVALID_ARGUMENT")
	}
	if data.PairPathKind > uint8(PathPacked) {
		return errors.New("Relay: INVALID_ARGUMENT")
	}
	hasA := data.PairTokenA != common.ZeroAddr
	hasB := data.PairTokenB != common.ZeroAddr
	if hasA != hasB {
		return errors.New("Relay: INVALID_ARGUMENT")
	}
	if hasA && data.PairTokenA == data.PairTokenB {
		return errors.New("Relay: INVALID_ARGUMENT")
	}
	cc.SetContractData([]byte{tagRouterAddress}, data.Router[:])
	if hasA {
		cc.SetContractData([]byte{tagPairTokenA}, data.PairTokenA[:])
		cc.SetContractData([]byte{tagPairTokenB}, data.PairTokenB[:])
	}
	cc.SetContractData([]byte{tagPairPathKind}, []byte{data.PairPathKind})
	cc.SetContractData([]byte{tagPairPoolSelector}, bin.Uint64Bytes(data.PairPoolSelector))
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *RelayContract) router(cc types.ContractLoader) common.Address {
	var addr common.Address
	copy(addr[:], cc.ContractData([]byte{tagRouterAddress}))
	return addr
}

func (cont *RelayContract) pairTokens(cc types.ContractLoader) (common.Address, common.Address) {
	var a, b common.Address
	copy(a[:], cc.ContractData([]byte{tagPairTokenA}))
	copy(b[:], cc.ContractData([]byte{tagPairTokenB}))
	return a, b
}

func (cont *RelayContract) pairPathKind(cc types.ContractLoader) PathKind {
	bs := cc.ContractData([]byte{tagPairPathKind})
	if len(bs) != 1 {
		return PathArray
	}
	return PathKind(bs[0])
}

func (cont *RelayContract) pairPoolSelector(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagPairPoolSelector})
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

func (cont *RelayContract) balanceOf(cc *types.ContractContext, token common.Address, owner common.Address) (*amount.Amount, error) {
	is, err := cc.Exec(cc, token, "BalanceOf", []interface{}{owner})
	if err != nil {
		return nil, err
	}
	if len(is) < 1 {
		return nil, errors.New("invalid balance result")
	}
	bal, ok := is[0].(*amount.Amount)
	if !ok {
		return nil, errors.New("invalid balance result")
	}
	return bal, nil
}

// swap is the single swap implementation every entry point funnels into:
// pull custody, approve the router, issue one encoded execute call and
// check the recipient balance delta against the caller minimum.
func (cont *RelayContract) swap(cc *types.ContractContext, req *SwapRequest) (*amount.Amount, error) {
	if req.AmountIn == nil || !req.AmountIn.IsPlus() {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	if req.AmountOutMin == nil || req.AmountOutMin.IsMinus() {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	if req.TokenIn == common.ZeroAddr || req.TokenOut == common.ZeroAddr || req.Recipient == common.ZeroAddr {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	if req.Deadline < cc.LastTimestamp()/uint64(time.Second) {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}

	router := cont.router(cc)

	if _, err := cc.Exec(cc, req.TokenIn, "TransferFrom", []interface{}{cc.From(), cont.addr, req.AmountIn}); err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, req.TokenIn, "Approve", []interface{}{router, req.AmountIn}); err != nil {
		return nil, err
	}

	commands, inputs, err := encodeInstruction(cont.addr, req)
	if err != nil {
		return nil, err
	}

	before, err := cont.balanceOf(cc, req.TokenOut, req.Recipient)
	if err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, router, "Execute", []interface{}{commands, inputs, req.Deadline}); err != nil {
		return nil, err
	}
	after, err := cont.balanceOf(cc, req.TokenOut, req.Recipient)
	if err != nil {
		return nil, err
	}

	amountOut := after.Sub(before)
	if amountOut.Less(req.AmountOutMin) {
		return nil, errors.New("Relay: SLIPPAGE_EXCEEDED")
	}
	return amountOut, nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *RelayContract) Swap(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64, pathKind uint8, poolSelector uint64) (*amount.Amount, error) {
	if pathKind > uint8(PathPacked) {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	return cont.swap(cc, &SwapRequest{
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Recipient:    recipient,
		Deadline:     deadline,
		PathKind:     PathKind(pathKind),
		PoolSelector: poolSelector,
	})
}

func (cont *RelayContract) SwapPair(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64) (*amount.Amount, error) {
	a, b := cont.pairTokens(cc)
	if a == common.ZeroAddr || b == common.ZeroAddr {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	return cont.swap(cc, &SwapRequest{
		TokenIn:      a,
		TokenOut:     b,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Recipient:    recipient,
		Deadline:     deadline,
		PathKind:     cont.pairPathKind(cc),
		PoolSelector: cont.pairPoolSelector(cc),
	})
}

func (cont *RelayContract) SwapPairReverse(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64) (*amount.Amount, error) {
	a, b := cont.pairTokens(cc)
	if a == common.ZeroAddr || b == common.ZeroAddr {
		return nil, errors.New("Relay: INVALID_ARGUMENT")
	}
	return cont.swap(cc, &SwapRequest{
		TokenIn:      b,
		TokenOut:     a,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Recipient:    recipient,
		Deadline:     deadline,
		PathKind:     cont.pairPathKind(cc),
		PoolSelector: cont.pairPoolSelector(cc),
	})
}

func (cont *RelayContract) RecoverStuckTokens(cc *types.ContractContext, token common.Address, recipient common.Address) error {
	if cc.From() != cont.Master() {
		return errors.New("Relay: FORBIDDEN")
	}
	if token == common.ZeroAddr || recipient == common.ZeroAddr {
		return errors.New("Relay: INVALID_ARGUMENT")
	}
	bal, err := cont.balanceOf(cc, token, cont.addr)
	if err != nil {
		return err
	}
	if bal.IsZero() {
		return errors.New("Relay: NOTHING_TO_RECOVER")
	}
	if _, err := cc.Exec(cc, token, "Transfer", []interface{}{recipient, bal}); err != nil {
		return err
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *RelayContract) Router(cc types.ContractLoader) common.Address {
	return cont.router(cc)
}

func (cont *RelayContract) PairTokens(cc types.ContractLoader) (common.Address, common.Address) {
	return cont.pairTokens(cc)
}

package router

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/core/types"
)

const (
	commandSimplePath = byte(0x08)
	commandExactInput = byte(0x00)
)

const feeDenominator = 10000

// RouterContract is a fixed rate execution engine: a registered pair is a
// directed rate plus a fee, not a simulated pool
type RouterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RouterContract) Address() common.Address {
	return cont.addr
}

func (cont *RouterContract) Master() common.Address {
	return cont.master
}

func (cont *RouterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *RouterContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	return nil
}

type pairInfo struct {
	Stable  bool
	FeeTier uint64
	RateNum uint64
	RateDen uint64
	FeeBps  uint64
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *RouterContract) pair(cc types.ContractLoader, tokenIn common.Address, tokenOut common.Address) (*pairInfo, error) {
	bs := cc.ContractData(makePairKey(tokenIn, tokenOut))
	if len(bs) == 0 {
		return nil, errors.New("Router: UNKNOWN_POOL")
	}
	is, err := bin.TypeReadAll(bs, 5)
	if err != nil {
		return nil, err
	}
	info := &pairInfo{}
	var ok bool
	if info.Stable, ok = is[0].(bool); !ok {
		return nil, errors.New("invalid pair data")
	}
	if info.FeeTier, ok = is[1].(uint64); !ok {
		return nil, errors.New("invalid pair data")
	}
	if info.RateNum, ok = is[2].(uint64); !ok {
		return nil, errors.New("invalid pair data")
	}
	if info.RateDen, ok = is[3].(uint64); !ok {
		return nil, errors.New("invalid pair data")
	}
	if info.FeeBps, ok = is[4].(uint64); !ok {
		return nil, errors.New("invalid pair data")
	}
	return info, nil
}

func (cont *RouterContract) balanceOf(cc *types.ContractContext, token common.Address, owner common.Address) (*amount.Amount, error) {
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

// quote prices amountIn through the registered rate and fee
func (info *pairInfo) quote(amountIn *amount.Amount) *amount.Amount {
	num := big.NewInt(0).Mul(amountIn.Int, big.NewInt(0).SetUint64(info.RateNum))
	num.Mul(num, big.NewInt(feeDenominator-int64(info.FeeBps)))
	den := big.NewInt(0).Mul(big.NewInt(0).SetUint64(info.RateDen), big.NewInt(feeDenominator))
	return &amount.Amount{Int: num.Div(num, den)}
}

type swapOrder struct {
	Recipient    common.Address
	AmountIn     *amount.Amount
	AmountOutMin *amount.Amount
	TokenIn      common.Address
	TokenOut     common.Address
	Stable       bool
	FeeTier      uint64
	Payer        common.Address
	exactInput   bool
}

func decodeSimplePath(cc *types.ContractContext, input []byte) (*swapOrder, error) {
	is, err := bin.TypeReadAll(input, 6)
	if err != nil {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	order := &swapOrder{}
	var ok bool
	if order.Recipient, ok = is[0].(common.Address); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	if order.AmountIn, ok = is[1].(*amount.Amount); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	if order.AmountOutMin, ok = is[2].(*amount.Amount); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	path, ok := is[3].([]common.Address)
	if !ok || len(path) != 2 {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	order.TokenIn = path[0]
	order.TokenOut = path[1]
	rawFlags, ok := is[4].([]interface{})
	if !ok || len(rawFlags) != 1 {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	if order.Stable, ok = rawFlags[0].(bool); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	payerIsCaller, ok := is[5].(bool)
	if !ok || payerIsCaller {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	order.Payer = cc.From()
	return order, nil
}

func decodeExactInput(cc *types.ContractContext, input []byte) (*swapOrder, error) {
	is, err := bin.TypeReadAll(input, 6)
	if err != nil {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	order := &swapOrder{exactInput: true}
	var ok bool
	if order.Recipient, ok = is[0].(common.Address); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	if order.AmountIn, ok = is[1].(*amount.Amount); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	if order.AmountOutMin, ok = is[2].(*amount.Amount); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	path, ok := is[3].([]byte)
	if !ok || len(path) != common.AddressLength*2+3 {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	copy(order.TokenIn[:], path[:common.AddressLength])
	order.FeeTier = uint64(path[common.AddressLength])<<16 |
		uint64(path[common.AddressLength+1])<<8 |
		uint64(path[common.AddressLength+2])
	copy(order.TokenOut[:], path[common.AddressLength+3:])
	if order.Payer, ok = is[4].(common.Address); !ok {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	useAlternate, ok := is[5].(bool)
	if !ok || useAlternate {
		return nil, errors.New("Router: INVALID_PAYLOAD")
	}
	return order, nil
}

func (cont *RouterContract) swapExec(cc *types.ContractContext, order *swapOrder) (*amount.Amount, error) {
	info, err := cont.pair(cc, order.TokenIn, order.TokenOut)
	if err != nil {
		return nil, err
	}
	if order.exactInput {
		if info.FeeTier != order.FeeTier {
			return nil, errors.New("Router: UNKNOWN_POOL")
		}
	} else {
		if info.Stable != order.Stable {
			return nil, errors.New("Router: UNKNOWN_POOL")
		}
	}

	if _, err := cc.Exec(cc, order.TokenIn, "TransferFrom", []interface{}{order.Payer, cont.addr, order.AmountIn}); err != nil {
		return nil, err
	}

	out := info.quote(order.AmountIn)

	bal, err := cont.balanceOf(cc, order.TokenOut, cont.addr)
	if err != nil {
		return nil, err
	}
	if bal.Less(out) {
		return nil, errors.New("Router: INSUFFICIENT_LIQUIDITY")
	}
	if _, err := cc.Exec(cc, order.TokenOut, "Transfer", []interface{}{order.Recipient, out}); err != nil {
		return nil, err
	}
	// the payload amountOutMin is left to the calling side check
	return out, nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *RouterContract) SetPair(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, stable bool, feeTier uint64, rateNum uint64, rateDen uint64, feeBps uint64) error {
	if cc.From() != cont.Master() {
		return errors.New("not router master")
	}
	if tokenIn == common.ZeroAddr || tokenOut == common.ZeroAddr || tokenIn == tokenOut {
		return errors.New("Router: INVALID_PAIR")
	}
	if rateNum == 0 || rateDen == 0 {
		return errors.New("Router: INVALID_PAIR")
	}
	if feeBps >= feeDenominator {
		return errors.New("Router: INVALID_PAIR")
	}
	cc.SetContractData(makePairKey(tokenIn, tokenOut), bin.TypeWriteAll(stable, feeTier, rateNum, rateDen, feeBps))
	return nil
}

// Execute runs exactly one encoded swap instruction against the pair table
func (cont *RouterContract) Execute(cc *types.ContractContext, commands []byte, inputs [][]byte, deadline uint64) (*amount.Amount, error) {
	if len(commands) != 1 {
		return nil, errors.New("Router: INVALID_COMMANDS")
	}
	if len(inputs) != 1 {
		return nil, errors.New("Router: INVALID_INPUTS")
	}
	if deadline < cc.LastTimestamp()/uint64(time.Second) {
		return nil, errors.New("Router: DEADLINE_PASSED")
	}

	var order *swapOrder
	var err error
	switch commands[0] {
	case commandSimplePath:
		order, err = decodeSimplePath(cc, inputs[0])
	case commandExactInput:
		order, err = decodeExactInput(cc, inputs[0])
	default:
		return nil, errors.New("Router: INVALID_COMMANDS")
	}
	if err != nil {
		return nil, err
	}
	return cont.swapExec(cc, order)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *RouterContract) Pair(cc types.ContractLoader, tokenIn common.Address, tokenOut common.Address) (bool, uint64, uint64, uint64, uint64, error) {
	info, err := cont.pair(cc, tokenIn, tokenOut)
	if err != nil {
		return false, 0, 0, 0, 0, err
	}
	return info.Stable, info.FeeTier, info.RateNum, info.RateDen, info.FeeBps, nil
}

package relay

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/core/types"
)

func (cont *RelayContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *RelayContract
}

func (f *front) Swap(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64, pathKind uint8, poolSelector uint64) (*amount.Amount, error) {
	return f.cont.Swap(cc, tokenIn, tokenOut, amountIn, amountOutMin, recipient, deadline, pathKind, poolSelector)
}

func (f *front) SwapPair(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64) (*amount.Amount, error) {
	return f.cont.SwapPair(cc, amountIn, amountOutMin, recipient, deadline)
}

func (f *front) SwapPairReverse(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, recipient common.Address, deadline uint64) (*amount.Amount, error) {
	return f.cont.SwapPairReverse(cc, amountIn, amountOutMin, recipient, deadline)
}

func (f *front) RecoverStuckTokens(cc *types.ContractContext, token common.Address, recipient common.Address) error {
	return f.cont.RecoverStuckTokens(cc, token, recipient)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Router(cc types.ContractLoader) common.Address {
	return f.cont.Router(cc)
}

func (f *front) PairTokens(cc types.ContractLoader) (common.Address, common.Address) {
	return f.cont.PairTokens(cc)
}

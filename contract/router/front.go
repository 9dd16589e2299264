package router

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/core/types"
)

func (cont *RouterContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *RouterContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) SetPair(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, stable bool, feeTier uint64, rateNum uint64, rateDen uint64, feeBps uint64) error {
	return f.cont.SetPair(cc, tokenIn, tokenOut, stable, feeTier, rateNum, rateDen, feeBps)
}

func (f *front) Execute(cc *types.ContractContext, commands []byte, inputs [][]byte, deadline uint64) (*amount.Amount, error) {
	return f.cont.Execute(cc, commands, inputs, deadline)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Pair(cc types.ContractLoader, tokenIn common.Address, tokenOut common.Address) (bool, uint64, uint64, uint64, uint64, error) {
	return f.cont.Pair(cc, tokenIn, tokenOut)
}

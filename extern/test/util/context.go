package util

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/core/types"
)

// TxListener receives every transaction executed through the TestContext
// after the enclosing block sticks
type TxListener func(height uint32, TXID string, tx *types.Transaction, ens []*types.Event)

type TestContext struct {
	Ctx        *types.Context
	MainToken  common.Address
	listeners  []TxListener
	lastEvents []*types.Event
}

func NewTestContext() *TestContext {
	tc := &TestContext{
		Ctx: types.NewGenesisContext(ChainID, Version),
	}

	tc.MainToken = tc.InitMainToken(Admin, ClassMap)

	err := tc.Sleep(60, nil, nil)
	if err != nil {
		panic(err)
	}
	return tc
}

func (tc *TestContext) RegisterTxListener(ln TxListener) {
	tc.listeners = append(tc.listeners, ln)
}

/////////// context ///////////
func GetCC(ctx *types.Context, contAddr common.Address, user common.Address) (*types.ContractContext, error) {

	cont, err := ctx.Contract(contAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, user)
	intr := types.NewInteractor(ctx, cont, cc, "000000000000", false)
	cc.Exec = intr.Exec

	return cc, nil
}

func Exec(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	cc, err := GetCC(ctx, contAddr, user)
	if err != nil {
		return nil, err
	}
	is, err := cc.Exec(cc, contAddr, methodName, args)
	return is, err
}

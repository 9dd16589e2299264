package util

import (
	"bytes"
	"io"
	"reflect"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/hash"
	"github.com/meverselabs/swaprelay/contract/token"
	"github.com/meverselabs/swaprelay/core/types"
)

func Owner(cc *types.ContractContext, cont common.Address) (common.Address, error) {
	is, err := cc.Exec(cc, cont, "Owner", []interface{}{})
	if err != nil {
		return common.ZeroAddr, err
	}
	return is[0].(common.Address), nil
}

func (tc *TestContext) DeployContract(contType interface{}, contArgs io.WriterTo) common.Address {
	var classID uint64
	{
		rt := reflect.TypeOf(contType)
		for rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		name := rt.Name()
		if pkgPath := rt.PkgPath(); len(pkgPath) > 0 {
			name = pkgPath + "." + name
		}
		h := hash.Hash([]byte(name))
		classID = bin.Uint64(h[len(h)-8:])
	}

	bf := &bytes.Buffer{}
	if _, err := contArgs.WriteTo(bf); err != nil {
		panic(err)
	}

	cont, err := tc.Ctx.DeployContract(AdminKey.PublicKey().Address(), classID, bf.Bytes())
	if err != nil {
		panic(err)
	}
	tc.MustSkipBlock(1)
	return cont.Address()
}

func (tc *TestContext) MakeToken(name string, symbol string, amt string) common.Address {
	tokenContArgs := &token.TokenContractConstruction{
		Name:   name,
		Symbol: symbol,
		InitialSupplyMap: map[common.Address]*amount.Amount{
			AdminKey.PublicKey().Address(): amount.MustParseAmount(amt),
		},
	}
	tokenContType := &token.TokenContract{}

	tokenAddr := tc.DeployContract(tokenContType, tokenContArgs)
	return tokenAddr
}

package swapsearch

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/service/apiserver"
)

func (t *SwapSearch) SetupApi() error {
	s, err := t.api.JRPC("swap")
	if err != nil {
		panic(err)
	}

	s.Set("version", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return "v1.0.0", nil
	})
	s.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return t.Height(), nil
	})
	s.Set("swapSize", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return t.SwapSize(), nil
	})
	s.Set("swaps", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		index, _ := arg.Int(0)
		return t.SwapList(index)
	})
	s.Set("addressSwapSize", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addrStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		return t.AddressSwapSize(common.HexToAddress(addrStr)), nil
	})
	s.Set("addressSwaps", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addrStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		index, err := arg.Int(1)
		if err != nil {
			return nil, err
		}
		return t.AddressSwapList(common.HexToAddress(addrStr), index)
	})
	s.Set("tokenSwapSize", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		return t.TokenSwapSize(common.HexToAddress(tokenStr)), nil
	})
	s.Set("tokenSwaps", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		tokenStr, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		index, err := arg.Int(1)
		if err != nil {
			return nil, err
		}
		return t.TokenSwapList(common.HexToAddress(tokenStr), index)
	})
	s.Set("recent", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		n, err := arg.Int(0)
		if err != nil || n <= 0 {
			n = 20
		}
		return t.RecentSwaps(n), nil
	})

	return nil
}

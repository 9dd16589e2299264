package app

import (
	"math/big"
	"sync"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/contract/relay"
	"github.com/meverselabs/swaprelay/contract/router"
	"github.com/meverselabs/swaprelay/contract/token"
	"github.com/meverselabs/swaprelay/core/types"
)

// GenesisConfig describes the initial state of a relay chain: the token
// pair, the router rate table and the relay binding
type GenesisConfig struct {
	Admin common.Address

	TokenAName   string
	TokenASymbol string
	TokenASupply *amount.Amount
	TokenBName   string
	TokenBSymbol string
	TokenBSupply *amount.Amount

	RouterLiquidity *amount.Amount
	Stable          bool
	FeeTier         uint64
	RateNum         uint64
	RateDen         uint64
	FeeBps          uint64

	PairPathKind     uint8
	PairPoolSelector uint64
}

// GenesisResult carries the deployed contract addresses
type GenesisResult struct {
	TokenA common.Address
	TokenB common.Address
	Router common.Address
	Relay  common.Address
}

var (
	classOnce sync.Once
	classMap  = map[string]uint64{}
)

// RegisterContractClass registers the contract types of the relay chain
func RegisterContractClass() map[string]uint64 {
	classOnce.Do(func() {
		registerClass(&token.TokenContract{}, "Token")
		registerClass(&router.RouterContract{}, "Router")
		registerClass(&relay.RelayContract{}, "Relay")
	})
	return classMap
}

func registerClass(cont types.Contract, className string) {
	ClassID, err := types.RegisterContractType(cont)
	if err != nil {
		panic(err)
	}
	classMap[className] = ClassID
}

// Genesis builds the initial chain state: the token pair, the funded router
// with both directions of the rate registered and the relay bound to the pair
func Genesis(ChainID *big.Int, Version uint16, cfg *GenesisConfig) (*types.Context, *GenesisResult, error) {
	RegisterContractClass()
	ctx := types.NewGenesisContext(ChainID, Version)
	res := &GenesisResult{}

	var err error
	if res.TokenA, err = deployToken(ctx, cfg.Admin, cfg.TokenAName, cfg.TokenASymbol, cfg.TokenASupply); err != nil {
		return nil, nil, err
	}
	if res.TokenB, err = deployToken(ctx, cfg.Admin, cfg.TokenBName, cfg.TokenBSymbol, cfg.TokenBSupply); err != nil {
		return nil, nil, err
	}

	contR, err := ctx.DeployContract(cfg.Admin, classMap["Router"], []byte{})
	if err != nil {
		return nil, nil, err
	}
	res.Router = contR.Address()

	if _, err := exec(ctx, cfg.Admin, res.Router, "SetPair", []interface{}{
		res.TokenA, res.TokenB, cfg.Stable, cfg.FeeTier, cfg.RateNum, cfg.RateDen, cfg.FeeBps,
	}); err != nil {
		return nil, nil, err
	}
	if _, err := exec(ctx, cfg.Admin, res.Router, "SetPair", []interface{}{
		res.TokenB, res.TokenA, cfg.Stable, cfg.FeeTier, cfg.RateDen, cfg.RateNum, cfg.FeeBps,
	}); err != nil {
		return nil, nil, err
	}

	if cfg.RouterLiquidity != nil && !cfg.RouterLiquidity.IsZero() {
		if _, err := exec(ctx, cfg.Admin, res.TokenA, "Transfer", []interface{}{res.Router, cfg.RouterLiquidity}); err != nil {
			return nil, nil, err
		}
		if _, err := exec(ctx, cfg.Admin, res.TokenB, "Transfer", []interface{}{res.Router, cfg.RouterLiquidity}); err != nil {
			return nil, nil, err
		}
	}

	relayArgs := &relay.RelayContractConstruction{
		Router:           res.Router,
		PairTokenA:       res.TokenA,
		PairTokenB:       res.TokenB,
		PairPathKind:     cfg.PairPathKind,
		PairPoolSelector: cfg.PairPoolSelector,
	}
	bs, _, err := bin.WriterToBytes(relayArgs)
	if err != nil {
		return nil, nil, err
	}
	contL, err := ctx.DeployContract(cfg.Admin, classMap["Relay"], bs)
	if err != nil {
		return nil, nil, err
	}
	res.Relay = contL.Address()

	return ctx, res, nil
}

func deployToken(ctx *types.Context, admin common.Address, name, symbol string, supply *amount.Amount) (common.Address, error) {
	tokenArgs := &token.TokenContractConstruction{
		Name:   name,
		Symbol: symbol,
		InitialSupplyMap: map[common.Address]*amount.Amount{
			admin: supply,
		},
	}
	bs, _, err := bin.WriterToBytes(tokenArgs)
	if err != nil {
		return common.Address{}, err
	}
	cont, err := ctx.DeployContract(admin, classMap["Token"], bs)
	if err != nil {
		return common.Address{}, err
	}
	return cont.Address(), nil
}

func exec(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	cont, err := ctx.Contract(contAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, user)
	intr := types.NewInteractor(ctx, cont, cc, "000000000000", false)
	cc.Exec = intr.Exec
	return cc.Exec(cc, contAddr, methodName, args)
}

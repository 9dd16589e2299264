package test

import (
	"testing"
	"time"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/key"
	"github.com/meverselabs/swaprelay/contract/relay"
	"github.com/meverselabs/swaprelay/contract/router"
	"github.com/meverselabs/swaprelay/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRelay(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swap Relay Suite")
}

var (
	alice, bob common.Address // fixture : alice trades, bob receives
	aliceKey   key.Key

	_TotalSupply = "1000000"
	_Liquidity   = amount.NewAmount(400000, 0)
	_Funding     = amount.NewAmount(10000, 0)
)

var _ = BeforeSuite(func() {
	alice, bob = util.Users[0], util.Users[1]
	aliceKey = util.UserKeys[0]
})

var _ = AfterSuite(func() {
	err := util.RemoveTestData()
	Expect(err).To(Succeed())
})

// pairConfig describes the single market the router carries during a test
type pairConfig struct {
	pathKind     uint8
	poolSelector uint64
	rateNum      uint64
	rateDen      uint64
	feeBps       uint64
}

// 1:1 volatile pair with a 30bp fee over the address list path
func defaultPair() *pairConfig {
	return &pairConfig{
		pathKind:     uint8(relay.PathArray),
		poolSelector: 0,
		rateNum:      1,
		rateDen:      1,
		feeBps:       30,
	}
}

type relayFixture struct {
	tc         *util.TestContext
	tokenA     common.Address
	tokenB     common.Address
	routerAddr common.Address
	relayAddr  common.Address
}

// newMarket deploys two tokens and a funded router with the pair registered
// in both directions. The reverse direction swaps the rate fraction.
func newMarket(cfg *pairConfig) *relayFixture {
	f := &relayFixture{tc: util.NewTestContext()}
	f.tokenA = f.tc.MakeToken("TokenA", "TKA", _TotalSupply)
	f.tokenB = f.tc.MakeToken("TokenB", "TKB", _TotalSupply)
	f.routerAddr = f.tc.DeployContract(&router.RouterContract{}, &router.RouterContractConstruction{})

	stable := cfg.pathKind == uint8(relay.PathArray) && cfg.poolSelector != 0
	feeTier := uint64(0)
	if cfg.pathKind == uint8(relay.PathPacked) {
		feeTier = cfg.poolSelector
	}
	f.tc.MustSendTx(util.AdminKey, f.routerAddr, "SetPair", f.tokenA, f.tokenB, stable, feeTier, cfg.rateNum, cfg.rateDen, cfg.feeBps)
	f.tc.MustSendTx(util.AdminKey, f.routerAddr, "SetPair", f.tokenB, f.tokenA, stable, feeTier, cfg.rateDen, cfg.rateNum, cfg.feeBps)
	f.tc.MustSendTx(util.AdminKey, f.tokenA, "Transfer", f.routerAddr, _Liquidity)
	f.tc.MustSendTx(util.AdminKey, f.tokenB, "Transfer", f.routerAddr, _Liquidity)
	return f
}

func setupRelay(cfg *pairConfig) *relayFixture {
	f := newMarket(cfg)
	f.relayAddr = f.tc.DeployContract(&relay.RelayContract{}, &relay.RelayContractConstruction{
		Router:           f.routerAddr,
		PairTokenA:       f.tokenA,
		PairTokenB:       f.tokenB,
		PairPathKind:     cfg.pathKind,
		PairPoolSelector: cfg.poolSelector,
	})
	f.fundTrader()
	return f
}

// setupBareRelay deploys the relay without a configured pair
func setupBareRelay() *relayFixture {
	f := newMarket(defaultPair())
	f.relayAddr = f.tc.DeployContract(&relay.RelayContract{}, &relay.RelayContractConstruction{
		Router: f.routerAddr,
	})
	f.fundTrader()
	return f
}

func (f *relayFixture) fundTrader() {
	f.tc.MustSendTx(util.AdminKey, f.tokenA, "Transfer", alice, _Funding)
	f.tc.MustSendTx(util.AdminKey, f.tokenB, "Transfer", alice, _Funding)
	f.tc.MustSendTx(aliceKey, f.tokenA, "Approve", f.relayAddr, amount.MustParseAmount(_TotalSupply))
	f.tc.MustSendTx(aliceKey, f.tokenB, "Approve", f.relayAddr, amount.MustParseAmount(_TotalSupply))
}

func (f *relayFixture) balanceOf(token, owner common.Address) *amount.Amount {
	is, err := util.Exec(f.tc.Ctx, util.Admin, token, "BalanceOf", []interface{}{owner})
	ExpectWithOffset(1, err).To(Succeed())
	return is[0].(*amount.Amount)
}

func (f *relayFixture) deadline() uint64 {
	return f.tc.Ctx.LastTimestamp()/uint64(time.Second) + 600
}

func (f *relayFixture) expired() uint64 {
	return f.tc.Ctx.LastTimestamp()/uint64(time.Second) - 1
}

// deployRelay deploys through the raw context so construction errors come
// back instead of failing the fixture
func deployRelay(f *relayFixture, cons *relay.RelayContractConstruction) error {
	bs, _, err := bin.WriterToBytes(cons)
	ExpectWithOffset(1, err).To(Succeed())
	_, err = f.tc.Ctx.DeployContract(util.Admin, util.ClassMap["Relay"], bs)
	return err
}

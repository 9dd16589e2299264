package swapsearch

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/contract/relay"
	"github.com/meverselabs/swaprelay/contract/router"
	"github.com/meverselabs/swaprelay/extern/test/util"
	"github.com/meverselabs/swaprelay/service/apiserver"
)

type swapMarket struct {
	tc        *util.TestContext
	ts        *SwapSearch
	relayAddr common.Address
	tokenA    common.Address
	tokenB    common.Address
}

func newSwapMarket(t *testing.T) *swapMarket {
	tc := util.NewTestContext()
	m := &swapMarket{tc: tc}
	m.tokenA = tc.MakeToken("TokenA", "TKA", "1000000")
	m.tokenB = tc.MakeToken("TokenB", "TKB", "1000000")
	routerAddr := tc.DeployContract(&router.RouterContract{}, &router.RouterContractConstruction{})
	tc.MustSendTx(util.AdminKey, routerAddr, "SetPair", m.tokenA, m.tokenB, false, uint64(0), uint64(1), uint64(1), uint64(30))
	tc.MustSendTx(util.AdminKey, routerAddr, "SetPair", m.tokenB, m.tokenA, false, uint64(0), uint64(1), uint64(1), uint64(30))
	tc.MustSendTx(util.AdminKey, m.tokenA, "Transfer", routerAddr, amount.NewAmount(400000, 0))
	tc.MustSendTx(util.AdminKey, m.tokenB, "Transfer", routerAddr, amount.NewAmount(400000, 0))
	m.relayAddr = tc.DeployContract(&relay.RelayContract{}, &relay.RelayContractConstruction{
		Router:     routerAddr,
		PairTokenA: m.tokenA,
		PairTokenB: m.tokenB,
	})
	tc.MustSendTx(util.AdminKey, m.tokenA, "Transfer", util.Users[0], amount.NewAmount(10000, 0))
	tc.MustSendTx(util.AdminKey, m.tokenB, "Transfer", util.Users[0], amount.NewAmount(10000, 0))
	tc.MustSendTx(util.UserKeys[0], m.tokenA, "Approve", m.relayAddr, amount.NewAmount(1000000, 0))
	tc.MustSendTx(util.UserKeys[0], m.tokenB, "Approve", m.relayAddr, amount.NewAmount(1000000, 0))

	api := apiserver.NewAPIServer()
	m.ts = NewSwapSearch(fmt.Sprintf("tdata/_swapsearch_%s", t.Name()), api, m.relayAddr, m.tokenA, m.tokenB)
	t.Cleanup(m.ts.Close)
	tc.RegisterTxListener(m.ts.OnTxConnected)
	return m
}

func (m *swapMarket) deadline() uint64 {
	return m.tc.Ctx.LastTimestamp()/uint64(time.Second) + 600
}

func TestSwapSearchIndex(t *testing.T) {
	assert := assert.New(t)
	m := newSwapMarket(t)
	alice := util.Users[0]

	m.tc.MustSendTx(util.UserKeys[0], m.relayAddr, "Swap",
		m.tokenA, m.tokenB, amount.NewAmount(1000, 0), amount.NewAmount(0, 0), util.Users[1], m.deadline(), uint8(0), uint64(0))
	m.tc.MustSendTx(util.UserKeys[0], m.relayAddr, "SwapPair",
		amount.NewAmount(100, 0), amount.NewAmount(0, 0), util.Users[1], m.deadline())
	m.tc.MustSendTx(util.UserKeys[0], m.relayAddr, "SwapPairReverse",
		amount.NewAmount(50, 0), amount.NewAmount(0, 0), util.Users[1], m.deadline())

	assert.Equal(uint64(3), m.ts.SwapSize())
	assert.Equal(uint64(3), m.ts.AddressSwapSize(alice))
	assert.Equal(uint64(0), m.ts.AddressSwapSize(util.Users[1]))
	assert.Equal(uint64(3), m.ts.TokenSwapSize(m.tokenA))
	assert.Equal(uint64(3), m.ts.TokenSwapSize(m.tokenB))
	assert.Equal(m.tc.Ctx.TargetHeight()-1, m.ts.Height())

	logs, err := m.ts.SwapList(0)
	assert.NoError(err)
	assert.Len(logs, 3)

	// newest first
	assert.Equal("SwapPairReverse", logs[0].Method)
	assert.Equal("50", logs[0].AmountIn)
	assert.Equal("49.85", logs[0].AmountOut)
	assert.Equal(m.tokenB.String(), logs[0].TokenIn)
	assert.Equal(m.tokenA.String(), logs[0].TokenOut)

	assert.Equal("SwapPair", logs[1].Method)
	assert.Equal("100", logs[1].AmountIn)
	assert.Equal("99.7", logs[1].AmountOut)

	assert.Equal("Swap", logs[2].Method)
	assert.Equal("1000", logs[2].AmountIn)
	assert.Equal("997", logs[2].AmountOut)
	assert.Equal(alice.String(), logs[2].Caller)
	assert.Equal(m.tokenA.String(), logs[2].TokenIn)
	assert.Equal(m.tokenB.String(), logs[2].TokenOut)
	assert.NotEmpty(logs[2].TxID)

	byAddr, err := m.ts.AddressSwapList(alice, 0)
	assert.NoError(err)
	assert.Len(byAddr, 3)
	assert.Equal(logs, byAddr)

	byToken, err := m.ts.TokenSwapList(m.tokenA, 0)
	assert.NoError(err)
	assert.Len(byToken, 3)

	recent := m.ts.RecentSwaps(2)
	assert.Len(recent, 2)
	assert.Equal("SwapPairReverse", recent[0].Method)
	assert.Equal("SwapPair", recent[1].Method)
	assert.Len(m.ts.RecentSwaps(10), 3)

	// txs outside the relay leave the index untouched
	h := m.ts.Height()
	m.tc.MustSendTx(util.AdminKey, m.tokenA, "Transfer", util.Users[2], amount.NewAmount(1, 0))
	assert.Equal(uint64(3), m.ts.SwapSize())
	assert.Equal(h, m.ts.Height())
}

func TestSwapSearchPaging(t *testing.T) {
	assert := assert.New(t)
	m := newSwapMarket(t)

	for i := 1; i <= 23; i++ {
		m.tc.MustSendTx(util.UserKeys[0], m.relayAddr, "SwapPair",
			amount.NewAmount(uint64(i), 0), amount.NewAmount(0, 0), util.Users[1], m.deadline())
	}

	assert.Equal(uint64(23), m.ts.SwapSize())

	page0, err := m.ts.SwapList(0)
	assert.NoError(err)
	assert.Len(page0, 20)
	assert.Equal("23", page0[0].AmountIn)
	assert.Equal("4", page0[19].AmountIn)

	page1, err := m.ts.SwapList(1)
	assert.NoError(err)
	assert.Len(page1, 3)
	assert.Equal("3", page1[0].AmountIn)
	assert.Equal("1", page1[2].AmountIn)

	page2, err := m.ts.SwapList(2)
	assert.NoError(err)
	assert.Len(page2, 0)

	recent := m.ts.RecentSwaps(100)
	assert.Len(recent, 23)
	assert.Equal("23", recent[0].AmountIn)
	assert.Equal("1", recent[22].AmountIn)
}

package test

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/contract/relay"
	"github.com/meverselabs/swaprelay/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Relay", func() {
	Describe("Swap", func() {
		It("swaps through the address list path", func() {
			f := setupRelay(defaultPair())

			amountIn := amount.NewAmount(1000, 0)
			amountOutMin := amount.NewAmount(995, 0)
			expectedOut := amount.NewAmount(997, 0) // 1000 * 0.997

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amountIn, amountOutMin, bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(expectedOut))

			Expect(f.balanceOf(f.tokenA, alice)).To(Equal(_Funding.Sub(amountIn)))
			Expect(f.balanceOf(f.tokenB, bob)).To(Equal(expectedOut))
			Expect(f.balanceOf(f.tokenA, f.routerAddr)).To(Equal(_Liquidity.Add(amountIn)))
			Expect(f.balanceOf(f.tokenB, f.routerAddr)).To(Equal(_Liquidity.Sub(expectedOut)))

			// custody is transient, nothing stays on the relay
			Expect(f.balanceOf(f.tokenA, f.relayAddr).IsZero()).To(BeTrue())
			Expect(f.balanceOf(f.tokenB, f.relayAddr).IsZero()).To(BeTrue())
		})

		It("swaps through the packed path", func() {
			f := setupRelay(&pairConfig{
				pathKind:     uint8(relay.PathPacked),
				poolSelector: 3000,
				rateNum:      1,
				rateDen:      1,
				feeBps:       30,
			})

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(1000, 0), amount.NewAmount(995, 0), bob, f.deadline(), uint8(relay.PathPacked), uint64(3000))
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.NewAmount(997, 0)))
			Expect(f.balanceOf(f.tokenB, bob)).To(Equal(amount.NewAmount(997, 0)))
		})

		It("swaps a stable flagged pair", func() {
			f := setupRelay(&pairConfig{
				pathKind:     uint8(relay.PathArray),
				poolSelector: 1,
				rateNum:      1,
				rateDen:      1,
				feeBps:       30,
			})

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(99, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(1))
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("rejects a zero amountIn", func() {
			f := setupRelay(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(0, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects a zero recipient", func() {
			f := setupRelay(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), common.ZeroAddr, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects an expired deadline", func() {
			f := setupRelay(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.expired(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))

			_, err = f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, uint64(0), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects an unknown path kind", func() {
			f := setupRelay(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(2), uint64(0))
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("reverts everything when the minimum is not met", func() {
			f := setupRelay(&pairConfig{
				pathKind:     uint8(relay.PathArray),
				poolSelector: 0,
				rateNum:      999,
				rateDen:      1000,
				feeBps:       100,
			})

			// 1000 * 0.999 * 0.99 = 989.01 < 990
			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(1000, 0), amount.NewAmount(990, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Relay: SLIPPAGE_EXCEEDED"))

			Expect(f.balanceOf(f.tokenA, alice)).To(Equal(_Funding))
			Expect(f.balanceOf(f.tokenB, bob).IsZero()).To(BeTrue())
			Expect(f.balanceOf(f.tokenA, f.relayAddr).IsZero()).To(BeTrue())
			Expect(f.balanceOf(f.tokenB, f.relayAddr).IsZero()).To(BeTrue())
			Expect(f.balanceOf(f.tokenA, f.routerAddr)).To(Equal(_Liquidity))
			Expect(f.balanceOf(f.tokenB, f.routerAddr)).To(Equal(_Liquidity))
		})

		It("meets an exact minimum", func() {
			f := setupRelay(defaultPair())

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(1000, 0), amount.NewAmount(997, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.NewAmount(997, 0)))
		})

		It("passes the router error through unchanged", func() {
			f := setupRelay(defaultPair())
			tokenC := f.tc.MakeToken("TokenC", "TKC", _TotalSupply)

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, tokenC, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Router: UNKNOWN_POOL"))
		})

		It("surfaces a pool flag mismatch", func() {
			f := setupRelay(defaultPair())

			// registered volatile, requested stable
			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(1))
			Expect(err).To(MatchError("Router: UNKNOWN_POOL"))
		})

		It("surfaces a fee tier mismatch", func() {
			f := setupRelay(&pairConfig{
				pathKind:     uint8(relay.PathPacked),
				poolSelector: 3000,
				rateNum:      1,
				rateDen:      1,
				feeBps:       30,
			})

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(relay.PathPacked), uint64(500))
			Expect(err).To(MatchError("Router: UNKNOWN_POOL"))
		})

		It("fails when the router liquidity is short", func() {
			f := setupRelay(defaultPair())
			f.tc.MustSendTx(util.AdminKey, f.tokenA, "Approve", f.relayAddr, amount.NewAmount(500000, 0))

			// quote 498500 against 400000 of liquidity
			_, err := f.tc.SendTx(util.AdminKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(500000, 0), amount.NewAmount(0, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(MatchError("Router: INSUFFICIENT_LIQUIDITY"))
		})
	})

	Describe("SwapPair", func() {
		It("swaps the configured pair forward", func() {
			f := setupRelay(defaultPair())

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "SwapPair",
				amount.NewAmount(100, 0), amount.NewAmount(99, 0), bob, f.deadline())
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
			Expect(f.balanceOf(f.tokenA, alice)).To(Equal(_Funding.Sub(amount.NewAmount(100, 0))))
			Expect(f.balanceOf(f.tokenB, bob)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("swaps the configured pair in reverse", func() {
			f := setupRelay(defaultPair())

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "SwapPairReverse",
				amount.NewAmount(100, 0), amount.NewAmount(99, 0), bob, f.deadline())
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
			Expect(f.balanceOf(f.tokenB, alice)).To(Equal(_Funding.Sub(amount.NewAmount(100, 0))))
			Expect(f.balanceOf(f.tokenA, bob)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("accepts a zero minimum", func() {
			f := setupRelay(defaultPair())

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "SwapPair",
				amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline())
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("refuses to run without a configured pair", func() {
			f := setupBareRelay()

			_, err := f.tc.SendTx(aliceKey, f.relayAddr, "SwapPair",
				amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline())
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))

			_, err = f.tc.SendTx(aliceKey, f.relayAddr, "SwapPairReverse",
				amount.NewAmount(100, 0), amount.NewAmount(0, 0), bob, f.deadline())
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("still swaps explicit tokens without a configured pair", func() {
			f := setupBareRelay()

			is, err := f.tc.SendTx(aliceKey, f.relayAddr, "Swap",
				f.tokenA, f.tokenB, amount.NewAmount(100, 0), amount.NewAmount(99, 0), bob, f.deadline(), uint8(relay.PathArray), uint64(0))
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
		})
	})

	Describe("Construction", func() {
		It("rejects a zero router", func() {
			f := newMarket(defaultPair())

			err := deployRelay(f, &relay.RelayContractConstruction{})
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects an unknown path kind", func() {
			f := newMarket(defaultPair())

			err := deployRelay(f, &relay.RelayContractConstruction{
				Router:       f.routerAddr,
				PairTokenA:   f.tokenA,
				PairTokenB:   f.tokenB,
				PairPathKind: 2,
			})
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects a half configured pair", func() {
			f := newMarket(defaultPair())

			err := deployRelay(f, &relay.RelayContractConstruction{
				Router:     f.routerAddr,
				PairTokenA: f.tokenA,
			})
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})

		It("rejects an identical pair", func() {
			f := newMarket(defaultPair())

			err := deployRelay(f, &relay.RelayContractConstruction{
				Router:     f.routerAddr,
				PairTokenA: f.tokenA,
				PairTokenB: f.tokenA,
			})
			Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
		})
	})

	Describe("Readers", func() {
		It("exposes the router and the pair", func() {
			f := setupRelay(defaultPair())

			is, err := util.Exec(f.tc.Ctx, alice, f.relayAddr, "Router", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0]).To(Equal(f.routerAddr))

			is, err = util.Exec(f.tc.Ctx, alice, f.relayAddr, "PairTokens", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0]).To(Equal(f.tokenA))
			Expect(is[1]).To(Equal(f.tokenB))
		})

		It("returns zero addresses without a configured pair", func() {
			f := setupBareRelay()

			is, err := util.Exec(f.tc.Ctx, alice, f.relayAddr, "PairTokens", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0]).To(Equal(common.ZeroAddr))
			Expect(is[1]).To(Equal(common.ZeroAddr))
		})
	})
})

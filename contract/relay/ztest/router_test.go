package test

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Router", func() {
	Describe("SetPair", func() {
		It("only the master registers pairs", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(1), uint64(1), uint64(30))
			Expect(err).To(MatchError("not router master"))
		})

		It("rejects malformed pairs", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				common.ZeroAddr, f.tokenB, false, uint64(0), uint64(1), uint64(1), uint64(30))
			Expect(err).To(MatchError("Router: INVALID_PAIR"))

			_, err = f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenA, false, uint64(0), uint64(1), uint64(1), uint64(30))
			Expect(err).To(MatchError("Router: INVALID_PAIR"))

			_, err = f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(0), uint64(1), uint64(30))
			Expect(err).To(MatchError("Router: INVALID_PAIR"))

			_, err = f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(1), uint64(0), uint64(30))
			Expect(err).To(MatchError("Router: INVALID_PAIR"))

			_, err = f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(1), uint64(1), uint64(10000))
			Expect(err).To(MatchError("Router: INVALID_PAIR"))

			// the last representable fee still passes
			_, err = f.tc.SendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(1), uint64(1), uint64(9999))
			Expect(err).To(Succeed())
		})

		It("overwrites an existing pair", func() {
			f := newMarket(defaultPair())

			f.tc.MustSendTx(util.AdminKey, f.routerAddr, "SetPair",
				f.tokenA, f.tokenB, false, uint64(0), uint64(2), uint64(1), uint64(50))

			is, err := util.Exec(f.tc.Ctx, alice, f.routerAddr, "Pair", []interface{}{f.tokenA, f.tokenB})
			Expect(err).To(Succeed())
			Expect(is[2].(uint64)).To(Equal(uint64(2)))
			Expect(is[3].(uint64)).To(Equal(uint64(1)))
			Expect(is[4].(uint64)).To(Equal(uint64(50)))
		})
	})

	Describe("Execute", func() {
		It("runs a single address list instruction", func() {
			f := newMarket(defaultPair())
			f.tc.MustSendTx(util.AdminKey, f.tokenA, "Transfer", alice, _Funding)
			f.tc.MustSendTx(aliceKey, f.tokenA, "Approve", f.routerAddr, _Funding)

			input := bin.TypeWriteAll(bob, amount.NewAmount(100, 0), amount.NewAmount(0, 0),
				[]common.Address{f.tokenA, f.tokenB}, []bool{false}, false)
			is, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{input}, f.deadline())
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
			Expect(f.balanceOf(f.tokenB, bob)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("runs a single packed path instruction", func() {
			f := newMarket(&pairConfig{
				pathKind:     1,
				poolSelector: 3000,
				rateNum:      1,
				rateDen:      1,
				feeBps:       30,
			})
			f.tc.MustSendTx(util.AdminKey, f.tokenA, "Transfer", alice, _Funding)
			f.tc.MustSendTx(aliceKey, f.tokenA, "Approve", f.routerAddr, _Funding)

			path := make([]byte, 0, 43)
			path = append(path, f.tokenA[:]...)
			path = append(path, 0x00, 0x0b, 0xb8) // fee tier 3000
			path = append(path, f.tokenB[:]...)

			input := bin.TypeWriteAll(bob, amount.NewAmount(100, 0), amount.NewAmount(0, 0),
				path, alice, false)
			is, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x00}, [][]byte{input}, f.deadline())
			Expect(err).To(Succeed())
			Expect(is[0].(*amount.Amount)).To(Equal(amount.MustParseAmount("99.7")))
		})

		It("accepts exactly one command", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{}, [][]byte{{0x01}}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_COMMANDS"))

			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08, 0x00}, [][]byte{{0x01}}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_COMMANDS"))

			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x07}, [][]byte{{0x01}}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_COMMANDS"))
		})

		It("requires exactly one input", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_INPUTS"))

			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{{0x01}, {0x02}}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_INPUTS"))
		})

		It("rejects a passed deadline", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{{0x01}}, f.expired())
			Expect(err).To(MatchError("Router: DEADLINE_PASSED"))
		})

		It("rejects malformed payloads", func() {
			f := newMarket(defaultPair())

			_, err := f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{{0xff, 0xff}}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_PAYLOAD"))

			// a three hop path is not supported
			tokenC := f.tc.MakeToken("TokenC", "TKC", _TotalSupply)
			input := bin.TypeWriteAll(bob, amount.NewAmount(100, 0), amount.NewAmount(0, 0),
				[]common.Address{f.tokenA, tokenC, f.tokenB}, []bool{false, false}, false)
			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{input}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_PAYLOAD"))

			// the payer flag of the list layout must stay unset
			input = bin.TypeWriteAll(bob, amount.NewAmount(100, 0), amount.NewAmount(0, 0),
				[]common.Address{f.tokenA, f.tokenB}, []bool{false}, true)
			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x08}, [][]byte{input}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_PAYLOAD"))

			// a packed path shorter than two tokens and a fee
			input = bin.TypeWriteAll(bob, amount.NewAmount(100, 0), amount.NewAmount(0, 0),
				f.tokenA[:], alice, false)
			_, err = f.tc.SendTx(aliceKey, f.routerAddr, "Execute",
				[]byte{0x00}, [][]byte{input}, f.deadline())
			Expect(err).To(MatchError("Router: INVALID_PAYLOAD"))
		})
	})

	Describe("Pair", func() {
		It("returns the registered terms", func() {
			f := newMarket(defaultPair())

			is, err := util.Exec(f.tc.Ctx, alice, f.routerAddr, "Pair", []interface{}{f.tokenA, f.tokenB})
			Expect(err).To(Succeed())
			Expect(is[0].(bool)).To(BeFalse())
			Expect(is[1].(uint64)).To(Equal(uint64(0)))
			Expect(is[2].(uint64)).To(Equal(uint64(1)))
			Expect(is[3].(uint64)).To(Equal(uint64(1)))
			Expect(is[4].(uint64)).To(Equal(uint64(30)))
		})

		It("fails on an unknown pair", func() {
			f := newMarket(defaultPair())
			tokenC := f.tc.MakeToken("TokenC", "TKC", _TotalSupply)

			_, err := util.Exec(f.tc.Ctx, alice, f.routerAddr, "Pair", []interface{}{f.tokenA, tokenC})
			Expect(err).To(MatchError("Router: UNKNOWN_POOL"))
		})
	})
})

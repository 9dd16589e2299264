package test

import (
	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RecoverStuckTokens", func() {
	It("refuses callers other than the master", func() {
		f := setupRelay(defaultPair())

		_, err := f.tc.SendTx(aliceKey, f.relayAddr, "RecoverStuckTokens", f.tokenA, alice)
		Expect(err).To(MatchError("Relay: FORBIDDEN"))
	})

	It("rejects zero arguments", func() {
		f := setupRelay(defaultPair())

		_, err := f.tc.SendTx(util.AdminKey, f.relayAddr, "RecoverStuckTokens", common.ZeroAddr, bob)
		Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))

		_, err = f.tc.SendTx(util.AdminKey, f.relayAddr, "RecoverStuckTokens", f.tokenA, common.ZeroAddr)
		Expect(err).To(MatchError("Relay: INVALID_ARGUMENT"))
	})

	It("fails when the relay holds nothing", func() {
		f := setupRelay(defaultPair())

		_, err := f.tc.SendTx(util.AdminKey, f.relayAddr, "RecoverStuckTokens", f.tokenA, bob)
		Expect(err).To(MatchError("Relay: NOTHING_TO_RECOVER"))
	})

	It("moves the full stuck balance to the recipient", func() {
		f := setupRelay(defaultPair())
		stuck := amount.NewAmount(50, 0)
		f.tc.MustSendTx(util.AdminKey, f.tokenA, "Transfer", f.relayAddr, stuck)

		_, err := f.tc.SendTx(util.AdminKey, f.relayAddr, "RecoverStuckTokens", f.tokenA, bob)
		Expect(err).To(Succeed())
		Expect(f.balanceOf(f.tokenA, bob)).To(Equal(stuck))
		Expect(f.balanceOf(f.tokenA, f.relayAddr).IsZero()).To(BeTrue())

		// drained once, a second run finds nothing
		_, err = f.tc.SendTx(util.AdminKey, f.relayAddr, "RecoverStuckTokens", f.tokenA, bob)
		Expect(err).To(MatchError("Relay: NOTHING_TO_RECOVER"))
	})
})

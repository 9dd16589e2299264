package test

import (
	"log"
	"testing"

	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/extern/test/util"
)

func TestTokenTransferTx(t *testing.T) {
	tc := util.NewTestContext()

	tokenAddr := tc.MakeToken("TestToken", "TEST", "10000")
	log.Println("Test Token Addr", tokenAddr)

	inf := tc.MustSendTx(util.AdminKey, tokenAddr, "Transfer", util.Users[0], amount.NewAmount(100, 0))
	log.Println("Transfer", inf)

	is, err := tc.ReadTx(util.AdminKey, tokenAddr, "BalanceOf", util.Users[0])
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "100" {
		t.Fatalf("balance %v want 100", is[0].(*amount.Amount).String())
	}

	// more than the holder owns
	inf, err = tc.MakeTx(util.UserKeys[0], tokenAddr, "Transfer", util.Users[1], amount.NewAmount(200, 0))
	log.Println("Transfer over balance", inf, ":", err)
	if err == nil {
		t.Fatal("transfer over balance must fail")
	}

	inf = tc.MustSendTx(util.UserKeys[0], tokenAddr, "Approve", util.Users[1], amount.NewAmount(60, 0))
	log.Println("Approve", inf)

	inf = tc.MustSendTx(util.UserKeys[1], tokenAddr, "TransferFrom", util.Users[0], util.Users[2], amount.NewAmount(40, 0))
	log.Println("TransferFrom", inf)

	is, err = tc.ReadTx(util.AdminKey, tokenAddr, "Allowance", util.Users[0], util.Users[1])
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "20" {
		t.Fatalf("allowance %v want 20", is[0].(*amount.Amount).String())
	}

	// the remaining allowance does not cover this
	inf, err = tc.MakeTx(util.UserKeys[1], tokenAddr, "TransferFrom", util.Users[0], util.Users[2], amount.NewAmount(40, 0))
	log.Println("TransferFrom over allowance", inf, ":", err)
	if err == nil {
		t.Fatal("transfer over allowance must fail")
	}

	is, err = tc.ReadTx(util.AdminKey, tokenAddr, "BalanceOf", util.Users[2])
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "40" {
		t.Fatalf("balance %v want 40", is[0].(*amount.Amount).String())
	}
}

func TestTokenAdminTx(t *testing.T) {
	tc := util.NewTestContext()

	tokenAddr := tc.MakeToken("TestToken", "TEST", "10000")

	is, err := tc.ReadTx(util.AdminKey, tokenAddr, "TotalSupply")
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "10000" {
		t.Fatalf("total supply %v want 10000", is[0].(*amount.Amount).String())
	}

	inf := tc.MustSendTx(util.AdminKey, tokenAddr, "Mint", util.Users[0], amount.NewAmount(500, 0))
	log.Println("Mint", inf)

	inf, err = tc.MakeTx(util.UserKeys[0], tokenAddr, "Mint", util.Users[0], amount.NewAmount(500, 0))
	log.Println("Mint by stranger", inf, ":", err)
	if err == nil {
		t.Fatal("mint by a non minter must fail")
	}

	inf = tc.MustSendTx(util.AdminKey, tokenAddr, "SetMinter", util.Users[0], true)
	log.Println("SetMinter", inf)

	inf = tc.MustSendTx(util.UserKeys[0], tokenAddr, "Mint", util.Users[1], amount.NewAmount(300, 0))
	log.Println("Mint by minter", inf)

	is, err = tc.ReadTx(util.AdminKey, tokenAddr, "TotalSupply")
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "10800" {
		t.Fatalf("total supply %v want 10800", is[0].(*amount.Amount).String())
	}

	inf = tc.MustSendTx(util.AdminKey, tokenAddr, "Pause")
	log.Println("Pause", inf)

	inf, err = tc.MakeTx(util.AdminKey, tokenAddr, "Transfer", util.Users[0], amount.NewAmount(1, 0))
	log.Println("Transfer while paused", inf, ":", err)
	if err == nil {
		t.Fatal("transfer while paused must fail")
	}

	inf = tc.MustSendTx(util.AdminKey, tokenAddr, "Unpause")
	log.Println("Unpause", inf)

	inf = tc.MustSendTx(util.AdminKey, tokenAddr, "Transfer", util.Users[0], amount.NewAmount(1, 0))
	log.Println("Transfer after unpause", inf)

	inf = tc.MustSendTx(util.UserKeys[0], tokenAddr, "Burn", amount.NewAmount(100, 0))
	log.Println("Burn", inf)

	is, err = tc.ReadTx(util.AdminKey, tokenAddr, "TotalSupply")
	if err != nil {
		t.Fatal(err)
	}
	if is[0].(*amount.Amount).String() != "10700" {
		t.Fatalf("total supply %v want 10700", is[0].(*amount.Amount).String())
	}
}

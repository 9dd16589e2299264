package types

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
)

var counterClassID uint64

func init() {
	var err error
	counterClassID, err = RegisterContractType(&counterContract{})
	if err != nil {
		panic(err)
	}
}

type counterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *counterContract) Address() common.Address {
	return cont.addr
}

func (cont *counterContract) Master() common.Address {
	return cont.master
}

func (cont *counterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *counterContract) OnCreate(cc *ContractContext, Args []byte) error {
	return nil
}

func (cont *counterContract) total(cc *ContractContext) *big.Int {
	bs := cc.ContractData([]byte{0x01})
	return big.NewInt(0).SetBytes(bs)
}

func (cont *counterContract) Front() interface{} {
	return &frontCounter{cont: cont}
}

type frontCounter struct {
	cont *counterContract
}

func (f *frontCounter) Add(cc *ContractContext, delta *big.Int) *big.Int {
	sum := big.NewInt(0).Add(f.cont.total(cc), delta)
	cc.SetContractData([]byte{0x01}, sum.Bytes())
	return sum
}

func (f *frontCounter) Total(cc *ContractContext) *big.Int {
	return f.cont.total(cc)
}

func (f *frontCounter) MustFail(cc *ContractContext, delta *big.Int) error {
	cc.SetContractData([]byte{0x01}, delta.Bytes())
	return errors.New("counter: fail")
}

func TestContextSnapshotRevert(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	cont := common.HexToAddress("0x01")
	addr := common.HexToAddress("0x02")

	ctx.Top().SetData(cont, addr, []byte("name"), []byte("value"))
	assert.Equal([]byte("value"), ctx.Data(cont, addr, []byte("name")))

	sn := ctx.Snapshot()
	ctx.Top().SetData(cont, addr, []byte("name"), []byte("next"))
	assert.Equal([]byte("next"), ctx.Data(cont, addr, []byte("name")))
	ctx.Revert(sn)
	assert.Equal([]byte("value"), ctx.Data(cont, addr, []byte("name")))

	sn = ctx.Snapshot()
	ctx.Top().SetData(cont, addr, []byte("name"), []byte("final"))
	ctx.Commit(sn)
	assert.Equal([]byte("final"), ctx.Data(cont, addr, []byte("name")))
	assert.Equal(1, ctx.StackSize())
}

func TestContextDeleteData(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	cont := common.HexToAddress("0x01")
	addr := common.HexToAddress("0x02")

	ctx.Top().SetData(cont, addr, []byte("name"), []byte("value"))

	sn := ctx.Snapshot()
	ctx.Top().SetData(cont, addr, []byte("name"), nil)
	assert.Nil(ctx.Data(cont, addr, []byte("name")))
	ctx.Commit(sn)
	assert.Nil(ctx.Data(cont, addr, []byte("name")))

	sn = ctx.Snapshot()
	ctx.Top().SetData(cont, addr, []byte("name"), []byte("revived"))
	ctx.Commit(sn)
	assert.Equal([]byte("revived"), ctx.Data(cont, addr, []byte("name")))
}

func TestContextAddrSeq(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	addr := common.HexToAddress("0x03")

	assert.Equal(uint64(0), ctx.AddrSeq(addr))
	ctx.AddAddrSeq(addr)
	assert.Equal(uint64(1), ctx.AddrSeq(addr))

	sn := ctx.Snapshot()
	ctx.AddAddrSeq(addr)
	assert.Equal(uint64(2), ctx.AddrSeq(addr))
	ctx.Revert(sn)
	assert.Equal(uint64(1), ctx.AddrSeq(addr))
}

func TestContextNextContext(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	cont := common.HexToAddress("0x01")
	addr := common.HexToAddress("0x02")

	ctx.Top().SetData(cont, addr, []byte("name"), []byte("value"))
	ctx.AddAddrSeq(addr)
	ctx.SetMainToken(cont)

	nctx := ctx.NextContext(ctx.Hash(), ctx.LastTimestamp()+1)
	assert.Equal(uint32(1), nctx.TargetHeight())
	assert.Equal(ctx.Hash(), nctx.PrevHash())
	assert.Equal([]byte("value"), nctx.Data(cont, addr, []byte("name")))
	assert.Equal(uint64(1), nctx.AddrSeq(addr))
	assert.Equal(cont, *nctx.MainToken())
	assert.Equal(big.NewInt(1), nctx.ChainID())

	nctx.Top().SetData(cont, addr, []byte("name"), []byte("updated"))
	assert.Equal([]byte("updated"), nctx.Data(cont, addr, []byte("name")))
	assert.Equal([]byte("value"), ctx.Data(cont, addr, []byte("name")))
}

func TestDeployContractAddress(t *testing.T) {
	assert := assert.New(t)

	owner := common.HexToAddress("0x10")

	ctx1 := NewGenesisContext(big.NewInt(1), 1)
	cont1, err := ctx1.DeployContract(owner, counterClassID, nil)
	assert.NoError(err)

	ctx2 := NewGenesisContext(big.NewInt(1), 1)
	cont2, err := ctx2.DeployContract(owner, counterClassID, nil)
	assert.NoError(err)

	assert.Equal(cont1.Address(), cont2.Address())
	assert.Equal(owner, cont1.Master())
	assert.True(ctx1.IsContract(cont1.Address()))

	cont3, err := ctx1.DeployContract(owner, counterClassID, nil)
	assert.NoError(err)
	assert.NotEqual(cont1.Address(), cont3.Address())
}

func TestExecuteContractTx(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	signer := common.HexToAddress("0x10")
	cont, err := ctx.DeployContract(signer, counterClassID, nil)
	assert.NoError(err)

	tx := &Transaction{
		ChainID:   ctx.ChainID(),
		Version:   1,
		Timestamp: 1000,
		Seq:       ctx.AddrSeq(signer),
		To:        cont.Address(),
		Method:    "add",
		Args:      bin.TypeWriteAll(big.NewInt(5)),
		UseSeq:    true,
	}
	ens, err := ExecuteContractTx(ctx, tx, signer, TransactionID(0, 0))
	assert.NoError(err)
	assert.Equal("Add", tx.Method)
	assert.Equal(signer, tx.From)
	assert.Equal(uint64(1), ctx.AddrSeq(signer))

	assert.Equal(2, len(ens))
	assert.Equal(EventTagTxMsg, ens[0].Type)
	vs, err := bin.TypeReadAll(ens[0].Result, 1)
	assert.NoError(err)
	assert.Equal(big.NewInt(5), vs[0])

	assert.Equal(EventTagCallHistory, ens[1].Type)
	mc := &MethodCallEvent{}
	_, err = mc.ReadFrom(bytes.NewReader(ens[1].Result))
	assert.NoError(err)
	assert.Equal("Add", mc.Method)
	assert.Equal(signer, mc.From)
	assert.Equal(cont.Address(), mc.To)
	assert.Equal("", mc.Error)
}

func TestExecuteContractTxSeqMismatch(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	signer := common.HexToAddress("0x10")
	cont, err := ctx.DeployContract(signer, counterClassID, nil)
	assert.NoError(err)

	tx := &Transaction{
		ChainID:   ctx.ChainID(),
		Version:   1,
		Timestamp: 1000,
		Seq:       7,
		To:        cont.Address(),
		Method:    "add",
		Args:      bin.TypeWriteAll(big.NewInt(5)),
		UseSeq:    true,
	}
	_, err = ExecuteContractTx(ctx, tx, signer, TransactionID(0, 0))
	assert.Error(err)
	assert.Equal(uint64(0), ctx.AddrSeq(signer))
}

func TestExecuteContractTxRevertsOnError(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	signer := common.HexToAddress("0x10")
	cont, err := ctx.DeployContract(signer, counterClassID, nil)
	assert.NoError(err)

	tx := &Transaction{
		ChainID:   ctx.ChainID(),
		Version:   1,
		Timestamp: 1000,
		Seq:       ctx.AddrSeq(signer),
		To:        cont.Address(),
		Method:    "mustFail",
		Args:      bin.TypeWriteAll(big.NewInt(9)),
		UseSeq:    true,
	}
	_, err = ExecuteContractTx(ctx, tx, signer, TransactionID(0, 1))
	assert.Error(err)

	cc := ctx.ContractContext(cont, signer)
	intr := NewInteractor(ctx, cont, cc, TransactionID(0, 2), false)
	cc.Exec = intr.Exec
	is, err := intr.Exec(cc, cont.Address(), "Total", []interface{}{})
	intr.Distroy()
	assert.NoError(err)
	assert.Equal(big.NewInt(0), is[0])
}

func TestExecuteContractTxChainIDMismatch(t *testing.T) {
	assert := assert.New(t)

	ctx := NewGenesisContext(big.NewInt(1), 1)
	signer := common.HexToAddress("0x10")
	cont, err := ctx.DeployContract(signer, counterClassID, nil)
	assert.NoError(err)

	tx := &Transaction{
		ChainID:   big.NewInt(9),
		Version:   1,
		Timestamp: 1000,
		To:        cont.Address(),
		Method:    "add",
		Args:      bin.TypeWriteAll(big.NewInt(5)),
	}
	_, err = ExecuteContractTx(ctx, tx, signer, TransactionID(0, 0))
	assert.True(errors.Is(err, ErrInvalidChainID))
}

func TestTransactionID(t *testing.T) {
	assert := assert.New(t)

	id := TransactionID(7, 3)
	assert.Equal(12, len(id))
	height, index, err := ParseTransactionID(id)
	assert.NoError(err)
	assert.Equal(uint32(7), height)
	assert.Equal(uint16(3), index)

	_, _, err = ParseTransactionID("00")
	assert.True(errors.Is(err, ErrInvalidTransactionIDFormat))
}

func TestTransactionSerialization(t *testing.T) {
	assert := assert.New(t)

	tx := &Transaction{
		ChainID:   big.NewInt(1337),
		Version:   1,
		Timestamp: 1700000000,
		Seq:       3,
		To:        common.HexToAddress("0x0a"),
		Method:    "transfer",
		Args:      bin.TypeWriteAll(common.HexToAddress("0x0b"), big.NewInt(100)),
		UseSeq:    true,
	}
	bs, _, err := bin.WriterToBytes(tx)
	assert.NoError(err)

	back := &Transaction{}
	_, err = back.ReadFrom(bytes.NewReader(bs))
	assert.NoError(err)
	assert.Equal(tx.ChainID, back.ChainID)
	assert.Equal(tx.Method, back.Method)
	assert.Equal(tx.Seq, back.Seq)
	assert.Equal(tx.Hash(), back.Hash())
}

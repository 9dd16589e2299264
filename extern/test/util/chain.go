package util

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/key"
	"github.com/meverselabs/swaprelay/contract/token"
	"github.com/meverselabs/swaprelay/core/types"
)

func RemoveTestData() error {
	return os.RemoveAll("tdata/")
}

func (tc *TestContext) InitMainToken(adminAddress common.Address, ClassMap map[string]uint64) common.Address {
	arg := &token.TokenContractConstruction{
		Name:   "Test",
		Symbol: "TEST",
		InitialSupplyMap: map[common.Address]*amount.Amount{
			adminAddress: amount.NewAmount(2000000000, 0),
		},
	}
	bs, _, err := bin.WriterToBytes(arg)
	if err != nil {
		panic(err)
	}
	cont, err := tc.Ctx.DeployContract(adminAddress, ClassMap["Token"], bs)
	if err != nil {
		panic(err)
	}
	tokenAddress := cont.Address()
	tc.Ctx.SetMainToken(tokenAddress)
	return tokenAddress
}

type executedTx struct {
	TXID string
	tx   *types.Transaction
	ens  []*types.Event
}

// AddBlock executes the transactions against the working context. A failed
// transaction reverts the whole batch and the context keeps its pre-batch
// state, matching a discarded block.
func (tc *TestContext) AddBlock(txs []*types.Transaction, signers []key.Key) error {
	height := tc.Ctx.TargetHeight()

	sn := tc.Ctx.Snapshot()
	executed := []*executedTx{}
	blockEvents := []*types.Event{}
	for i, tx := range txs {
		if tx == nil {
			continue
		}
		sig, err := signers[i].Sign(tx.Message())
		if err != nil {
			tc.Ctx.Revert(sn)
			return err
		}
		pubkey, err := common.RecoverPubkey(tx.ChainID, tx.Message(), sig)
		if err != nil {
			tc.Ctx.Revert(sn)
			return err
		}
		TXID := types.TransactionID(height, uint16(i))
		ens, err := types.ExecuteContractTx(tc.Ctx, tx, pubkey.Address(), TXID)
		if err != nil {
			tc.Ctx.Revert(sn)
			return err
		}
		executed = append(executed, &executedTx{TXID: TXID, tx: tx, ens: ens})
		blockEvents = append(blockEvents, ens...)
	}
	tc.Ctx.Commit(sn)

	tc.lastEvents = blockEvents
	for _, et := range executed {
		for _, ln := range tc.listeners {
			ln(height, et.TXID, et.tx, et.ens)
		}
	}
	return nil
}

func (tc *TestContext) SkipBlock(blockCount int) (*types.Context, error) {
	for i := 0; i < blockCount; i++ {
		err := tc.Sleep(1, nil, nil)
		if err != nil {
			return nil, err
		}
	}
	return tc.Ctx, nil
}

func (tc *TestContext) MustSkipBlock(blockCount int) {
	for i := 0; i < blockCount; i++ {
		err := tc.Sleep(1, nil, nil)
		if err != nil {
			panic(err)
		}
	}
}

func (tc *TestContext) Sleep(seconds uint64, txs []*types.Transaction, signers []key.Key) error {
	timestamp := tc.Ctx.LastTimestamp() + seconds*uint64(time.Second)

	err := tc.AddBlock(txs, signers)
	if err != nil {
		return err
	}
	tc.Ctx = tc.Ctx.NextContext(tc.Ctx.Hash(), timestamp)
	return nil
}

func (tc *TestContext) SendTx(mkey key.Key, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	tx := &types.Transaction{
		ChainID:   ChainID,
		Timestamp: tc.Ctx.LastTimestamp(),
		To:        to,
		Method:    method,
	}

	tx.Args = bin.TypeWriteAll(params...)

	ins, err := bin.TypeReadAll(tx.Args, len(params))
	if err != nil {
		log.Println(ins, err)
		return nil, err
	}

	err = tc.Sleep(10, []*types.Transaction{tx}, []key.Key{mkey})
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(tc.lastEvents); i++ {
		en := tc.lastEvents[i]
		if en.Type == types.EventTagTxMsg {
			ins, err := bin.TypeReadAll(en.Result, -1)
			if err != nil {
				return nil, err
			}
			return ins, nil
		}
	}

	return nil, nil
}

func (tc *TestContext) ReadTx(mkey key.Key, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	tx := &types.Transaction{
		ChainID:   ChainID,
		Timestamp: tc.Ctx.LastTimestamp(),
		To:        to,
		Method:    method,
	}

	tx.Args = bin.TypeWriteAll(params...)

	ins, err := bin.TypeReadAll(tx.Args, len(params))
	if err != nil {
		log.Println(ins, err)
		return nil, err
	}

	n := tc.Ctx.Snapshot()
	ens, err := types.ExecuteContractTx(tc.Ctx, tx, mkey.PublicKey().Address(), "000000000000")
	tc.Ctx.Revert(n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(ens); i++ {
		en := ens[i]
		if en.Type == types.EventTagTxMsg {
			ins, err := bin.TypeReadAll(en.Result, -1)
			if err != nil {
				return nil, err
			}
			return ins, nil
		}
	}
	return nil, nil
}

func (tc *TestContext) MakeTx(mkey key.Key, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	infs, err := tc.SendTx(mkey, to, method, params...)
	return infs, err
}

func (tc *TestContext) MustSendTx(mkey key.Key, to common.Address, method string, params ...interface{}) []interface{} {
	res, err := tc.SendTx(mkey, to, method, params...)
	if err != nil {
		fmt.Printf("%+v\n", err)
		panic(err)
	}
	return res
}

type TxCase struct {
	Mkey   key.Key
	To     common.Address
	Method string
	Params []interface{}
}

func (tc *TestContext) MustSendTxs(txcs []*TxCase) [][]interface{} {
	txs := []*types.Transaction{}
	ks := []key.Key{}
	for _, txc := range txcs {
		tx := &types.Transaction{
			ChainID:   ChainID,
			Timestamp: tc.Ctx.LastTimestamp(),
			To:        txc.To,
			Method:    txc.Method,
		}

		tx.Args = bin.TypeWriteAll(txc.Params...)

		ins, err := bin.TypeReadAll(tx.Args, len(txc.Params))
		if err != nil {
			log.Println(ins, err)
			panic(err)
		}
		txs = append(txs, tx)
		ks = append(ks, txc.Mkey)
	}

	err := tc.Sleep(10, txs, ks)
	if err != nil {
		panic(err)
	}
	inss := [][]interface{}{}
	for i := 0; i < len(tc.lastEvents); i++ {
		en := tc.lastEvents[i]
		if en.Type == types.EventTagTxMsg {
			ins, err := bin.TypeReadAll(en.Result, -1)
			if err != nil {
				panic(err)
			}
			inss = append(inss, ins)
		}
	}

	return inss
}

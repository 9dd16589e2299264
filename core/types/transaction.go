package types

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/hash"
)

type Transaction struct {
	//Input data
	ChainID   *big.Int
	Version   uint16
	Timestamp uint64
	Seq       uint64
	To        common.Address
	Method    string
	Args      []byte
	UseSeq    bool

	//After exec tx data
	From common.Address
}

func (s *Transaction) withOutFrom() *Transaction {
	return &Transaction{
		ChainID:   big.NewInt(0).SetBytes(s.ChainID.Bytes()),
		Version:   s.Version,
		Timestamp: s.Timestamp,
		Seq:       s.Seq,
		From:      common.Address{},
		To:        s.To,
		Method:    s.Method,
		Args:      s.Args,
		UseSeq:    s.UseSeq,
	}
}

func (s *Transaction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.BigInt(w, s.ChainID); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.Version); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Seq); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.From); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.To); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Method); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Args); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.UseSeq); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Transaction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.BigInt(r, &s.ChainID); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.Version); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Seq); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.From); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.To); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Method); err != nil {
		return sum, err
	}
	if sum, err := sr.Bytes(r, &s.Args); err != nil {
		return sum, err
	}
	if sum, err := sr.Bool(r, &s.UseSeq); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

func (s *Transaction) Hash() hash.Hash256 {
	return bin.MustWriterToHash(s.withOutFrom())
}

// Message returns the hash of the transaction which is used to sign it
func (s *Transaction) Message() hash.Hash256 {
	return bin.MustWriterToHash(s.withOutFrom())
}

func TxArg(tx *Transaction) (to common.Address, method string, data []interface{}, err error) {
	method = tx.Method
	to = tx.To
	data, err = bin.TypeReadAll(tx.Args, -1)
	return
}

// TransactionID returns the id of the transaction
func TransactionID(Height uint32, Index uint16) string {
	bs := make([]byte, 6)
	binary.BigEndian.PutUint32(bs, Height)
	binary.BigEndian.PutUint16(bs[4:], Index)
	return hex.EncodeToString(bs)
}

// ParseTransactionID returns the height and the index of the transaction id
func ParseTransactionID(TXID string) (uint32, uint16, error) {
	if len(TXID) != 12 {
		return 0, 0, errors.WithStack(ErrInvalidTransactionIDFormat)
	}
	bs, err := hex.DecodeString(TXID)
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	Height := binary.BigEndian.Uint32(bs)
	Index := binary.BigEndian.Uint16(bs[4:])
	return Height, Index, nil
}

// TransactionIDBytes returns the byte form id of the transaction
func TransactionIDBytes(Height uint32, Index uint16) []byte {
	bs := make([]byte, 6)
	binary.BigEndian.PutUint32(bs, Height)
	binary.BigEndian.PutUint16(bs[4:], Index)
	return bs
}

// ParseTransactionIDBytes returns the height and the index of the byte form transaction id
func ParseTransactionIDBytes(TXID []byte) (uint32, uint16, error) {
	if len(TXID) != 6 {
		return 0, 0, errors.WithStack(ErrInvalidTransactionIDFormat)
	}
	Height := binary.BigEndian.Uint32(TXID)
	Index := binary.BigEndian.Uint16(TXID[4:])
	return Height, Index, nil
}

package types

import (
	"math/big"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/hash"
	"github.com/pkg/errors"
)

// internalLoader defines functions that load state data under the bottom of
// the context data stack. A parent Context satisfies it as well, so contexts
// can be chained block by block without a backing store.
type internalLoader interface {
	ChainID() *big.Int
	Version() uint16
	TargetHeight() uint32
	PrevHash() hash.Hash256
	LastTimestamp() uint64
	AddrSeq(addr common.Address) uint64
	MainToken() *common.Address
	IsContract(addr common.Address) bool
	Contract(addr common.Address) (Contract, error)
	Data(cont common.Address, addr common.Address, name []byte) []byte
}

type emptyLoader struct {
	chainID *big.Int
	version uint16
}

// newEmptyLoader is used for generating genesis state
func newEmptyLoader(ChainID *big.Int, Version uint16) internalLoader {
	return &emptyLoader{
		chainID: ChainID,
		version: Version,
	}
}

// ChainID returns the chain id of the genesis
func (st *emptyLoader) ChainID() *big.Int {
	return st.chainID
}

// Version returns the chain version of the genesis
func (st *emptyLoader) Version() uint16 {
	return st.version
}

// TargetHeight returns 0
func (st *emptyLoader) TargetHeight() uint32 {
	return 0
}

// PrevHash returns hash.Hash256{}
func (st *emptyLoader) PrevHash() hash.Hash256 {
	return hash.Hash256{}
}

// LastTimestamp returns 0
func (st *emptyLoader) LastTimestamp() uint64 {
	return 0
}

// AddrSeq returns 0
func (st *emptyLoader) AddrSeq(addr common.Address) uint64 {
	return 0
}

// MainToken returns nil
func (st *emptyLoader) MainToken() *common.Address {
	return nil
}

// IsContract returns false
func (st *emptyLoader) IsContract(addr common.Address) bool {
	return false
}

// Contract returns ErrNotExistContract
func (st *emptyLoader) Contract(addr common.Address) (Contract, error) {
	return nil, errors.WithStack(ErrNotExistContract)
}

// Data returns nil
func (st *emptyLoader) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return nil
}

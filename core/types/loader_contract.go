package types

import (
	"math/big"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/hash"
)

// ContractLoader defines functions that loads state data from the target chain
type ContractLoader interface {
	ChainID() *big.Int
	Version() uint16
	TargetHeight() uint32
	PrevHash() hash.Hash256
	LastTimestamp() uint64
	MainToken() *common.Address
	IsContract(addr common.Address) bool
	AddrSeq(addr common.Address) uint64
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
}

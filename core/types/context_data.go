package types

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
	"github.com/meverselabs/swaprelay/common/hash"
	"github.com/pkg/errors"
)

// ContextData is a state data of the context
type ContextData struct {
	cache             *contextCache
	Parent            *ContextData
	mainToken         *common.Address
	AddrSeqMap        map[common.Address]uint64
	ContractDefineMap map[common.Address]*ContractDefine
	DataMap           map[string][]byte
	DeletedDataMap    map[string]bool
	isTop             bool
	seq               uint32
}

// NewContextData returns a ContextData
func NewContextData(cache *contextCache, Parent *ContextData) *ContextData {
	ctd := &ContextData{
		cache:             cache,
		Parent:            Parent,
		AddrSeqMap:        map[common.Address]uint64{},
		ContractDefineMap: map[common.Address]*ContractDefine{},
		DataMap:           map[string][]byte{},
		DeletedDataMap:    map[string]bool{},
		isTop:             true,
	}
	return ctd
}

// MainToken returns the MainToken
func (ctd *ContextData) MainToken() *common.Address {
	if ctd.mainToken != nil {
		return ctd.mainToken
	}
	var mainToken *common.Address
	if ctd.Parent != nil {
		mainToken = ctd.Parent.MainToken()
	} else {
		mainToken = ctd.cache.MainToken()
	}
	if ctd.isTop {
		ctd.mainToken = mainToken
	}
	return mainToken
}

// SetMainToken sets the maintoken
func (ctd *ContextData) SetMainToken(addr common.Address) {
	ctd.mainToken = &addr
}

// IsContract returns the address is a contract or not
func (ctd *ContextData) IsContract(addr common.Address) bool {
	if _, has := ctd.ContractDefineMap[addr]; has {
		return true
	} else if ctd.Parent != nil {
		return ctd.Parent.IsContract(addr)
	} else {
		return ctd.cache.IsContract(addr)
	}
}

// Contract returns the contract
func (ctd *ContextData) Contract(addr common.Address) (Contract, error) {
	if cd, has := ctd.ContractDefineMap[addr]; has {
		return CreateContract(cd)
	} else if ctd.Parent != nil {
		return ctd.Parent.Contract(addr)
	} else {
		return ctd.cache.Contract(addr)
	}
}

// NextSeq returns the next sequence number
func (ctd *ContextData) NextSeq() uint32 {
	ctd.seq++
	return ctd.seq
}

// DeployContract deploys the contract to the chain
func (ctd *ContextData) DeployContract(sender common.Address, ClassID uint64, Args []byte) (Contract, error) {
	if !IsValidClassID(ClassID) {
		return nil, errors.WithStack(ErrInvalidClassID)
	}

	base := make([]byte, 1+common.AddressLength+8+4)
	base[0] = 0xff
	copy(base[1:], sender[:])
	copy(base[1+common.AddressLength:], bin.Uint64Bytes(ClassID))
	copy(base[1+common.AddressLength+8:], bin.Uint32Bytes(ctd.NextSeq()))
	height := ctd.cache.ctx.TargetHeight()
	if height > 0 {
		bs := bin.Uint32Bytes(height)
		base = append(base, bs...)
	}
	h := hash.Hash(base)
	addr := common.BytesToAddress(h[12:])
	cd := &ContractDefine{
		Address: addr,
		Owner:   sender,
		ClassID: ClassID,
	}
	cont, err := CreateContract(cd)
	if err != nil {
		return nil, err
	}
	ctd.ContractDefineMap[addr] = cd
	if err := cont.OnCreate(ctd.cache.ctx.ContractContext(cont, addr), Args); err != nil {
		return nil, err
	}
	return cont, nil
}

// Data returns the data
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := string(cont[:]) + string(addr[:]) + string(name)
	if _, has := ctd.DeletedDataMap[key]; has {
		return nil
	}
	if value, has := ctd.DataMap[key]; has {
		return value
	}
	var value []byte
	if ctd.Parent != nil {
		value = ctd.Parent.Data(cont, addr, name)
	} else {
		value = ctd.cache.Data(cont, addr, name)
	}
	if len(value) == 0 {
		return nil
	}
	if ctd.isTop {
		nvalue := make([]byte, len(value))
		copy(nvalue, value)
		return nvalue
	}
	return value
}

// SetData inserts the data
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := string(cont[:]) + string(addr[:]) + string(name)
	if len(value) == 0 {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
	} else {
		delete(ctd.DeletedDataMap, key)
		ctd.DataMap[key] = value
	}
}

// AddrSeq returns the number of txs using the UseSeq flag of the address
func (ctd *ContextData) AddrSeq(addr common.Address) uint64 {
	var seq uint64
	var has bool
	if seq, has = ctd.AddrSeqMap[addr]; has {
		return seq
	}
	if ctd.Parent != nil {
		seq = ctd.Parent.AddrSeq(addr)
	} else {
		seq = ctd.cache.AddrSeq(addr)
	}
	if ctd.isTop {
		ctd.AddrSeqMap[addr] = seq
	}
	return seq
}

// AddAddrSeq updates the sequence of the target address
func (ctd *ContextData) AddAddrSeq(addr common.Address) {
	ctd.AddrSeqMap[addr] = ctd.AddrSeq(addr) + 1
}

// Hash returns the hash value of it
func (ctd *ContextData) Hash() hash.Hash256 {
	var buffer bytes.Buffer
	buffer.WriteString("ChainID")
	buffer.Write(ctd.cache.ctx.ChainID().Bytes())
	buffer.WriteString("ChainVersion")
	buffer.Write(bin.Uint16Bytes(ctd.cache.ctx.Version()))
	buffer.WriteString("Height")
	buffer.Write(bin.Uint32Bytes(ctd.cache.ctx.TargetHeight()))
	buffer.WriteString("PrevHash")
	PrevHash := ctd.cache.ctx.PrevHash()
	buffer.Write(PrevHash[:])
	buffer.WriteString("AddrSeqMap")
	EachAllAddressUint64(ctd.AddrSeqMap, func(key common.Address, value uint64) error {
		buffer.Write(key[:])
		buffer.Write([]byte{0})
		buffer.Write(bin.Uint64Bytes(value))
		return nil
	})
	buffer.WriteString("MainToken")
	if ctd.mainToken != nil {
		buffer.Write((*ctd.mainToken)[:])
	}
	buffer.WriteString("DataMap")
	EachAllStringBytes(ctd.DataMap, func(key string, value []byte) error {
		buffer.Write([]byte(key))
		buffer.Write(value)
		return nil
	})
	buffer.WriteString("DeletedDataMap")
	EachAllStringBool(ctd.DeletedDataMap, func(key string, value bool) error {
		buffer.WriteString(key)
		return nil
	})
	return hash.DoubleHash(buffer.Bytes())
}

// Dump prints the context data
func (ctd *ContextData) Dump() string {
	var buffer bytes.Buffer
	buffer.WriteString("ChainID\n")
	buffer.WriteString(ctd.cache.ctx.ChainID().String())
	buffer.WriteString("\n")
	buffer.WriteString("ChainVersion\n")
	buffer.WriteString(strconv.FormatUint(uint64(ctd.cache.ctx.Version()), 10))
	buffer.WriteString("\n")
	buffer.WriteString("Height\n")
	buffer.WriteString(strconv.FormatUint(uint64(ctd.cache.ctx.TargetHeight()), 10))
	buffer.WriteString("\n")
	buffer.WriteString("PrevHash\n")
	PrevHash := ctd.cache.ctx.PrevHash()
	buffer.WriteString(PrevHash.String())
	buffer.WriteString("\n")
	buffer.WriteString("AddrSeqMap\n")
	EachAllAddressUint64(ctd.AddrSeqMap, func(key common.Address, value uint64) error {
		buffer.WriteString(key.String())
		buffer.WriteString(":")
		buffer.WriteString(strconv.FormatUint(value, 10))
		buffer.WriteString("\n")
		return nil
	})
	buffer.WriteString("MainToken\n")
	if ctd.mainToken != nil {
		buffer.WriteString(ctd.mainToken.String())
		buffer.WriteString("\n")
	}
	buffer.WriteString("DataMap\n")
	EachAllStringBytes(ctd.DataMap, func(key string, value []byte) error {
		buffer.WriteString(hex.EncodeToString([]byte(key)))
		buffer.WriteString(":")
		buffer.WriteString(hash.Hash(value).String())
		buffer.WriteString("\n")
		return nil
	})
	buffer.WriteString("DeletedDataMap\n")
	EachAllStringBool(ctd.DeletedDataMap, func(key string, value bool) error {
		buffer.WriteString(hex.EncodeToString([]byte(key)))
		buffer.WriteString("\n")
		return nil
	})
	return buffer.String()
}

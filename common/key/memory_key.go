package key

import (
	"crypto/ecdsa"
	"encoding/hex"
	"math/big"
	"strings"
	"sync"

	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/hash"
)

// MemoryKey is the private key kept in memory
type MemoryKey struct {
	sync.Mutex
	ChainID *big.Int
	privKey *ecdsa.PrivateKey
	pubkey  common.PublicKey
}

// NewMemoryKey returns a MemoryKey with a newly generated private key
func NewMemoryKey(ChainID *big.Int) (*MemoryKey, error) {
	privKey, err := ecrypto.GenerateKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ac := &MemoryKey{
		ChainID: ChainID,
		privKey: privKey,
	}
	ac.calcPubkey()
	return ac, nil
}

// NewMemoryKeyFromBytes returns a MemoryKey from the private key bytes
func NewMemoryKeyFromBytes(ChainID *big.Int, pk []byte) (*MemoryKey, error) {
	privKey, err := ecrypto.ToECDSA(pk)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ac := &MemoryKey{
		ChainID: ChainID,
		privKey: privKey,
	}
	ac.calcPubkey()
	return ac, nil
}

// NewMemoryKeyFromString returns a MemoryKey from the hex private key string
func NewMemoryKeyFromString(ChainID *big.Int, pk string) (*MemoryKey, error) {
	pk = strings.Replace(pk, "0x", "", 1)
	bs, err := hex.DecodeString(pk)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return NewMemoryKeyFromBytes(ChainID, bs)
}

func (ac *MemoryKey) calcPubkey() {
	bs := ecrypto.FromECDSAPub(&ac.privKey.PublicKey)
	copy(ac.pubkey[:], bs)
}

// PublicKey returns the public key of the private key
func (ac *MemoryKey) PublicKey() common.PublicKey {
	return ac.pubkey.Clone()
}

// Sign returns the signature of the hash using the private key
func (ac *MemoryKey) Sign(h hash.Hash256) (common.Signature, error) {
	ac.Lock()
	defer ac.Unlock()

	bs, err := ecrypto.Sign(h[:], ac.privKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	v := big.NewInt(int64(bs[64]))
	v.Add(v, common.GetChainCap(ac.ChainID))
	sig := make([]byte, 64, 64+len(v.Bytes()))
	copy(sig, bs[:64])
	return append(sig, v.Bytes()...), nil
}

// SignWithPassphrase returns the signature of the hash using the private key
func (ac *MemoryKey) SignWithPassphrase(h hash.Hash256, passphrase []byte) (common.Signature, error) {
	return ac.Sign(h)
}

// Verify checks that the signature is made by the public key of it
func (ac *MemoryKey) Verify(h hash.Hash256, sig common.Signature) bool {
	pubkey, err := common.RecoverPubkey(ac.ChainID, h, sig)
	if err != nil {
		return false
	}
	return pubkey == ac.pubkey
}

// Bytes returns the byte array of the key
func (ac *MemoryKey) Bytes() []byte {
	return ecrypto.FromECDSA(ac.privKey)
}

// Clear removes the private key from the memory
func (ac *MemoryKey) Clear() {
	ac.Lock()
	defer ac.Unlock()

	ac.privKey.D.SetInt64(0)
	ac.privKey = nil
}

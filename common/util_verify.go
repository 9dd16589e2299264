package common

import (
	"math/big"

	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common/hash"
)

// RecoverPubkey recover the public key using the hash value and the signature
func RecoverPubkey(ChainID *big.Int, h hash.Hash256, sig Signature) (PublicKey, error) {
	if len(sig) < MinSignatureSize {
		return PublicKey{}, errors.WithStack(ErrInvalidSignatureFormat)
	}
	v := big.NewInt(0).SetBytes(sig[64:])
	v.Sub(v, GetChainCap(ChainID))
	if v.Sign() < 0 || v.BitLen() > 8 {
		return PublicKey{}, errors.WithStack(ErrInvalidSignature)
	}
	rs := make([]byte, 65)
	copy(rs, sig[:64])
	rs[64] = byte(v.Uint64())
	bs, err := ecrypto.Ecrecover(h[:], rs)
	if err != nil {
		return PublicKey{}, errors.WithStack(err)
	}
	var pubkey PublicKey
	copy(pubkey[:], bs)
	return pubkey, nil
}

// VerifySignature checks the signature with the public key and the hash value
func VerifySignature(pubkey PublicKey, h hash.Hash256, sig Signature) error {
	if len(sig) < MinSignatureSize {
		return errors.WithStack(ErrInvalidSignatureFormat)
	}
	if !ecrypto.VerifySignature(pubkey[:], h[:], sig[:64]) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

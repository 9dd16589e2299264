package common

import (
	"errors"
)

// common errors
var (
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrInvalidPublicKey       = errors.New("invalid public key")
	ErrInvalidPublicKeyFormat = errors.New("invalid public key format")
)

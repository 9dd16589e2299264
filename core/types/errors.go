package types

import "errors"

// transaction errors
var (
	ErrNotExistContract           = errors.New("not exist contract")
	ErrExistContractType          = errors.New("exist contract type")
	ErrInvalidClassID             = errors.New("invalid class id")
	ErrInvalidChainID             = errors.New("invalid chain id")
	ErrInvalidSequence            = errors.New("invalid sequence")
	ErrInvalidTransactionIDFormat = errors.New("invalid transaction id format")
	ErrDirtyContext               = errors.New("dirty context")
	ErrExceedCallDepth            = errors.New("exceed call depth")
)

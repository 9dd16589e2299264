package relay

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
	"github.com/meverselabs/swaprelay/common/bin"
)

// PathKind selects how the swap path is encoded into the router instruction
type PathKind uint8

const (
	// PathArray encodes the path as an address list with a pool type flag per hop
	PathArray PathKind = 0
	// PathPacked encodes the path as tokenIn|feeTier|tokenOut packed bytes
	PathPacked PathKind = 1
)

const (
	commandSimplePath = byte(0x08)
	commandExactInput = byte(0x00)
)

// SwapRequest is the argument set of a single swap. It lives for one call only.
type SwapRequest struct {
	TokenIn      common.Address
	TokenOut     common.Address
	AmountIn     *amount.Amount
	AmountOutMin *amount.Amount
	Recipient    common.Address
	Deadline     uint64
	PathKind     PathKind
	PoolSelector uint64
}

// encodeInstruction builds the one-byte command and the single-element input
// list of the router call. The simple path layout carries the address list and
// the pool type flags, the exact input layout carries the packed path bytes
// with the relay as the payer.
func encodeInstruction(payer common.Address, req *SwapRequest) ([]byte, [][]byte, error) {
	switch req.PathKind {
	case PathArray:
		input := bin.TypeWriteAll(
			req.Recipient,
			req.AmountIn,
			req.AmountOutMin,
			[]common.Address{req.TokenIn, req.TokenOut},
			[]bool{req.PoolSelector != 0},
			false,
		)
		return []byte{commandSimplePath}, [][]byte{input}, nil
	case PathPacked:
		path := packPath(req.TokenIn, req.TokenOut, req.PoolSelector)
		input := bin.TypeWriteAll(
			req.Recipient,
			req.AmountIn,
			req.AmountOutMin,
			path,
			payer,
			false,
		)
		return []byte{commandExactInput}, [][]byte{input}, nil
	}
	return nil, nil, errors.New("Relay: INVALID_ARGUMENT")
}

// packPath concatenates tokenIn, the 3 byte big endian fee tier and tokenOut
func packPath(tokenIn common.Address, tokenOut common.Address, feeTier uint64) []byte {
	path := make([]byte, 0, common.AddressLength*2+3)
	path = append(path, tokenIn[:]...)
	path = append(path, byte(feeTier>>16), byte(feeTier>>8), byte(feeTier))
	path = append(path, tokenOut[:]...)
	return path
}

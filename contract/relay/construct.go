package relay

import (
	"io"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
)

// RelayContractConstruction fixes the router endpoint and the optional
// token pair of the relay at deploy time
type RelayContractConstruction struct {
	Router           common.Address
	PairTokenA       common.Address
	PairTokenB       common.Address
	PairPathKind     uint8
	PairPoolSelector uint64
}

func (s *RelayContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Router); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.PairTokenA); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.PairTokenB); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, s.PairPathKind); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.PairPoolSelector); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *RelayContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Router); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.PairTokenA); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.PairTokenB); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &s.PairPathKind); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.PairPoolSelector); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

package types

import (
	"io"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/bin"
)

type EventType uint8

const (
	EventTagCallHistory EventType = iota
	EventTagTxMsg
)

// Event is a interaction record of the transaction execution
type Event struct {
	Index  uint16
	Type   EventType
	Result []byte
}

func NewEvent(Index uint16, Type EventType, Result []byte) *Event {
	return &Event{
		Index:  Index,
		Type:   Type,
		Result: Result,
	}
}

func (s *Event) Clone() *Event {
	result := make([]byte, len(s.Result))
	copy(result, s.Result)
	return &Event{
		Index:  s.Index,
		Type:   s.Type,
		Result: result,
	}
}

func (s *Event) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint16(w, s.Index); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, uint8(s.Type)); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Result); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Event) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint16(r, &s.Index); err != nil {
		return sum, err
	}
	var t uint8
	if sum, err := sr.Uint8(r, &t); err != nil {
		return sum, err
	} else {
		s.Type = EventType(t)
	}
	if sum, err := sr.Bytes(r, &s.Result); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// MethodCallEvent is a record of a single contract method call including
// inter-contract calls made through the execution context
type MethodCallEvent struct {
	From   common.Address
	To     common.Address
	Method string
	Args   []interface{}
	Result []interface{}
	Error  string
}

func (s *MethodCallEvent) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.From); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.To); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Method); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, bin.TypeWriteAll(s.Args...)); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, bin.TypeWriteAll(s.Result...)); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Error); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *MethodCallEvent) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.From); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.To); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Method); err != nil {
		return sum, err
	}
	var bs []byte
	if sum, err := sr.Bytes(r, &bs); err != nil {
		return sum, err
	} else if vs, err := bin.TypeReadAll(bs, -1); err != nil {
		return sum, err
	} else {
		s.Args = vs
	}
	if sum, err := sr.Bytes(r, &bs); err != nil {
		return sum, err
	} else if vs, err := bin.TypeReadAll(bs, -1); err != nil {
		return sum, err
	} else {
		s.Result = vs
	}
	if sum, err := sr.String(r, &s.Error); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

package bin

import "github.com/pkg/errors"

// type tags used by TypeWriter and TypeReader
const (
	tagUint8      = byte(0x01)
	tagUint16     = byte(0x02)
	tagUint32     = byte(0x03)
	tagUint64     = byte(0x04)
	tagBytes      = byte(0x05)
	tagString     = byte(0x06)
	tagBool       = byte(0x07)
	tagHash256    = byte(0x08)
	tagSignature  = byte(0x09)
	tagAddress    = byte(0x0a)
	tagPublicKey  = byte(0x0b)
	tagAmount     = byte(0x0c)
	tagBigInt     = byte(0x0d)
	tagSlice      = byte(0x0e)
	tagAddressArr = byte(0x0f)
	tagAmountArr  = byte(0x10)
)

// ErrInvalidLength is returned when the read or written length is not matched
var ErrInvalidLength = errors.New("invalid length")

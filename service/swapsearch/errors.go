package swapsearch

import (
	"fmt"
)

type ErrCannotSetHeight struct {
	err error
	h   uint32
}

func (e *ErrCannotSetHeight) Error() string {
	return fmt.Sprintln("CannotSetHeight", e.h, "err:", e.err)
}

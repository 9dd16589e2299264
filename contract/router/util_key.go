package router

import (
	"github.com/meverselabs/swaprelay/common"
)

var (
	tagPairInfo = byte(0x01)
)

func makePairKey(tokenIn common.Address, tokenOut common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagPairInfo
	copy(bs[1:], tokenIn[:])
	copy(bs[1+common.AddressLength:], tokenOut[:])
	return bs
}

package bin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meverselabs/swaprelay/common"
	"github.com/meverselabs/swaprelay/common/amount"
)

func TestTypeReadWrite(t *testing.T) {
	assert := assert.New(t)

	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	am := amount.NewAmount(1000, 0)
	bs := TypeWriteAll(
		uint8(8),
		uint64(1234567890),
		"swap",
		true,
		[]byte{0xde, 0xad},
		addr,
		am,
		big.NewInt(9999),
	)

	vs, err := TypeReadAll(bs, 8)
	assert.NoError(err)
	assert.Equal(uint8(8), vs[0])
	assert.Equal(uint64(1234567890), vs[1])
	assert.Equal("swap", vs[2])
	assert.Equal(true, vs[3])
	assert.Equal([]byte{0xde, 0xad}, vs[4])
	assert.Equal(addr, vs[5])
	assert.True(am.Equal(vs[6].(*amount.Amount)))
	assert.Equal(big.NewInt(9999), vs[7])
}

func TestTypeReadWriteSlices(t *testing.T) {
	assert := assert.New(t)

	addrs := []common.Address{
		common.HexToAddress("0x1000000000000000000000000000000000000001"),
		common.HexToAddress("0x2000000000000000000000000000000000000002"),
	}
	ams := []*amount.Amount{amount.NewAmount(1, 0), amount.NewAmount(2, 0)}
	inputs := [][]byte{{0x01, 0x02}, {0x03}}
	bs := TypeWriteAll(addrs, ams, inputs, []bool{true, false})

	vs, err := TypeReadAll(bs, 4)
	assert.NoError(err)
	assert.Equal(addrs, vs[0])

	rams := vs[1].([]*amount.Amount)
	assert.Len(rams, 2)
	assert.True(ams[0].Equal(rams[0]))
	assert.True(ams[1].Equal(rams[1]))

	rinputs := vs[2].([]interface{})
	assert.Len(rinputs, 2)
	assert.Equal([]byte{0x01, 0x02}, rinputs[0])
	assert.Equal([]byte{0x03}, rinputs[1])

	rflags := vs[3].([]interface{})
	assert.Equal([]interface{}{true, false}, rflags)
}

func TestTypeReadCount(t *testing.T) {
	assert := assert.New(t)

	bs := TypeWriteAll(uint16(7))
	_, err := TypeReadAll(bs, 2)
	assert.Error(err)

	vs, err := TypeReadAll(nil, -1)
	assert.NoError(err)
	assert.Empty(vs)
}

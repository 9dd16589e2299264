package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", NewAmount(0, 0).String())
	assert.Equal("1", NewAmount(1, 0).String())
	assert.Equal("1.5", MustParseAmount("1.5").String())
	assert.Equal("0.000000000000000001", NewAmount(0, 1).String())
	assert.Equal("123.456", MustParseAmount("123.456").String())
}

func TestAmountParse(t *testing.T) {
	assert := assert.New(t)

	am, err := ParseAmount("10.1")
	assert.NoError(err)
	assert.Equal(NewAmount(10, 0).Add(COIN.DivC(10)), am)

	_, err = ParseAmount("abc")
	assert.Error(err)
	_, err = ParseAmount("1.2.3")
	assert.Error(err)
}

func TestAmountArithmetic(t *testing.T) {
	assert := assert.New(t)

	a := NewAmount(1000, 0)
	fee := a.MulC(30).DivC(10000)
	assert.Equal("3", fee.String())
	assert.Equal("997", a.Sub(fee).String())

	b := a.Clone()
	b.Int.SetInt64(0)
	assert.Equal("1000", a.String())

	assert.True(NewAmount(0, 0).IsZero())
	assert.True(NewAmount(1, 0).Sub(NewAmount(2, 0)).IsMinus())
	assert.True(NewAmount(1, 0).Less(NewAmount(2, 0)))
	assert.True(MustParseAmount("2.5").Equal(NewAmount(2, 0).Add(COIN.DivC(2))))
}

func TestAmountJSON(t *testing.T) {
	assert := assert.New(t)

	bs, err := MustParseAmount("12.34").MarshalJSON()
	assert.NoError(err)
	assert.Equal(`"12.34"`, string(bs))

	var am Amount
	assert.NoError(am.UnmarshalJSON(bs))
	assert.Equal("12.34", am.String())
	assert.Error(am.UnmarshalJSON([]byte(`12.34`)))
}

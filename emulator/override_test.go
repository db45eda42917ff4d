package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ureg/vm"
)

func TestParseOverride(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		arg   string
		reg   int
		value uint64
	}){
		{"r0=42", 0, 42},
		{"R1=42", 1, 42},
		{"r2=-1", 2, ^uint64(0)},
		{"r3=0x10", 3, 16},
		{"r7=18446744073709551615", 7, ^uint64(0)},
	}

	for _, entry := range table {
		reg, value, err := ParseOverride(entry.arg)
		assert.NoError(err, entry.arg)
		assert.Equal(entry.reg, reg, entry.arg)
		assert.Equal(entry.value, value, entry.arg)
	}
}

func TestParseOverrideErr(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"r0",
		"x0=1",
		"r=1",
		"=1",
		"r0=",
		"r0=zebra",
		"0=5",
		"rX=5",
	}

	for _, arg := range table {
		_, _, err := ParseOverride(arg)
		assert.Error(err, arg)
	}

	_, _, err := ParseOverride("r8=1")
	assert.ErrorIs(err, vm.ErrRegisterInvalid)

	_, _, err = ParseOverride("r100=1")
	assert.ErrorIs(err, vm.ErrRegisterInvalid)

	var oe ErrOverride
	_, _, err = ParseOverride("bogus")
	assert.True(errors.As(err, &oe))
	assert.Equal("bogus", string(oe))
}

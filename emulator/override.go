package emulator

import (
	"strconv"
	"strings"

	"github.com/ezrec/ureg/vm"
)

// ParseOverride parses a register override argument of the form
// rN=value, as accepted on the command line to seed initial register
// state. Values take any base the assembler accepts, negative values
// wrapping to their two's complement representation.
func ParseOverride(arg string) (reg int, value uint64, err error) {
	name, text, ok := strings.Cut(arg, "=")
	if !ok {
		err = ErrOverride(arg)
		return
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 2 || name[0] != 'r' {
		err = ErrOverride(arg)
		return
	}

	reg, aerr := strconv.Atoi(name[1:])
	if aerr != nil {
		err = ErrOverride(arg)
		return
	}
	if reg < 0 || reg >= vm.REGISTER_COUNT {
		err = vm.ErrRegisterInvalid
		return
	}

	text = strings.TrimSpace(text)
	value, uerr := strconv.ParseUint(text, 0, 64)
	if uerr == nil {
		return
	}

	i64, ierr := strconv.ParseInt(text, 0, 64)
	if ierr != nil {
		err = ErrOverride(arg)
		return
	}
	value = uint64(i64)

	return
}

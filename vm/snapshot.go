package vm

import (
	"fmt"
	"io"
	"strings"
)

// Snapshot is a point-in-time copy of the register file and zero flag.
type Snapshot struct {
	Registers [REGISTER_COUNT]uint64
	Zero      bool
}

// Snapshot copies the machine's observable state.
func (m *Machine) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Registers: m.Registers,
		Zero:      m.Zero,
	}
	return
}

const snapshotHeader = "                 unsigned                signed                 hex"

// WriteTo renders the register dump, one fixed-width row per register.
// The dump must render identically regardless of locale.
func (snap Snapshot) WriteTo(w io.Writer) (n int64, err error) {
	c, err := fmt.Fprintf(w, "Zero: %v\n%s\n", snap.Zero, snapshotHeader)
	n += int64(c)
	if err != nil {
		return
	}

	for reg, value := range snap.Registers {
		c, err = fmt.Fprintf(w, "R%d:  %20d  %20d  0x%016X\n", reg, value, int64(value), value)
		n += int64(c)
		if err != nil {
			return
		}
	}

	return
}

func (snap Snapshot) String() string {
	sb := &strings.Builder{}
	_, _ = snap.WriteTo(sb)
	return sb.String()
}

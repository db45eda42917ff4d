// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"os"

	"github.com/ezrec/ureg/vm"
)

// Emulator couples a register machine with its operator console: the
// register dumps on halt and debug, and the blocking debug resume.
type Emulator struct {
	Verbose     bool // If set, enables verbose logging.
	*vm.Machine      // Reference to the machine being run.

	Output  io.Writer // Register dump destination.
	Console Resumer   // Releases debug pauses; nil releases immediately.
}

// NewEmulator creates an emulator ready to run prog.
func NewEmulator(prog *vm.Program) (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(prog),
		Output:  os.Stdout,
	}
	return
}

// LineNo returns the source line number of the instruction at the
// program counter, or 0 once the counter passes the end of the program.
func (emu *Emulator) LineNo() int {
	if emu.PC < emu.Program.Len() {
		return emu.Program.At(emu.PC).LineNo
	}
	return 0
}

// dump writes a heading and the current register dump.
func (emu *Emulator) dump(heading string) (err error) {
	_, err = fmt.Fprintln(emu.Output, heading)
	if err != nil {
		return
	}

	_, err = emu.Snapshot().WriteTo(emu.Output)
	return
}

// Tick performs a single tick of the emulator.
//
// A debug pause spends one tick rendering the dump and waiting on the
// console before the machine moves past the debug instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	switch emu.State {
	case vm.STATE_HALTED:
		done = true
		return

	case vm.STATE_AWAIT_RESUME:
		err = emu.dump(fmt.Sprintf("Debug: line %d", lineno))
		if err != nil {
			return
		}

		if emu.Console != nil {
			err = emu.Console.Resume()
			if err != nil {
				return
			}
		}

		emu.Resume()
		return
	}

	emu.Machine.Verbose = emu.Verbose

	err = emu.Step()
	if err != nil {
		return
	}

	if emu.State == vm.STATE_HALTED {
		done = true
		err = emu.dump("Finished:")
	}

	return
}

// Run ticks the machine until it halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

package vm

import (
	"log"
)

// REGISTER_COUNT is the size of the register file.
const REGISTER_COUNT = 8

// Status is the execution state of a Machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATE_RUNNING      = Status(0) // running
	STATE_HALTED       = Status(1) // halted
	STATE_AWAIT_RESUME = Status(2) // awaiting debug resume
)

// Machine is the register machine execution context.
//
// The program counter is always in [0, Program.Len()]; reaching the
// upper bound is the normal halt condition, not an error.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Instructions and label table to execute.

	Registers [REGISTER_COUNT]uint64 // Register bank, r0..r7.
	Zero      bool                   // Zero flag.
	PC        int                    // Current program counter.
	State     Status                 // Execution state.
}

// NewMachine creates a Machine ready to run prog from its first instruction.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{Program: prog}
	return
}

// value reads an operand's current value.
func (m *Machine) value(op Operand) (value uint64) {
	if op.Kind == KIND_REG {
		return m.Registers[op.Reg]
	}
	return op.Imm
}

// setWithZero writes a register and records whether the result was zero.
func (m *Machine) setWithZero(reg int, value uint64) {
	m.Registers[reg] = value
	m.Zero = value == 0
}

// jump redirects the program counter to a resolved label index.
// An index outside [0, Program.Len()] is a runtime fault; index equal
// to Program.Len() halts on the following step.
func (m *Machine) jump(arg Operand, next *int) (err error) {
	if arg.Index < 0 || arg.Index > m.Program.Len() {
		return ErrJumpTarget
	}
	*next = arg.Index
	return
}

// Step executes the single instruction at the program counter.
//
// On a debug instruction the machine enters STATE_AWAIT_RESUME with the
// program counter still on the debug slot; call Resume to continue.
func (m *Machine) Step() (err error) {
	if m.State != STATE_RUNNING {
		return ErrNotRunning
	}

	if m.PC >= m.Program.Len() {
		m.State = STATE_HALTED
		return
	}

	inst := m.Program.At(m.PC)
	if inst.Op < 0 || int(inst.Op) >= len(opTable) {
		return ErrOpcodeInvalid
	}

	if m.Verbose {
		log.Printf("%3d: %v", m.PC, inst)
	}

	next := m.PC + 1
	err = opTable[inst.Op].Exec(m, inst.Args, &next)
	if err != nil {
		return
	}

	if m.State == STATE_AWAIT_RESUME {
		return
	}

	m.PC = next
	return
}

// Resume continues execution after a debug pause.
func (m *Machine) Resume() {
	if m.State == STATE_AWAIT_RESUME {
		m.PC += 1
		m.State = STATE_RUNNING
	}
}

func execNop(m *Machine, args []Operand, next *int) (err error) {
	return
}

func execDebug(m *Machine, args []Operand, next *int) (err error) {
	m.State = STATE_AWAIT_RESUME
	return
}

func execZero(m *Machine, args []Operand, next *int) (err error) {
	m.Registers[args[0].Reg] = 0
	return
}

func execMov(m *Machine, args []Operand, next *int) (err error) {
	m.Registers[args[0].Reg] = m.value(args[1])
	return
}

func execAdd(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])+m.value(args[2]))
	return
}

func execSub(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])-m.value(args[2]))
	return
}

func execMul(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])*m.value(args[2]))
	return
}

func execDiv(m *Machine, args []Operand, next *int) (err error) {
	div := m.value(args[2])
	if div == 0 {
		return ErrDivideByZero
	}
	m.setWithZero(args[0].Reg, m.value(args[1])/div)
	return
}

func execMod(m *Machine, args []Operand, next *int) (err error) {
	div := m.value(args[2])
	if div == 0 {
		return ErrDivideByZero
	}
	m.setWithZero(args[0].Reg, m.value(args[1])%div)
	return
}

func execInc(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.Registers[args[0].Reg]+1)
	return
}

func execDec(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.Registers[args[0].Reg]-1)
	return
}

func execAnd(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])&m.value(args[2]))
	return
}

func execOr(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])|m.value(args[2]))
	return
}

func execXor(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, m.value(args[1])^m.value(args[2]))
	return
}

func execNot(m *Machine, args []Operand, next *int) (err error) {
	m.setWithZero(args[0].Reg, ^m.Registers[args[0].Reg])
	return
}

func execShl(m *Machine, args []Operand, next *int) (err error) {
	m.Registers[args[0].Reg] <<= args[1].Imm & 63
	return
}

func execShr(m *Machine, args []Operand, next *int) (err error) {
	m.Registers[args[0].Reg] >>= args[1].Imm & 63
	return
}

func execCmp(m *Machine, args []Operand, next *int) (err error) {
	m.Zero = m.value(args[0])-m.value(args[1]) == 0
	return
}

func execJz(m *Machine, args []Operand, next *int) (err error) {
	if m.Zero {
		err = m.jump(args[0], next)
	}
	return
}

func execJnz(m *Machine, args []Operand, next *int) (err error) {
	if !m.Zero {
		err = m.jump(args[0], next)
	}
	return
}

func execJ(m *Machine, args []Operand, next *int) (err error) {
	return m.jump(args[0], next)
}

package vm

import (
	"fmt"
	"strings"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP   = Op(0)  // nop
	OP_DEBUG = Op(1)  // debug
	OP_ZERO  = Op(2)  // zero
	OP_MOV   = Op(3)  // mov
	OP_ADD   = Op(4)  // add
	OP_SUB   = Op(5)  // sub
	OP_MUL   = Op(6)  // mul
	OP_DIV   = Op(7)  // div
	OP_MOD   = Op(8)  // mod
	OP_INC   = Op(9)  // inc
	OP_DEC   = Op(10) // dec
	OP_AND   = Op(11) // and
	OP_OR    = Op(12) // or
	OP_XOR   = Op(13) // xor
	OP_NOT   = Op(14) // not
	OP_SHL   = Op(15) // shl
	OP_SHR   = Op(16) // shr
	OP_CMP   = Op(17) // cmp
	OP_JZ    = Op(18) // jz
	OP_JNZ   = Op(19) // jnz
	OP_J     = Op(20) // j
)

// Kind is a bitmask of acceptable operand kinds for one operand slot.
type Kind int

const (
	KIND_REG   = Kind(1 << 0)
	KIND_IMM   = Kind(1 << 1)
	KIND_LABEL = Kind(1 << 2)

	// KIND_VALUE slots take a register or an immediate.
	KIND_VALUE = KIND_REG | KIND_IMM
)

// Operand is a decoded operand. Kind holds exactly one kind bit once
// the assembler has classified the token.
type Operand struct {
	Kind  Kind
	Reg   int    // Register index, KIND_REG only.
	Imm   uint64 // Immediate value, KIND_IMM only.
	Label string // Label name, KIND_LABEL only.
	Index int    // Instruction index the label resolved to.
}

func (op Operand) String() string {
	switch op.Kind {
	case KIND_REG:
		return fmt.Sprintf("r%d", op.Reg)
	case KIND_IMM:
		return fmt.Sprintf("%d", op.Imm)
	case KIND_LABEL:
		return op.Label
	}
	return "?"
}

// Instruction is one decoded instruction and the source line it came from.
type Instruction struct {
	Op     Op
	Args   []Operand
	LineNo int
}

func (inst Instruction) String() string {
	if len(inst.Args) == 0 {
		return inst.Op.String()
	}
	args := make([]string, len(inst.Args))
	for n, arg := range inst.Args {
		args[n] = arg.String()
	}
	return inst.Op.String() + " " + strings.Join(args, ", ")
}

// OpInfo declares one opcode's operand signature and its semantics.
// Exec may write registers, update the zero flag, and redirect *next
// to move the program counter somewhere other than the next slot.
type OpInfo struct {
	Name string
	Args []Kind
	Exec func(m *Machine, args []Operand, next *int) error
}

// opTable is indexed by Op.
var opTable = []OpInfo{
	OP_NOP:   {Name: "nop", Exec: execNop},
	OP_DEBUG: {Name: "debug", Exec: execDebug},
	OP_ZERO:  {Name: "zero", Args: []Kind{KIND_REG}, Exec: execZero},
	OP_MOV:   {Name: "mov", Args: []Kind{KIND_REG, KIND_VALUE}, Exec: execMov},
	OP_ADD:   {Name: "add", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execAdd},
	OP_SUB:   {Name: "sub", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execSub},
	OP_MUL:   {Name: "mul", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execMul},
	OP_DIV:   {Name: "div", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execDiv},
	OP_MOD:   {Name: "mod", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execMod},
	OP_INC:   {Name: "inc", Args: []Kind{KIND_REG}, Exec: execInc},
	OP_DEC:   {Name: "dec", Args: []Kind{KIND_REG}, Exec: execDec},
	OP_AND:   {Name: "and", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execAnd},
	OP_OR:    {Name: "or", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execOr},
	OP_XOR:   {Name: "xor", Args: []Kind{KIND_REG, KIND_VALUE, KIND_VALUE}, Exec: execXor},
	OP_NOT:   {Name: "not", Args: []Kind{KIND_REG}, Exec: execNot},
	OP_SHL:   {Name: "shl", Args: []Kind{KIND_REG, KIND_IMM}, Exec: execShl},
	OP_SHR:   {Name: "shr", Args: []Kind{KIND_REG, KIND_IMM}, Exec: execShr},
	OP_CMP:   {Name: "cmp", Args: []Kind{KIND_REG, KIND_VALUE}, Exec: execCmp},
	OP_JZ:    {Name: "jz", Args: []Kind{KIND_LABEL}, Exec: execJz},
	OP_JNZ:   {Name: "jnz", Args: []Kind{KIND_LABEL}, Exec: execJnz},
	OP_J:     {Name: "j", Args: []Kind{KIND_LABEL}, Exec: execJ},
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]Op{
	"nop":   OP_NOP,
	"debug": OP_DEBUG,
	"zero":  OP_ZERO,
	"mov":   OP_MOV,
	"add":   OP_ADD,
	"sub":   OP_SUB,
	"mul":   OP_MUL,
	"div":   OP_DIV,
	"mod":   OP_MOD,
	"inc":   OP_INC,
	"dec":   OP_DEC,
	"and":   OP_AND,
	"or":    OP_OR,
	"xor":   OP_XOR,
	"not":   OP_NOT,
	"shl":   OP_SHL,
	"shr":   OP_SHR,
	"cmp":   OP_CMP,
	"jz":    OP_JZ,
	"jnz":   OP_JNZ,
	"j":     OP_J,
}

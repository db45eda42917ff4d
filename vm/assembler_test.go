package vm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("8", asm.Equate["REGISTER_COUNT"])
}

func instEqual(t *testing.T, expected, instructions []Instruction) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(instructions))
	if len(expected) == len(instructions) {
		for n := range len(expected) {
			assert.Equal(expected[n], instructions[n])
		}
	}
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"// countdown demo",
		".equ COUNT 3",
		"        mov r0, COUNT        # comment",
		"start:  dec r0               ; label and instruction share a line",
		"        jnz start",
		"        mov r1, $(COUNT * 2)",
		"done:",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Instruction{
		{Op: OP_MOV, Args: []Operand{{Kind: KIND_REG, Reg: 0}, {Kind: KIND_IMM, Imm: 3}}, LineNo: 3},
		{Op: OP_DEC, Args: []Operand{{Kind: KIND_REG, Reg: 0}}, LineNo: 4},
		{Op: OP_JNZ, Args: []Operand{{Kind: KIND_LABEL, Label: "start", Index: 1}}, LineNo: 5},
		{Op: OP_MOV, Args: []Operand{{Kind: KIND_REG, Reg: 1}, {Kind: KIND_IMM, Imm: 6}}, LineNo: 6},
	}

	instEqual(t, expected, prog.Instructions)

	assert.Equal(map[string]int{"start": 1, "done": 4}, prog.Labels)
}

func TestAssemblerCaseFolding(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"MOV R0, 5",
		"J END",
		"End:",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Instruction{
		{Op: OP_MOV, Args: []Operand{{Kind: KIND_REG, Reg: 0}, {Kind: KIND_IMM, Imm: 5}}, LineNo: 1},
		{Op: OP_J, Args: []Operand{{Kind: KIND_LABEL, Label: "end", Index: 2}}, LineNo: 2},
	}

	instEqual(t, expected, prog.Instructions)

	index, ok := prog.LabelIndex("end")
	assert.True(ok)
	assert.Equal(prog.Len(), index)
}

func TestAssemblerImmediates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		source string
		value  uint64
	}){
		{"mov r0, 42", 42},
		{"mov r0, 0x2a", 0x2a},
		{"mov r0, 0o52", 0o52},
		{"mov r0, 0b101010", 0b101010},
		{"mov r0, -1", 0xFFFFFFFFFFFFFFFF},
		{"mov r0, -12", 0xFFFFFFFFFFFFFFF4},
		{"mov r0, 18446744073709551615", 0xFFFFFFFFFFFFFFFF},
		{"mov r0, $(6 * 7)", 42},
		{"mov r0, $(1 << 8)", 256},
		{"mov r0, $(-2)", 0xFFFFFFFFFFFFFFFE},
		{"mov r0, $(LINENO)", 1},
	}

	for _, entry := range table {
		prog, err := asm.Parse(strings.NewReader(entry.source))
		assert.NoError(err, entry.source)
		if err != nil {
			continue
		}
		assert.Equal(1, prog.Len(), entry.source)
		assert.Equal(entry.value, prog.At(0).Args[1].Imm, entry.source)
	}
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ BASE 0x10",
		"mov r0, BASE",
		"mov r1, $(BASE + 6)",
		"mov r2, $(REGISTER_COUNT)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(uint64(0x10), prog.At(0).Args[1].Imm)
	assert.Equal(uint64(22), prog.At(1).Args[1].Imm)
	assert.Equal(uint64(8), prog.At(2).Args[1].Imm)
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"// full line",
		"# full line",
		"; full line",
		"",
		"   ",
		"nop // trailing",
		"nop # trailing",
		"nop ; trailing",
		"nop;attached",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(4, prog.Len())
	for _, inst := range prog.Instructions {
		assert.Equal(OP_NOP, inst.Op)
	}
}

func TestAssemblerLabelLink(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"back:",
		"  nop",
		"  jz back",
		"  jnz fwd",
		"  j back",
		"fwd:",
		"  nop",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(5, prog.Len())
	assert.Equal(0, prog.At(1).Args[0].Index)
	assert.Equal(4, prog.At(2).Args[0].Index)
	assert.Equal(0, prog.At(3).Args[0].Index)
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Various syntax errors
	table := [](struct {
		prog string
		line int
	}){
		{"dup:\nDUP:\n", 2},
		{"frob r0", 1},
		{"mov", 1},
		{"mov r0", 1},
		{"mov r0, 1, 2", 1},
		{"mov r8, 1", 1},
		{"mov r0, r9", 1},
		{"mov 5, r0", 1},
		{"mov r0, xyz", 1},
		{"shl r0, r1", 1},
		{"inc 5", 1},
		{"nop extra", 1},
		{"j", 1},
		{"j here there", 1},
		{"jz nowhere", 1},
		{"nop\n\njnz gone", 3},
		{".equ", 1},
		{".equ A", 1},
		{".equ A 1\n.equ A 2", 2},
		{"mov r0, $(\"aaa\")", 1},
		{"mov r0, $(more(\"aaa\"))", 1},
		{"div r0, r1", 1},
		{"cmp r0", 1},
	}

	for _, entry := range table {
		_, err := asm.Parse(strings.NewReader(entry.prog))
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err != nil {
			assert.True(errors.As(err, &se), entry.prog)
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
	}
}

func TestAssemblerErrKinds(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("mov r8, 0"))
	assert.ErrorIs(err, ErrRegisterInvalid)

	_, err = asm.Parse(strings.NewReader(".equ A 1\n.equ A 2"))
	assert.ErrorIs(err, ErrEquateDuplicate)

	_, err = asm.Parse(strings.NewReader("here:\nhere:"))
	assert.ErrorIs(err, ErrLabelDuplicate)

	_, err = asm.Parse(strings.NewReader("mov r0"))
	assert.ErrorIs(err, ErrOperandMissing)

	_, err = asm.Parse(strings.NewReader("inc r0, r1"))
	assert.ErrorIs(err, ErrOperandExtra)

	var unknown ErrOpcodeUnknown
	_, err = asm.Parse(strings.NewReader("frob r0"))
	assert.True(errors.As(err, &unknown))
	assert.Equal("frob", string(unknown))

	var missing ErrLabelMissing
	_, err = asm.Parse(strings.NewReader("j nowhere"))
	assert.True(errors.As(err, &missing))
	assert.Equal("nowhere", string(missing))

	var value ErrParseValue
	_, err = asm.Parse(strings.NewReader("mov r0, xyz"))
	assert.True(errors.As(err, &value))
	assert.Equal("xyz", string(value))

	var number ErrParseNumber
	_, err = asm.Parse(strings.NewReader("shl r0, r1"))
	assert.True(errors.As(err, &number))
	assert.Equal("r1", string(number))
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	first, err := asm.Parse(strings.NewReader("first:\nj first"))
	assert.NoError(err)

	second, err := asm.Parse(strings.NewReader("nop\nnop"))
	assert.NoError(err)

	assert.Equal(1, first.Len())
	assert.Equal(OP_J, first.At(0).Op)
	assert.Equal(2, second.Len())

	_, ok := second.LabelIndex("first")
	assert.False(ok)
}

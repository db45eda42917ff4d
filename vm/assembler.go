// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Assembler is a single pass assembler for μREG source text.
//
// Mnemonics, register names, and labels are case-insensitive; equate
// names are not. Comments run from the first `//`, `#`, or `;` to the
// end of the line.
type Assembler struct {
	Verbose     bool              // If set, verbosely logs the assembler actions.
	Instruction []Instruction     // List of generated instructions.
	Label       map[string]int    // Map of jump labels to instruction indexes.
	Equate      map[string]string // Map of equates.
}

// stripComment removes the first comment marker and everything after it.
func stripComment(text string) string {
	for _, marker := range []string{"//", "#", ";"} {
		if n := strings.Index(text, marker); n >= 0 {
			text = text[:n]
		}
	}
	return text
}

// parseNumber parses an immediate integer token. Base prefixes 0x, 0o,
// and 0b are accepted; negative values store as two's complement.
func parseNumber(word string) (value uint64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	value, uerr := strconv.ParseUint(word, 0, 64)
	if uerr == nil {
		return
	}

	i64, ierr := strconv.ParseInt(word, 0, 64)
	if ierr != nil {
		err = ErrParseNumber(word)
		return
	}
	value = uint64(i64)

	return
}

// parseRegister parses a register name token, r0 through r7.
func parseRegister(word string) (reg int, err error) {
	name := strings.ToLower(word)
	if len(name) < 2 || name[0] != 'r' {
		err = ErrParseRegister(word)
		return
	}

	reg, aerr := strconv.Atoi(name[1:])
	if aerr != nil {
		err = ErrParseRegister(word)
		return
	}

	if reg < 0 || reg >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		num, nerr := parseNumber(str)
		if nerr != nil {
			// Ignore non-numeric equates.
			continue
		}
		pred[key] = starlark.MakeUint64(num)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Uint64()
	if !ok {
		// Negative results still fit the register word.
		i64, iok := st_int.Int64()
		if !iok {
			err = ErrParseExpression(expr)
			return
		}
		value = uint64(i64)
	}

	return
}

// parseLine expands and tokenizes a single stripped line, recording
// any .equ definitions and leading labels it carries.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	// Commas separate operands the same as whitespace.
	line = strings.ReplaceAll(line, ",", " ")

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	// Check for equates
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	// Leading labels mark the next instruction slot.
	for strings.HasSuffix(words[0], ":") {
		label := strings.ToLower(words[0][:len(words[0])-1])
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = len(asm.Instruction)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// parseOperand classifies one operand token against the slot's kind mask.
func (asm *Assembler) parseOperand(word string, kinds Kind) (op Operand, err error) {
	if kinds&KIND_LABEL != 0 {
		op = Operand{Kind: KIND_LABEL, Label: strings.ToLower(word), Index: -1}
		return
	}

	if kinds&KIND_REG != 0 {
		reg, rerr := parseRegister(word)
		if rerr == nil {
			op = Operand{Kind: KIND_REG, Reg: reg}
			return
		}
		if errors.Is(rerr, ErrRegisterInvalid) {
			// An out-of-range register never falls back to an immediate.
			err = rerr
			return
		}
		if kinds&KIND_IMM == 0 {
			err = rerr
			return
		}
	}

	if kinds&KIND_IMM != 0 {
		value, nerr := parseNumber(word)
		if nerr != nil {
			if kinds&KIND_REG != 0 {
				err = ErrParseValue(word)
			} else {
				err = nerr
			}
			return
		}
		op = Operand{Kind: KIND_IMM, Imm: value}
		return
	}

	err = ErrParseValue(word)
	return
}

// parseWords decodes an opcode mnemonic and its operands into an Instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		return ErrOpcodeUnknown(words[0])
	}

	info := opTable[op]
	operands := words[1:]
	if len(operands) < len(info.Args) {
		return ErrOperandMissing
	}
	if len(operands) > len(info.Args) {
		return ErrOperandExtra
	}

	inst := Instruction{Op: op, LineNo: lineno}
	for n, word := range operands {
		var arg Operand
		arg, err = asm.parseOperand(word, info.Args[n])
		if err != nil {
			return
		}
		inst.Args = append(inst.Args, arg)
	}

	asm.Instruction = append(asm.Instruction, inst)
	return
}

// Parse parses an input stream into a Program.
//
// Parsing stops at the first error, returned as an ErrSyntax carrying
// the offending line and its number.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Instruction = asm.Instruction[:0]
	asm.Equate = maps.Clone(sysEquate)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Instruction {
		inst := &asm.Instruction[n]
		for a := range inst.Args {
			arg := &inst.Args[a]
			if arg.Kind != KIND_LABEL {
				continue
			}

			index, ok := asm.Label[arg.Label]
			if !ok {
				lineno = inst.LineNo
				line = inst.String()
				err = ErrLabelMissing(arg.Label)
				return
			}
			arg.Index = index
		}
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
		Labels:       maps.Clone(asm.Label),
	}

	return
}

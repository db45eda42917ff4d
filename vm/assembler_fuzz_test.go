package vm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzAssembler(f *testing.F) {
	seeds := []string{
		"",
		"// comment only",
		"mov r0, 5\nstart: dec r0\njnz start",
		".equ A 1\nmov r0, A",
		".equ .equ .equ",
		"mov r0, $(1 + 2)",
		"mov r0, $()",
		"label:\nj label",
		"a: b: c: nop",
		"mov r8, 1",
		"j nowhere",
		"shl r0, 64",
		"\x00\xff",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(source))
		if err != nil {
			var se *ErrSyntax
			assert.True(errors.As(err, &se), source)
			return
		}

		// A parsed program is ready to execute: every opcode within the
		// dispatch table, every operand classified, every label linked.
		for _, inst := range prog.Instructions {
			assert.GreaterOrEqual(int(inst.Op), 0, source)
			assert.Less(int(inst.Op), len(opTable), source)

			info := opTable[inst.Op]
			assert.Equal(len(info.Args), len(inst.Args), source)

			for n, arg := range inst.Args {
				assert.NotZero(arg.Kind&info.Args[n], source)

				switch arg.Kind {
				case KIND_REG:
					assert.GreaterOrEqual(arg.Reg, 0, source)
					assert.Less(arg.Reg, REGISTER_COUNT, source)
				case KIND_LABEL:
					assert.GreaterOrEqual(arg.Index, 0, source)
					assert.LessOrEqual(arg.Index, prog.Len(), source)
				}
			}
		}
	})
}

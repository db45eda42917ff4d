package vm

import (
	"iter"
)

// Program is an assembled instruction sequence plus the label table that
// was used to resolve jump targets. Read-only once Parse returns it.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// At returns the instruction at index.
func (prog *Program) At(index int) Instruction {
	return prog.Instructions[index]
}

// LabelIndex looks up the instruction index a label resolved to.
func (prog *Program) LabelIndex(name string) (index int, ok bool) {
	index, ok = prog.Labels[name]
	return
}

// All iterates (index, instruction) in program order.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for n, inst := range prog.Instructions {
			if !yield(n, inst) {
				return
			}
		}
	}
}

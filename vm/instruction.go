package vm

import (
	"fmt"
	"iter"
	"strings"
)

// Instruction is a single loaded instruction: an opcode plus zero, one, or
// two signed 32-bit operands. The operand count selects stack-mode (none)
// or register-mode (two) behavior for the dual-mode opcodes. Instructions
// are immutable once loaded.
type Instruction struct {
	Op     Opcode
	Args   []int32
	LineNo int // Source line the instruction was loaded from.
}

// Arity returns the number of operands carried by the instruction.
func (inst Instruction) Arity() int {
	return len(inst.Args)
}

// Arg returns the operand at position n, if present.
func (inst Instruction) Arg(n int) (value int32, ok bool) {
	if n < 0 || n >= len(inst.Args) {
		return
	}

	return inst.Args[n], true
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	words := []string{inst.Op.String()}
	for _, arg := range inst.Args {
		words = append(words, fmt.Sprintf("%v", arg))
	}

	out = strings.Join(words, " ")

	return
}

// Program is an ordered, 0-indexed instruction list plus the label table
// built at load time. Both are fixed for the duration of a run.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int // Map of jump labels to instruction indexes.
}

// Len returns the instruction count, which bounds the valid program counter
// range [0, Len).
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// All returns an iterator over (index, instruction) pairs in program order.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for n, inst := range prog.Instructions {
			if !yield(n, inst) {
				return
			}
		}
	}
}

// HasLabelIndex reports whether any label resolves to the given instruction
// index. A label bound past the last instruction is still a registered jump
// target; jumping to it ends the run.
func (prog *Program) HasLabelIndex(index int) bool {
	for _, ip := range prog.Labels {
		if ip == index {
			return true
		}
	}

	return false
}

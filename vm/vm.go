package vm

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	REGISTER_COUNT = 8 // Registers in the register file
)

var _vm_defines = map[string]string{
	"MEMORY_LIMIT":   fmt.Sprintf("%v", MEMORY_LIMIT),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Vm is a single virtual machine execution context: the loaded program and
// all mutable machine state. Each instance is independent; nothing is shared.
type Vm struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Currently loaded program.
	Console Console  // Console streams for the I/O opcodes.

	Pc       int                   // Program counter.
	Running  bool                  // Cleared by HLT; the run loop also stops at the program end.
	Stack    Stack                 // Operand stack.
	Memory   Memory                // Sparse addressable memory.
	Register [REGISTER_COUNT]int32 // Register file, zero-initialized.
}

// NewVm creates a new virtual machine with empty state and no program.
func NewVm() (vm *Vm) {
	vm = &Vm{
		Program: &Program{},
	}

	return
}

// Defines for the vm
func (vm *Vm) Defines() iter.Seq2[string, string] {
	return maps.All(_vm_defines)
}

// LoadProgram installs a program and rewinds the program counter.
func (vm *Vm) LoadProgram(prog *Program) {
	vm.Program = prog
	vm.Pc = 0
}

// Reset clears all mutable machine state. The loaded program is kept.
func (vm *Vm) Reset() {
	if vm.Verbose {
		log.Printf("vm: reset")
	}

	clear(vm.Register[:])
	vm.Stack.Reset()
	vm.Memory.Reset()
	vm.Pc = 0
	vm.Running = false
}

// String returns the current machine state as a string.
func (vm *Vm) String() (text string) {
	text = fmt.Sprintf("pc: %v\n", vm.Pc)
	text += fmt.Sprintf("stack: %v\n", vm.Stack.Data)

	text += "memory:"
	for _, addr := range vm.Memory.Addresses() {
		value, _ := vm.Memory.Load(addr)
		text += fmt.Sprintf(" [%v]=%v", addr, value)
	}
	text += "\n"

	text += "registers:"
	for n, value := range vm.Register {
		text += fmt.Sprintf(" r%v=%v", n, value)
	}
	text += "\n"

	text += "labels:"
	for _, name := range slices.Sorted(maps.Keys(vm.Program.Labels)) {
		text += fmt.Sprintf(" %v=%v", name, vm.Program.Labels[name])
	}
	text += "\n"

	return
}

// Run executes instructions until the running flag clears or the program
// counter leaves the program.
func (vm *Vm) Run() (err error) {
	vm.Running = true
	for vm.Running && vm.Pc >= 0 && vm.Pc < vm.Program.Len() {
		err = vm.Step()
		if err != nil {
			return
		}
	}

	return
}

// Step executes the single instruction at the program counter. The returned
// error is only ever runtime-fatal; tolerated faults are diagnosed on the
// console error stream and the instruction becomes a no-op.
func (vm *Vm) Step() (err error) {
	inst := vm.Program.Instructions[vm.Pc]

	if vm.Verbose {
		log.Printf("%03d: %v", vm.Pc, inst)
	}

	next, err := vm.execute(inst)
	if err != nil {
		return
	}

	vm.Pc = next

	return
}

// fault diagnoses a tolerated runtime error. Execution continues.
func (vm *Vm) fault(inst Instruction, err error) {
	fmt.Fprintf(vm.Console.errw(), "pc %d line %d %v: %v\n", vm.Pc, inst.LineNo, inst.Op, err)
}

// register resolves operand n as a register index, diagnosing a missing
// operand or an index outside the register file.
func (vm *Vm) register(inst Instruction, n int) (index int, ok bool) {
	value, ok := inst.Arg(n)
	if !ok {
		vm.fault(inst, ErrOperandMissing)
		return
	}
	if value < 0 || value >= REGISTER_COUNT {
		vm.fault(inst, ErrRegisterInvalid)
		return 0, false
	}

	return int(value), true
}

// arith executes the dual-mode arithmetic opcodes. With two operands the
// instruction reads two register contents (register-mode); with none it
// pops two stack entries, the second-popped being the left operand
// (stack-mode). The result is pushed; registers are never mutated.
func (vm *Vm) arith(inst Instruction) {
	var left, right int32

	if inst.Arity() == 2 {
		a, aok := vm.register(inst, 0)
		if !aok {
			return
		}
		b, bok := vm.register(inst, 1)
		if !bok {
			return
		}
		left, right = vm.Register[a], vm.Register[b]
	} else {
		if vm.Stack.Len() < 2 {
			vm.fault(inst, ErrStackUnderflow)
			return
		}
		right, _ = vm.Stack.Pop()
		left, _ = vm.Stack.Pop()
	}

	switch inst.Op {
	case OP_ADD:
		vm.Stack.Push(left + right)
	case OP_SUB:
		vm.Stack.Push(left - right)
	case OP_MUL:
		vm.Stack.Push(left * right)
	case OP_DIV, OP_MOD:
		if right == 0 {
			vm.fault(inst, ErrDivideByZero)
			return
		}
		if inst.Op == OP_DIV {
			vm.Stack.Push(left / right)
		} else {
			vm.Stack.Push(left % right)
		}
	}
}

// compare executes the dual-mode comparison opcodes and pushes 1 or 0.
// Stack-mode applies the predicate to (first-popped, second-popped).
// Register-mode compares the two operand indices themselves, not the
// referenced registers' contents; this is the documented behavior.
func (vm *Vm) compare(inst Instruction) {
	var a, b int32

	if inst.Arity() == 2 {
		a, _ = inst.Arg(0)
		b, _ = inst.Arg(1)
	} else {
		if vm.Stack.Len() < 2 {
			vm.fault(inst, ErrStackUnderflow)
			return
		}
		a, _ = vm.Stack.Pop()
		b, _ = vm.Stack.Pop()
	}

	var truth bool
	switch inst.Op {
	case OP_EQU:
		truth = a == b
	case OP_NEQ:
		truth = a != b
	case OP_GTH:
		truth = a > b
	case OP_LTH:
		truth = a < b
	case OP_GTE:
		truth = a >= b
	case OP_LTE:
		truth = a <= b
	}

	if truth {
		vm.Stack.Push(1)
	} else {
		vm.Stack.Push(0)
	}
}

// jumpTarget resolves a conditional jump operand: a target registered in the
// label table is honored even at the program end (the run loop then stops);
// otherwise the operand must be a direct in-range instruction index.
func (vm *Vm) jumpTarget(inst Instruction) (target int, ok bool) {
	value, ok := inst.Arg(0)
	if !ok {
		vm.fault(inst, ErrOperandMissing)
		return
	}

	target = int(value)
	switch {
	case vm.Program.HasLabelIndex(target):
		// pass
	case target >= 0 && target < vm.Program.Len():
		// pass
	default:
		vm.fault(inst, ErrJumpTarget)
		return 0, false
	}

	return target, true
}

// execute runs a single instruction and returns the next program counter.
func (vm *Vm) execute(inst Instruction) (next int, err error) {
	next = vm.Pc + 1

	switch inst.Op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
		vm.arith(inst)

	case OP_INC, OP_DEC:
		delta := int32(1)
		if inst.Op == OP_DEC {
			delta = -1
		}
		if inst.Arity() >= 1 {
			r, ok := vm.register(inst, 0)
			if !ok {
				break
			}
			vm.Register[r] += delta
		} else {
			value, ok := vm.Stack.Pop()
			if !ok {
				vm.fault(inst, ErrStackUnderflow)
				break
			}
			vm.Stack.Push(value + delta)
		}

	case OP_PSH:
		// No operand, no push.
		if value, ok := inst.Arg(0); ok {
			vm.Stack.Push(value)
		}

	case OP_POP:
		if _, ok := vm.Stack.Pop(); !ok {
			vm.fault(inst, ErrStackEmpty)
		}

	case OP_DUP:
		if value, ok := vm.Stack.Peek(); ok {
			vm.Stack.Push(value)
		} else {
			vm.fault(inst, ErrStackEmpty)
		}

	case OP_SWP:
		if !vm.Stack.Swap() {
			vm.fault(inst, ErrStackUnderflow)
		}

	case OP_SCL:
		if vm.Stack.Empty() {
			vm.fault(inst, ErrStackEmpty)
		} else {
			vm.Stack.Reset()
		}

	case OP_STR:
		addr, ok := inst.Arg(0)
		if !ok {
			vm.fault(inst, ErrOperandMissing)
			break
		}
		value, ok := vm.Stack.Pop()
		if !ok {
			vm.fault(inst, ErrStackEmpty)
			break
		}
		// The popped value is dropped on an out-of-range address.
		if !vm.Memory.Store(addr, value) {
			vm.fault(inst, ErrMemoryBounds)
		}

	case OP_LOA:
		addr, ok := inst.Arg(0)
		if !ok {
			vm.fault(inst, ErrOperandMissing)
			break
		}
		// An unset address is a silent no-op, unlike STR bounds errors.
		if value, ok := vm.Memory.Load(addr); ok {
			vm.Stack.Push(value)
		}

	case OP_MCL:
		if vm.Memory.Len() == 0 {
			vm.fault(inst, ErrMemoryEmpty)
		} else {
			vm.Memory.Reset()
		}

	case OP_MOV, OP_COP:
		if inst.Arity() < 2 {
			vm.fault(inst, ErrOperandMissing)
			break
		}
		src, sok := vm.register(inst, 0)
		if !sok {
			break
		}
		dst, dok := vm.register(inst, 1)
		if !dok {
			break
		}
		vm.Register[dst] = vm.Register[src]
		if inst.Op == OP_MOV {
			vm.Register[src] = 0
		}

	case OP_SET:
		r, ok := vm.register(inst, 0)
		if !ok {
			break
		}
		value, vok := vm.Stack.Pop()
		if !vok {
			vm.fault(inst, ErrStackEmpty)
			break
		}
		vm.Register[r] = value

	case OP_GET:
		r, ok := vm.register(inst, 0)
		if !ok {
			break
		}
		vm.Stack.Push(vm.Register[r])

	case OP_JMP:
		target, ok := inst.Arg(0)
		if !ok {
			vm.fault(inst, ErrOperandMissing)
			break
		}
		if target < 0 || int(target) >= vm.Program.Len() {
			vm.fault(inst, ErrJumpTarget)
			break
		}
		next = int(target)

	case OP_JEZ, OP_JNZ, OP_JGZ, OP_JLZ:
		// Peek, never pop; an empty stack falls through.
		top, ok := vm.Stack.Peek()
		if !ok {
			break
		}
		var take bool
		switch inst.Op {
		case OP_JEZ:
			take = top == 0
		case OP_JNZ:
			take = top != 0
		case OP_JGZ:
			take = top > 0
		case OP_JLZ:
			take = top < 0
		}
		if !take {
			break
		}
		if target, ok := vm.jumpTarget(inst); ok {
			next = target
		}

	case OP_EQU, OP_NEQ, OP_GTH, OP_LTH, OP_GTE, OP_LTE:
		vm.compare(inst)

	case OP_INP:
		line, rerr := vm.Console.ReadLine()
		if rerr != nil {
			err = errors.Join(ErrInputRead, rerr)
			return
		}
		value, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if perr != nil {
			err = errors.Join(ErrInputParse, perr)
			return
		}
		vm.Stack.Push(int32(value))

	case OP_PRT:
		if value, ok := vm.Stack.Peek(); ok {
			fmt.Fprintln(vm.Console.out(), value)
		} else {
			vm.fault(inst, ErrStackEmpty)
		}

	case OP_PPT:
		if value, ok := vm.Stack.Pop(); ok {
			fmt.Fprintln(vm.Console.out(), value)
		} else {
			vm.fault(inst, ErrStackEmpty)
		}

	case OP_PRC:
		value, ok := vm.Stack.Pop()
		if !ok {
			vm.fault(inst, ErrStackEmpty)
			break
		}
		if !utf8.ValidRune(rune(value)) {
			vm.fault(inst, ErrCharInvalid)
			break
		}
		fmt.Fprintf(vm.Console.out(), "%c", rune(value))

	case OP_TIM:
		vm.Stack.Push(int32(time.Now().Unix()))

	case OP_DEB:
		fmt.Fprint(vm.Console.out(), vm.String())

	case OP_HLT:
		vm.Running = false

	case OP_NOP:
		// Does nothing.
	}

	return
}

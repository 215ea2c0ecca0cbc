// Package machine composes the loader, the virtual machine, and its console
// streams into a runnable unit.
package machine

import (
	"io"
	"iter"
	"maps"

	"github.com/stackvm/stackvm/internal"
	"github.com/stackvm/stackvm/vm"
)

var _machine_defines = map[string]string{
	"TRUE":  "1",
	"FALSE": "0",
}

// Machine owns one virtual machine and the loader used to feed it.
type Machine struct {
	Verbose bool // If set, enables verbose logging.
	*vm.Vm       // The virtual machine instance.

	Loader vm.Loader // Loader used by Load.
}

// NewMachine creates a machine whose loader is predefined with all of the
// system equates.
func NewMachine() (mach *Machine) {
	mach = &Machine{
		Vm: vm.NewVm(),
	}

	for equ, value := range mach.Defines() {
		mach.Loader.Predefine(equ, value)
	}

	return
}

// Defines returns an iterator over all of the system equates available to
// loaded programs.
func (mach *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines),
		mach.Vm.Defines(),
	)
}

// Load assembles program text and installs it. Tolerated load diagnostics
// go to the console error stream.
func (mach *Machine) Load(input io.Reader) (err error) {
	mach.Loader.Verbose = mach.Verbose
	mach.Loader.Diag = mach.Console.Error

	prog, err := mach.Loader.Load(input)
	if err != nil {
		return
	}

	mach.Vm.LoadProgram(prog)

	return
}

// LineNo returns the source line of the instruction at the program counter.
func (mach *Machine) LineNo() int {
	if mach.Vm.Pc >= 0 && mach.Vm.Pc < mach.Vm.Program.Len() {
		return mach.Vm.Program.Instructions[mach.Vm.Pc].LineNo
	}

	return 0
}

// Run executes the loaded program until it halts. A returned error is
// runtime-fatal and wrapped with the source line it occurred on.
func (mach *Machine) Run() (err error) {
	mach.Vm.Verbose = mach.Verbose

	err = mach.Vm.Run()
	if err != nil {
		err = &ErrRuntime{LineNo: mach.LineNo(), Err: err}
	}

	return
}

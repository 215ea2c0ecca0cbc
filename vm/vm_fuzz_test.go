package vm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzLoadAndRun(f *testing.F) {
	f.Add("PSH 10\nPSH 20\nADD\nPRT\nHLT\n")
	f.Add("loop:\nPSH 1\nJNZ loop\n")
	f.Add(".equ TEN 10\nPSH TEN\nSTR $(TEN * 2)\nLOA 20\nPPT\n")
	f.Add("# comment\n\nBOGUS 1\nPSH 0x7fffffff\nINC\nDEB\n")
	f.Add("JEZ end\nend:\n")
	f.Add("MOV 0 1\nCOP 1 2\nGTH 2 0\nSWP\nSCL\nMCL\nTIM\nNOP\n")
	f.Add("PSH -1\nPRC\nINP\n")
	f.Add(":\nPSH\nSTR\n.equ\n$(")

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		diag := &bytes.Buffer{}
		ld := &Loader{Diag: diag}

		prog, err := ld.Load(strings.NewReader(source))
		if err != nil {
			// String sources only fail on scanner limits (oversized lines).
			assert.ErrorIs(err, ErrSourceRead)
			return
		}

		source_str := fmt.Sprintf("source: %q", source)

		for _, inst := range prog.Instructions {
			_, known := LookupOpcode(inst.Op.String())
			assert.True(known, source_str)
			assert.LessOrEqual(inst.Arity(), 2, source_str)
			assert.Greater(inst.LineNo, 0, source_str)
		}
		for _, index := range prog.Labels {
			assert.GreaterOrEqual(index, 0, source_str)
			assert.LessOrEqual(index, prog.Len(), source_str)
		}

		m := NewVm()
		m.Console = Console{
			Input:  strings.NewReader(""),
			Output: io.Discard,
			Error:  io.Discard,
		}
		m.LoadProgram(prog)

		// Bounded execution: arbitrary programs may loop forever.
		m.Running = true
		for steps := 0; steps < 1000 && m.Running && m.Pc >= 0 && m.Pc < prog.Len(); steps++ {
			err = m.Step()
			if err != nil {
				// Exhausted input is the only fatal path here.
				assert.True(errors.Is(err, ErrInputRead) || errors.Is(err, ErrInputParse), source_str)
				return
			}
			assert.GreaterOrEqual(m.Pc, 0, source_str)
			assert.LessOrEqual(m.Pc, prog.Len(), source_str)
		}
	})
}

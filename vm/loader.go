package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Loader assembles line-oriented source text into a Program using two
// passes: the first records label positions against instruction-emitting
// lines, the second emits instructions with label operands resolved to
// absolute instruction indices.
//
// Unknown mnemonics and malformed operand tokens are diagnosed and
// tolerated; only an unreadable source is fatal.
type Loader struct {
	Verbose bool      // If set, verbosely logs the loader actions.
	Diag    io.Writer // Destination for tolerated load diagnostics (default stderr).

	Label  map[string]int    // Map of jump labels to instruction indexes.
	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// blankOrComment reports whether a trimmed line carries no code. A comment
// is a line whose first non-whitespace character is '#'.
func blankOrComment(line string) bool {
	return len(line) == 0 || strings.HasPrefix(line, "#")
}

// isLabel reports whether a trimmed line defines a label. Labels are
// standalone lines ending in ':'.
func isLabel(line string) bool {
	return strings.HasSuffix(line, ":")
}

// valueOf returns the value of a simple word.
func (ld *Loader) valueOf(word string) (value int32, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		return
	}

	value = int32(v64)

	return
}

// parenEval does compile-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		value32, verr := ld.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, eerr := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if eerr != nil {
		err = ErrParseExpression(expr)
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// expand does the $() evaluations on a line. A failed evaluation is
// diagnosed and leaves the text unchanged, so the token later falls out
// as an absent operand.
func (ld *Loader) expand(line string, lineno int) string {
	return parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, err := ld.parenEval(str[2 : len(str)-1])
		if err != nil {
			ld.diagnose(lineno, line, err)
			return str
		}
		return fmt.Sprintf("%v", value)
	})
}

// equate records a .equ NAME VALUE directive.
func (ld *Loader) equate(lineno int, line string, words []string) {
	if len(words) != 3 {
		ld.diagnose(lineno, line, ErrEquateSyntax)
		return
	}
	if _, ok := ld.Equate[words[1]]; ok {
		ld.diagnose(lineno, line, ErrEquateDuplicate)
		return
	}
	ld.Equate[words[1]] = words[2]
}

// diagnose reports a tolerated load error and continues loading.
func (ld *Loader) diagnose(lineno int, line string, err error) {
	w := ld.Diag
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "load: %v\n", &ErrSyntax{LineNo: lineno, Line: line, Err: err})
}

// Load parses an input stream into a Program, resolving labels to absolute
// instruction indices.
func (ld *Loader) Load(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if serr := scanner.Err(); serr != nil {
		err = errors.Join(ErrSourceRead, serr)
		return
	}

	if ld.Label == nil {
		ld.Label = make(map[string]int, 16)
	}
	clear(ld.Label)
	ld.Equate = maps.Clone(sysEquate)
	for equ, value := range ld.predefine {
		ld.Equate[equ] = value
	}

	// Pass 1: bind each label to the count of instruction-emitting lines
	// seen so far. Label, comment, and .equ lines never emit.
	count := 0
	for n, text := range lines {
		lineno := n + 1
		line := strings.TrimSpace(text)

		if blankOrComment(line) {
			continue
		}
		if isLabel(line) {
			name := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if len(name) == 0 {
				ld.diagnose(lineno, line, ErrLabelEmpty)
				continue
			}
			if _, ok := ld.Label[name]; ok {
				// First binding wins.
				ld.diagnose(lineno, line, ErrLabelDuplicate)
				continue
			}
			ld.Label[name] = count
			continue
		}
		if strings.Fields(line)[0] == ".equ" {
			continue
		}

		count++
	}

	// Pass 2: emit instructions in source order.
	prog = &Program{Labels: maps.Clone(ld.Label)}
	for n, text := range lines {
		lineno := n + 1
		line := strings.TrimSpace(text)

		if ld.Verbose {
			log.Printf("%v: %v", lineno, line)
		}

		if blankOrComment(line) || isLabel(line) {
			continue
		}

		ld.Equate["LINENO"] = strconv.Itoa(lineno)
		line = ld.expand(line, lineno)

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		if words[0] == ".equ" {
			ld.equate(lineno, line, words)
			continue
		}

		op, ok := LookupOpcode(words[0])
		if !ok {
			ld.diagnose(lineno, line, ErrOpcodeUnknown)
			continue
		}

		operands := words[1:]
		if len(operands) > 2 {
			ld.diagnose(lineno, line, ErrOperandExtra)
			operands = operands[:2]
		}

		var args []int32
		for _, word := range operands {
			if index, ok := ld.Label[word]; ok {
				args = append(args, int32(index))
				continue
			}
			if equ, ok := ld.Equate[word]; ok {
				word = equ
			}
			value, verr := ld.valueOf(word)
			if verr != nil {
				// Tolerated input-shape looseness: the position is
				// simply left without an operand.
				break
			}
			args = append(args, value)
		}

		prog.Instructions = append(prog.Instructions,
			Instruction{Op: op, Args: args, LineNo: lineno})
	}

	return
}

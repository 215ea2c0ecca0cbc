package vm

import (
	"errors"

	"github.com/stackvm/stackvm/translate"
)

var f = translate.From

var (
	// Runtime faults. Diagnosed to the console error stream; the faulting
	// instruction becomes a no-op and the program counter still advances.
	ErrStackUnderflow  = errors.New(f("stack underflow"))
	ErrStackEmpty      = errors.New(f("stack empty"))
	ErrDivideByZero    = errors.New(f("division by zero"))
	ErrMemoryBounds    = errors.New(f("memory address out of range"))
	ErrMemoryEmpty     = errors.New(f("memory empty"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrJumpTarget      = errors.New(f("jump target invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrCharInvalid     = errors.New(f("character code invalid"))

	// Runtime-fatal errors. Terminate the run.
	ErrInputRead  = errors.New(f("input read failed"))
	ErrInputParse = errors.New(f("input not an integer"))

	// Loader errors
	ErrSourceRead      = errors.New(f("source unreadable"))
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelEmpty      = errors.New(f("label name empty"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrSyntax locates a load diagnostic in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseExpression reports a $() expression that did not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

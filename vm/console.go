package vm

import (
	"bufio"
	"io"
	"os"
)

// Console binds the I/O opcodes to byte streams. INP reads lines from Input,
// PRT/PPT/PRC/DEB write to Output, and runtime diagnostics go to Error.
// Unset streams fall back to the standard process streams.
type Console struct {
	Input  io.Reader
	Output io.Writer
	Error  io.Writer

	scanner *bufio.Scanner
}

// ReadLine blocks until one line of input is available.
func (con *Console) ReadLine() (line string, err error) {
	if con.scanner == nil {
		in := con.Input
		if in == nil {
			in = os.Stdin
		}
		con.scanner = bufio.NewScanner(in)
	}

	if !con.scanner.Scan() {
		err = con.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = con.scanner.Text()

	return
}

func (con *Console) out() io.Writer {
	if con.Output == nil {
		return os.Stdout
	}
	return con.Output
}

func (con *Console) errw() io.Writer {
	if con.Error == nil {
		return os.Stderr
	}
	return con.Error
}

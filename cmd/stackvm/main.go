package main

import (
	"flag"
	"os"

	"github.com/tebeka/atexit"

	"github.com/stackvm/stackvm/machine"
)

func main() {
	var input string
	var output string
	var verbose bool

	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		atexit.Fatalf("usage: %v [-i input] [-o output] [-v] program.svm", os.Args[0])
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		atexit.Fatalf("%v: %v", source, err)
	}
	atexit.Register(func() { inf.Close() })

	mach := machine.NewMachine()
	mach.Verbose = verbose
	mach.Console.Error = os.Stderr

	if input == "-" {
		mach.Console.Input = os.Stdin
	} else {
		cin, err := os.Open(input)
		if err != nil {
			atexit.Fatalf("%v: %v", input, err)
		}
		atexit.Register(func() { cin.Close() })
		mach.Console.Input = cin
	}

	if output == "-" {
		mach.Console.Output = os.Stdout
	} else {
		cout, err := os.Create(output)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { cout.Close() })
		mach.Console.Output = cout
	}

	// Loading failure aborts before any instruction runs.
	err = mach.Load(inf)
	if err != nil {
		atexit.Fatalf("%v: %v", source, err)
	}

	err = mach.Run()
	if err != nil {
		atexit.Fatalf("%v: %v", source, err)
	}

	atexit.Exit(0)
}

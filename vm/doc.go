// Package vm implements the stackvm virtual machine and its program loader.
//
// The machine executes a fixed instruction list against a LIFO operand stack
// of signed 32-bit integers, a sparse addressable memory, and a file of eight
// registers. A program counter and a running flag drive the fetch-execute
// loop; HLT or walking off the end of the program stops it.
//
// The loader turns line-oriented assembly text into a Program in two passes:
// the first records label positions, the second emits instructions with label
// operands already resolved to absolute instruction indices. The source
// format supports comments, equates, and compile-time expression evaluation.
package vm

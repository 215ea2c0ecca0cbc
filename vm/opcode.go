package vm

import (
	"strings"
)

// Opcode is the operation tag of a single instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	// Arithmetic
	OP_ADD = Opcode(iota) // ADD
	OP_SUB                // SUB
	OP_MUL                // MUL
	OP_DIV                // DIV
	OP_MOD                // MOD
	OP_INC                // INC
	OP_DEC                // DEC

	// Stack
	OP_PSH // PSH
	OP_POP // POP
	OP_DUP // DUP
	OP_SWP // SWP
	OP_SCL // SCL

	// Memory
	OP_STR // STR
	OP_LOA // LOA
	OP_MCL // MCL

	// Registers
	OP_MOV // MOV
	OP_COP // COP
	OP_SET // SET
	OP_GET // GET

	// Control flow
	OP_JMP // JMP
	OP_JEZ // JEZ
	OP_JNZ // JNZ
	OP_JGZ // JGZ
	OP_JLZ // JLZ

	// Comparison
	OP_EQU // EQU
	OP_NEQ // NEQ
	OP_GTH // GTH
	OP_LTH // LTH
	OP_GTE // GTE
	OP_LTE // LTE

	// I/O
	OP_INP // INP
	OP_PRT // PRT
	OP_PPT // PPT
	OP_PRC // PRC

	// Miscellaneous
	OP_TIM // TIM
	OP_DEB // DEB
	OP_HLT // HLT
	OP_NOP // NOP
)

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"MUL": OP_MUL,
	"DIV": OP_DIV,
	"MOD": OP_MOD,
	"INC": OP_INC,
	"DEC": OP_DEC,
	"PSH": OP_PSH,
	"POP": OP_POP,
	"DUP": OP_DUP,
	"SWP": OP_SWP,
	"SCL": OP_SCL,
	"STR": OP_STR,
	"LOA": OP_LOA,
	"MCL": OP_MCL,
	"MOV": OP_MOV,
	"COP": OP_COP,
	"SET": OP_SET,
	"GET": OP_GET,
	"JMP": OP_JMP,
	"JEZ": OP_JEZ,
	"JNZ": OP_JNZ,
	"JGZ": OP_JGZ,
	"JLZ": OP_JLZ,
	"EQU": OP_EQU,
	"NEQ": OP_NEQ,
	"GTH": OP_GTH,
	"LTH": OP_LTH,
	"GTE": OP_GTE,
	"LTE": OP_LTE,
	"INP": OP_INP,
	"PRT": OP_PRT,
	"PPT": OP_PPT,
	"PRC": OP_PRC,
	"TIM": OP_TIM,
	"DEB": OP_DEB,
	"HLT": OP_HLT,
	"NOP": OP_NOP,
}

// LookupOpcode matches a mnemonic, case-insensitively, against the opcode table.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[strings.ToUpper(word)]
	return
}

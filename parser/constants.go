package parser

// Numeric literal digit limits. Each literal kind accumulates digits up to
// its own limit; a digit arriving after the limit is reached errors the
// token rather than silently truncating it. Underscores between digits
// don't count against the limit.
const (
	MaxDecimalDigits = 8
	MaxBinaryDigits  = 8
	MaxHexDigits     = 4
)

// instructionSet is the closed, case-sensitive set of LR35902 mnemonics.
var instructionSet = map[string]bool{
	"adc": true, "add": true, "and": true, "bit": true, "call": true,
	"ccf": true, "cp": true, "cpl": true, "daa": true, "dec": true,
	"di": true, "ei": true, "halt": true, "inc": true, "jp": true,
	"jr": true, "ld": true, "ldh": true, "ldhl": true, "nop": true,
	"or": true, "pop": true, "push": true, "res": true, "ret": true,
	"reti": true, "rl": true, "rla": true, "rlc": true, "rlca": true,
	"rr": true, "rra": true, "rrc": true, "rrca": true, "rst": true,
	"sbc": true, "scf": true, "set": true, "sla": true, "sra": true,
	"srl": true, "stop": true, "sub": true, "swap": true, "xor": true,
}

// directiveSet is the closed, uppercase set of assembler directives.
var directiveSet = map[string]bool{
	"DB": true, "DW": true, "DS": true,
	"EQU": true, "EQUS": true,
	"BANK": true,
	"INCBIN": true,
	"SECTION": true, "INCLUDE": true,
}

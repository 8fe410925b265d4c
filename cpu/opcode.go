package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE  = 0x1000 // Words of memory.
	ADDRESS_MASK = 0x0fff // Mask of the 12-bit address space.
	ENTRY_POINT  = 0x100  // Conventional program origin.
	OPCODE_SHIFT = 12     // Position of the opcode nibble.
)

// Opcode is the 4-bit instruction selector.
type Opcode int

const (
	OP_JNS      = Opcode(0)  // JnS
	OP_LOAD     = Opcode(1)  // Load
	OP_STORE    = Opcode(2)  // Store
	OP_ADD      = Opcode(3)  // Add
	OP_SUBT     = Opcode(4)  // Subt
	OP_INPUT    = Opcode(5)  // Input
	OP_OUTPUT   = Opcode(6)  // Output
	OP_HALT     = Opcode(7)  // Halt
	OP_SKIPCOND = Opcode(8)  // Skipcond
	OP_JUMP     = Opcode(9)  // Jump
	OP_CLEAR    = Opcode(10) // Clear
	OP_ADDI     = Opcode(11) // AddI
	OP_JUMPI    = Opcode(12) // JumpI
	OP_LOADI    = Opcode(13) // LoadI
	OP_STOREI   = Opcode(14) // StoreI
)

type opcodeInfo struct {
	mnemonic string
	operand  bool
}

var opcodeTable = [...]opcodeInfo{
	OP_JNS:      {"JnS", true},
	OP_LOAD:     {"Load", true},
	OP_STORE:    {"Store", true},
	OP_ADD:      {"Add", true},
	OP_SUBT:     {"Subt", true},
	OP_INPUT:    {"Input", false},
	OP_OUTPUT:   {"Output", false},
	OP_HALT:     {"Halt", false},
	OP_SKIPCOND: {"Skipcond", true},
	OP_JUMP:     {"Jump", true},
	OP_CLEAR:    {"Clear", false},
	OP_ADDI:     {"AddI", true},
	OP_JUMPI:    {"JumpI", true},
	OP_LOADI:    {"LoadI", true},
	OP_STOREI:   {"StoreI", true},
}

var mnemonicMap = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		m[info.mnemonic] = Opcode(op)
	}
	return m
}()

// LookupOpcode finds the opcode for a case-sensitive mnemonic.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[mnemonic]
	return
}

// Valid returns true if the opcode is defined by the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(opcodeTable)
}

// HasOperand returns true if the low 12 bits of the instruction are used.
func (op Opcode) HasOperand() bool {
	return op.Valid() && opcodeTable[op].operand
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeTable[op].mnemonic
}

// SkipCond is the Skipcond selector held in bits 10 and 11 of the instruction.
type SkipCond int

const (
	SKIP_NEGATIVE = SkipCond(0) // AC < 0
	SKIP_ZERO     = SkipCond(1) // AC == 0
	SKIP_POSITIVE = SkipCond(2) // AC > 0
	SKIP_NEVER    = SkipCond(3) // undefined, never skips
)

// Code is a single 16-bit machine word.
type Code uint16

// MakeCode encodes an opcode and a 12-bit operand.
func MakeCode(op Opcode, operand uint16) Code {
	return Code((uint16(op) << OPCODE_SHIFT) | (operand & ADDRESS_MASK))
}

// Opcode returns the high nibble of the word.
func (code Code) Opcode() Opcode {
	return Opcode(uint16(code) >> OPCODE_SHIFT)
}

// Operand returns the low 12 bits of the word.
func (code Code) Operand() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// Selector returns the Skipcond condition selector.
func (code Code) Selector() SkipCond {
	return SkipCond((uint16(code) & 0x0c00) >> 10)
}

// String returns the disassembly of the word.
func (code Code) String() string {
	op := code.Opcode()
	switch {
	case !op.Valid():
		return fmt.Sprintf("??? %04x", uint16(code))
	case op.HasOperand():
		return fmt.Sprintf("%v %03x", op, code.Operand())
	default:
		return op.String()
	}
}

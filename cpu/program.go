package cpu

import (
	"iter"
	"slices"
)

// Program is an assembled memory image.
type Program struct {
	Words   [MEMORY_SIZE]uint16 // Memory image, zero filled.
	LineNo  [MEMORY_SIZE]int    // Source line of each written word, 0 if unwritten.
	Size    int                 // Highest written address + 1.
	Symbols SymbolTable         // Labels, sorted by name.
}

// Binary returns the meaningful prefix of the memory image.
func (prog *Program) Binary() (bins []uint16) {
	return slices.Clone(prog.Words[:prog.Size])
}

// Debug returns the source line that produced the word at an address.
func (prog *Program) Debug(address uint16) (lineno int, ok bool) {
	address &= ADDRESS_MASK
	lineno = prog.LineNo[address]
	ok = lineno != 0
	return
}

// Codes iterates over the written words in address order.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(address uint16, code Code) bool) {
		for n := range prog.Size {
			if prog.LineNo[n] == 0 {
				continue
			}
			if !yield(uint16(n), Code(prog.Words[n])) {
				return
			}
		}
	}
}

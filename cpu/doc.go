// Package cpu implements the machine and its assembler.
//
// The machine has a 4K word (12-bit address) memory of 16-bit words, a signed
// 16-bit accumulator (AC), an instruction register (IR), a memory buffer
// register (MBR), a 12-bit program counter (PC) and memory address register
// (MAR), and two 8-bit I/O latches (InREG, OutREG). Every instruction is a
// single word: a 4-bit opcode in the high nibble and a 12-bit operand below.
//
// The assembler translates line oriented source into a memory image. Labels
// are cataloged during a single scan of the text, and operands are recorded
// for patching once the symbol table is complete, so forward references
// resolve without a second pass over the source.
package cpu

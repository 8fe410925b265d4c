package cpu

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezrec/marie/io"
)

// Channel is the character device behind InREG and OutREG.
type Channel io.Channel

var nopLogger = zap.NewNop()

// Cpu is the simulation context for the machine.
type Cpu struct {
	Log     *zap.Logger // If set, logs every executed instruction.
	Lenient bool        // If set, undefined opcodes are executed as no-ops.

	AC     int16  // Accumulator.
	IR     uint16 // Instruction register.
	MBR    int16  // Memory buffer register.
	PC     uint16 // Program counter, 12 bits.
	MAR    uint16 // Memory address register, 12 bits.
	InREG  uint8  // Input latch.
	OutREG uint8  // Output latch.

	Memory [MEMORY_SIZE]uint16 // 4K words of memory.

	Halted bool // Set by Halt.
	Ticks  int  // Instructions executed since reset.

	channel Channel
}

// NewCpu creates a new CPU with its memory cleared.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(ENTRY_POINT)
	return
}

func (cpu *Cpu) log() *zap.Logger {
	if cpu.Log == nil {
		return nopLogger
	}
	return cpu.Log
}

// SetChannel attaches the character device used by Input and Output.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// Load clears memory and copies an image to address 0 onwards.
func (cpu *Cpu) Load(image []uint16) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrImageTooLarge
		return
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], image)

	return
}

// Reset clears the registers and sets the program counter to entry.
// Memory is left untouched.
func (cpu *Cpu) Reset(entry uint16) {
	cpu.AC = 0
	cpu.IR = 0
	cpu.MBR = 0
	cpu.MAR = 0
	cpu.InREG = 0
	cpu.OutREG = 0
	cpu.PC = entry & ADDRESS_MASK
	cpu.Halted = false
	cpu.Ticks = 0

	cpu.log().Debug("reset", zap.Uint16("pc", cpu.PC))
}

// String returns the register file, with the disassembled instruction.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("Instruction: %v\nAC: %d\nIR: %04x\nMBR: %d\nPC: %03x\nMAR: %03x\nInREG: %02x\nOutREG: %02x\n",
		Code(cpu.IR), cpu.AC, cpu.IR, cpu.MBR, cpu.PC, cpu.MAR, cpu.InREG, cpu.OutREG)
}

// Tick fetches and executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	cpu.MAR = cpu.PC & ADDRESS_MASK
	cpu.PC = (cpu.PC + 1) & ADDRESS_MASK
	cpu.IR = cpu.Memory[cpu.MAR]

	err = cpu.Execute(Code(cpu.IR))
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// setMAR loads the memory address register, truncated to 12 bits.
func (cpu *Cpu) setMAR(address uint16) {
	cpu.MAR = address & ADDRESS_MASK
}

// setPC loads the program counter, truncated to 12 bits.
func (cpu *Cpu) setPC(address uint16) {
	cpu.PC = address & ADDRESS_MASK
}

// read fetches the word at MAR into MBR.
func (cpu *Cpu) read() {
	cpu.MBR = int16(cpu.Memory[cpu.MAR])
}

// write stores MBR at MAR.
func (cpu *Cpu) write() {
	cpu.Memory[cpu.MAR] = uint16(cpu.MBR)
}

// indirect follows the pointer at the operand address, leaving the
// effective address in MAR.
func (cpu *Cpu) indirect(code Code) {
	cpu.setMAR(code.Operand())
	cpu.read()
	cpu.setMAR(uint16(cpu.MBR))
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	cpu.log().Debug("execute", zap.Uint16("address", cpu.MAR), zap.Stringer("code", code))

	switch code.Opcode() {
	case OP_JNS:
		cpu.MBR = int16(cpu.PC)
		cpu.setMAR(code.Operand())
		cpu.write()
		cpu.MBR = int16(code.Operand())
		cpu.AC = cpu.MBR + 1
		cpu.setPC(uint16(cpu.AC))
	case OP_LOAD:
		cpu.setMAR(code.Operand())
		cpu.read()
		cpu.AC = cpu.MBR
	case OP_STORE:
		cpu.setMAR(code.Operand())
		cpu.MBR = cpu.AC
		cpu.write()
	case OP_ADD:
		cpu.setMAR(code.Operand())
		cpu.read()
		cpu.AC += cpu.MBR
	case OP_SUBT:
		cpu.setMAR(code.Operand())
		cpu.read()
		cpu.AC -= cpu.MBR
	case OP_INPUT:
		if cpu.channel == nil {
			err = ErrChannelMissing
			return
		}
		cpu.InREG, _ = cpu.channel.Receive()
		cpu.AC = int16(cpu.InREG)
	case OP_OUTPUT:
		if cpu.channel == nil {
			err = ErrChannelMissing
			return
		}
		cpu.OutREG = uint8(cpu.AC)
		err = cpu.channel.Send(cpu.OutREG)
		if err != nil {
			return
		}
	case OP_HALT:
		cpu.Halted = true
	case OP_SKIPCOND:
		var skip bool
		switch code.Selector() {
		case SKIP_NEGATIVE:
			skip = cpu.AC < 0
		case SKIP_ZERO:
			skip = cpu.AC == 0
		case SKIP_POSITIVE:
			skip = cpu.AC > 0
		}
		if skip {
			cpu.setPC(cpu.PC + 1)
		}
	case OP_JUMP:
		cpu.setPC(code.Operand())
	case OP_CLEAR:
		cpu.AC = 0
	case OP_ADDI:
		cpu.indirect(code)
		cpu.read()
		cpu.AC += cpu.MBR
	case OP_JUMPI:
		cpu.setMAR(code.Operand())
		cpu.read()
		cpu.setPC(uint16(cpu.MBR))
	case OP_LOADI:
		cpu.indirect(code)
		cpu.read()
		cpu.AC = cpu.MBR
	case OP_STOREI:
		cpu.indirect(code)
		cpu.MBR = cpu.AC
		cpu.write()
	default:
		if cpu.Lenient {
			cpu.log().Debug("undefined opcode ignored", zap.Stringer("code", code))
			return
		}
		err = ErrOpcodeUndefined
		return
	}

	return
}

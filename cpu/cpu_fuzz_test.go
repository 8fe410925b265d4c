package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/marie/io"
)

func FuzzCpu(f *testing.F) {
	for op := range 0x10 {
		f.Add(uint16(op<<12), int16(0), uint16(ENTRY_POINT), uint16(0x1b2b))
		f.Add(uint16(op<<12)|0xfff, int16(-1), uint16(0xfff), uint16(0xffff))
		f.Add(uint16(op<<12)|0x400, int16(1), uint16(0), uint16(0x0123))
	}

	f.Fuzz(func(t *testing.T, word uint16, ac int16, pc uint16, fill uint16) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Lenient = true
		for n := range cpu.Memory {
			cpu.Memory[n] = fill ^ uint16(n)
		}

		output := &bytes.Buffer{}
		cpu.SetChannel(&io.Tape{
			Input:  bytes.NewReader([]byte{'x'}),
			Output: output,
		})

		cpu.Reset(pc)
		cpu.AC = ac
		fetch := cpu.PC
		cpu.Memory[fetch] = word

		err := cpu.Tick()
		assert.NoError(err)

		code := Code(word)
		assert.Equal(word, cpu.IR)
		assert.LessOrEqual(cpu.PC, uint16(ADDRESS_MASK))
		assert.LessOrEqual(cpu.MAR, uint16(ADDRESS_MASK))
		assert.Equal(code.Opcode() == OP_HALT, cpu.Halted)

		switch code.Opcode() {
		case OP_JUMP:
			assert.Equal(code.Operand(), cpu.PC)
		case OP_JNS:
			assert.Equal((fetch+1)&ADDRESS_MASK, cpu.Memory[code.Operand()])
			assert.Equal((code.Operand()+1)&ADDRESS_MASK, cpu.PC)
		case OP_OUTPUT:
			assert.Equal([]byte{uint8(ac)}, output.Bytes())
		case OP_INPUT:
			assert.Equal(int16('x'), cpu.AC)
		case OP_CLEAR:
			assert.Zero(cpu.AC)
		case OP_SKIPCOND:
			next := (fetch + 1) & ADDRESS_MASK
			assert.True(cpu.PC == next || cpu.PC == (next+1)&ADDRESS_MASK)
		}

		if cpu.Halted {
			assert.True(errors.Is(cpu.Tick(), ErrHalted))
		}
	})
}

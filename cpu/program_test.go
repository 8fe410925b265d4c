package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.Words[0] = 0x1234
	prog.Words[2] = 0x5678
	prog.Size = 3

	bins := prog.Binary()
	assert.Equal([]uint16{0x1234, 0, 0x5678}, bins)

	// The binary is a copy of the image.
	bins[0] = 0
	assert.Equal(uint16(0x1234), prog.Words[0])
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.LineNo[0x100] = 4
	prog.Size = 0x101

	lineno, ok := prog.Debug(0x100)
	assert.True(ok)
	assert.Equal(4, lineno)

	// Addresses are truncated to 12 bits.
	lineno, ok = prog.Debug(0x1100)
	assert.True(ok)
	assert.Equal(4, lineno)

	_, ok = prog.Debug(0x0ff)
	assert.False(ok)
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.Words[0x010] = uint16(MakeCode(OP_LOAD, 0x20))
	prog.LineNo[0x010] = 2
	prog.Words[0x011] = uint16(MakeCode(OP_HALT, 0))
	prog.LineNo[0x011] = 3
	prog.Size = 0x012

	var addresses []uint16
	var codes []Code
	for address, code := range prog.Codes() {
		addresses = append(addresses, address)
		codes = append(codes, code)
	}

	assert.Equal([]uint16{0x010, 0x011}, addresses)
	assert.Equal([]Code{0x1020, 0x7000}, codes)

	// Early stop.
	count := 0
	for range prog.Codes() {
		count++
		break
	}
	assert.Equal(1, count)
}

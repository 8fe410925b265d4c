package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("Hi")}

	value, ok := tape.Receive()
	assert.True(ok)
	assert.Equal(uint8('H'), value)

	value, ok = tape.Receive()
	assert.True(ok)
	assert.Equal(uint8('i'), value)
	assert.Equal(2, tape.Received)

	// End of input latches the sentinel, every time.
	for range 3 {
		value, ok = tape.Receive()
		assert.False(ok)
		assert.Equal(EOF_BYTE, value)
	}
	assert.Equal(2, tape.Received)

	tape.Rewind()
	assert.Zero(tape.Received)
}

func TestTape_Receive_NoInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}

	value, ok := tape.Receive()
	assert.False(ok)
	assert.Equal(EOF_BYTE, value)
}

type brokenStream struct{}

func (brokenStream) Read(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func (brokenStream) Write(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Send('o'))
	assert.NoError(tape.Send('k'))
	assert.NoError(tape.Send(0))
	assert.Equal([]byte{'o', 'k', 0}, output.Bytes())
	assert.Equal(3, tape.Sent)

	tape.Rewind()
	assert.Zero(tape.Sent)

	tape.Output = nil
	assert.ErrorIs(tape.Send('x'), ErrOutputMissing)

	tape.Output = brokenStream{}
	assert.Error(tape.Send('x'))
	assert.Zero(tape.Sent)
}

func TestTape_Broken(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: brokenStream{}}

	value, ok := tape.Receive()
	assert.False(ok)
	assert.Equal(EOF_BYTE, value)

}

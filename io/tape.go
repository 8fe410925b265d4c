package io

import (
	"io"
)

// EOF_BYTE is the character latched by Receive at end of input.
const EOF_BYTE = uint8(0xff)

// Tape provides character I/O for the Input and Output instructions.
// It wraps an io.Reader for input and io.Writer for output, one byte per
// instruction.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Received int // Characters read since the last rewind.
	Sent     int // Characters written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind resets the counters. The underlying streams are not seekable.
func (tc *Tape) Rewind() {
	tc.Received = 0
	tc.Sent = 0
}

// Receive reads one character from the input stream. A missing input, or
// any read error, yields EOF_BYTE.
func (tc *Tape) Receive() (value uint8, ok bool) {
	value = EOF_BYTE

	if tc.Input == nil {
		return
	}

	var one [1]byte
	n, err := io.ReadFull(tc.Input, one[:])
	if err != nil || n != 1 {
		return
	}

	tc.Received++
	value = one[0]
	ok = true

	return
}

// Send writes one character to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.Sent++

	return
}

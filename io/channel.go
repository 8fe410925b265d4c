// Package io provides the devices attached to the machine: the character
// Tape behind the InREG and OutREG latches, the Rom image codec for
// executable files, and the Gate used to single step execution.
package io

// Channel defines the interface for the machine's character device.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads a single character. At end of input ok is false, and
	// value holds the EOF_BYTE sentinel.
	Receive() (value uint8, ok bool)
	// Send writes a single character.
	Send(value uint8) error
}

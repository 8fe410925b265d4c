package io

import (
	"errors"
	"fmt"
	"io"
)

// Gate holds execution until an acknowledgement line is read.
type Gate struct {
	Input  io.Reader // Source of acknowledgements.
	Prompt io.Writer // If set, a prompt is written before each wait.

	exhausted bool
}

// Wait consumes input through the next newline. Once the input is
// exhausted, Wait no longer blocks.
func (gate *Gate) Wait() (err error) {
	if gate.exhausted || gate.Input == nil {
		return
	}

	if gate.Prompt != nil {
		fmt.Fprint(gate.Prompt, f("[press enter to step]"))
	}

	var one [1]byte
	for {
		_, err = io.ReadFull(gate.Input, one[:])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			gate.exhausted = true
			err = nil
			return
		}
		if err != nil {
			return
		}
		if one[0] == '\n' {
			return
		}
	}
}

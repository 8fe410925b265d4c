package emulator

import (
	"github.com/ezrec/marie/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint16 // Address of the faulting instruction.
	LineNo  int    // Source line, if known.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("address 0x%03x line %d %v", err.Address, err.LineNo, err.Err)
	}
	return f("address 0x%03x %v", err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

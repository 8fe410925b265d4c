package cpu

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeUndefined = errors.New(f("opcode undefined"))
	ErrHalted          = errors.New(f("cpu halted"))
	ErrImageTooLarge   = errors.New(f("image exceeds 4096 words"))
	ErrChannelMissing  = errors.New(f("no I/O channel attached"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOrgSyntax          = errors.New(f("ORG target invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large, maximum address is 0xfff"))
	ErrOperandRange       = errors.New(f("operand exceeds 12 bits"))
	ErrDataRange          = errors.New(f("data exceeds 16 bits"))
)

// ErrOpcode reports the instruction word that faulted.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrOrgBackward reports an ORG that would move the address cursor backwards.
type ErrOrgBackward struct {
	Old uint16
	New uint16
}

func (err ErrOrgBackward) Error() string {
	return f("ORG used to jump to an address lower than the current one (old 0x%03x, new 0x%03x)", err.Old, err.New)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a label or number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

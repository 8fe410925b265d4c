// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	stdio "io"

	"go.uber.org/zap"

	"github.com/ezrec/marie/cpu"
	"github.com/ezrec/marie/io"
)

var nopLogger = zap.NewNop()

// Emulator state. CPU + devices.
type Emulator struct {
	Log      *zap.Logger  // If set, enables logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // If set, the source listing of the running image.

	Tape io.Tape // Character I/O.
	Rom  io.Rom  // Executable image.
	Gate io.Gate // Step mode acknowledgement.

	Entry uint16       // Initial program counter.
	Step  bool         // If set, wait on the Gate before each fetch.
	Trace stdio.Writer // If set, receives the register file after each step.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:   cpu.NewCpu(),
		Entry: cpu.ENTRY_POINT,
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

func (emu *Emulator) log() *zap.Logger {
	if emu.Log == nil {
		return nopLogger
	}
	return emu.Log
}

// Load reads an executable image.
func (emu *Emulator) Load(input stdio.Reader) (err error) {
	err = emu.Rom.Unmarshal(input)
	if err != nil {
		return
	}

	emu.log().Info("loaded", zap.Int("words", len(emu.Rom.Data)))

	return
}

// Reset the emulator state, copying the image into memory.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil && emu.Rom.Data == nil {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Log = emu.Log

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	emu.Cpu.Reset(emu.Entry)
	emu.Tape.Rewind()

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line of the instruction at the program counter.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Cpu.PC)
}

func (emu *Emulator) lineOf(address uint16) (lineno int) {
	if emu.Program == nil {
		return
	}
	lineno, _ = emu.Program.Debug(address)
	return
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	address := emu.Cpu.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: emu.lineOf(address), Err: err}
		}
	}()

	if emu.Step {
		err = emu.Gate.Wait()
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if emu.Trace != nil {
		if lineno := emu.lineOf(address); lineno != 0 {
			fmt.Fprintf(emu.Trace, "\nLine: %d", lineno)
		}
		fmt.Fprintf(emu.Trace, "\n%v", emu.Cpu.String())
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until it halts or faults.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done && err == nil {
		done, err = emu.Tick()
	}

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ezrec/marie/cpu"
	"github.com/ezrec/marie/emulator"
	"github.com/ezrec/marie/internal"
)

func main() {
	var compile string
	var regs bool
	var step bool
	var timing bool
	var lenient bool
	var entry string
	var verbose bool

	cfg := internal.LoadConfig(internal.NewLogger(false))

	flag.StringVar(&compile, "c", "", "Source file to assemble and run")
	flag.BoolVar(&regs, "r", false, "Display registers after every step")
	flag.BoolVar(&regs, "regs", false, "Display registers after every step")
	flag.BoolVar(&step, "s", false, "Run the machine step by step")
	flag.BoolVar(&step, "step", false, "Run the machine step by step")
	flag.BoolVar(&timing, "t", false, "Display execution time")
	flag.BoolVar(&timing, "time", false, "Display execution time")
	flag.BoolVar(&lenient, "lenient", cfg.Lenient, "Execute undefined opcodes as no-ops")
	flag.StringVar(&entry, "entry", fmt.Sprintf("%03x", cfg.Entry), "Initial program counter (hex)")
	flag.BoolVar(&verbose, "v", cfg.Verbose, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTIONS] [FILE]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	log := internal.NewLogger(verbose)
	defer log.Sync()

	pc, err := internal.ParseEntry(entry)
	if err != nil {
		log.Fatal("entry", zap.String("entry", entry), zap.Error(err))
	}

	emu := emulator.NewEmulator()
	emu.Log = log
	emu.Entry = pc
	emu.Cpu.Lenient = lenient
	emu.Step = step

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatal(compile, zap.Error(err))
		}
		asm := &cpu.Assembler{Log: log}
		emu.Program, err = asm.Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatal(compile, zap.Error(err))
		}
	case flag.NArg() == 1:
		path := flag.Arg(0)
		inf, err := os.Open(path)
		if err != nil {
			log.Fatal(path, zap.Error(err))
		}
		err = emu.Load(inf)
		inf.Close()
		if err != nil {
			log.Fatal(path, zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "No executable file provided")
		flag.Usage()
		os.Exit(1)
	}

	// Input and the step gate share one buffered view of stdin.
	stdin := bufio.NewReader(os.Stdin)
	emu.Tape.Input = stdin
	emu.Tape.Output = os.Stdout
	emu.Gate.Input = stdin
	if term.IsTerminal(int(os.Stdin.Fd())) {
		emu.Gate.Prompt = os.Stderr
	}
	if regs {
		emu.Trace = os.Stdout
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal("reset", zap.Error(err))
	}

	start := time.Now()
	err = emu.Run()
	elapsed := time.Since(start)
	if err != nil {
		log.Fatal("runtime", zap.Error(err))
	}

	if timing {
		fmt.Println()
		fmt.Println(internal.FormatElapsed(elapsed))
		fmt.Println(internal.FormatTicks(emu.Ticks()))
	}
}

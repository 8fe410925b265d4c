// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ezrec/marie/cpu"
	"github.com/ezrec/marie/internal"
	"github.com/ezrec/marie/io"
)

// writeImage writes an image, removing the file if it could not be
// completely written.
func writeImage(path string, words []uint16) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	rom := &io.Rom{Data: words}
	err = rom.Marshal(ouf)

	return
}

func main() {
	var output string
	var timing bool
	var listing bool
	var symbols bool
	var verbose bool

	cfg := internal.LoadConfig(internal.NewLogger(false))

	flag.StringVar(&output, "o", "", "Output file (default: input with "+cfg.Extension+" extension)")
	flag.BoolVar(&timing, "t", false, "Display assembly time")
	flag.BoolVar(&listing, "l", false, "Print a listing of the assembled words")
	flag.BoolVar(&symbols, "s", false, "Print the symbol table")
	flag.BoolVar(&verbose, "v", cfg.Verbose, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTIONS] INFILE\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	log := internal.NewLogger(verbose)
	defer log.Sync()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	input := flag.Arg(0)
	if len(output) == 0 {
		output = internal.OutputPath(input, cfg.Extension)
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatal(input, zap.Error(err))
	}

	start := time.Now()
	asm := &cpu.Assembler{Log: log}
	prog, err := asm.Parse(inf)
	elapsed := time.Since(start)
	inf.Close()
	if err != nil {
		log.Fatal(input, zap.Error(err))
	}

	if listing {
		for address, code := range prog.Codes() {
			lineno, _ := prog.Debug(address)
			fmt.Printf("%03x: %04x  %-14v / line %d\n", address, uint16(code), code, lineno)
		}
	}

	if symbols {
		for name, address := range prog.Symbols.All() {
			fmt.Printf("%-16s %03x\n", name, address)
		}
	}

	err = writeImage(output, prog.Binary())
	if err != nil {
		log.Fatal(output, zap.Error(err))
	}

	log.Debug("assembled", zap.String("output", output), zap.Int("words", prog.Size), zap.Int("symbols", prog.Symbols.Len()))

	if timing {
		fmt.Println(internal.FormatElapsed(elapsed))
	}
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

const (
	COMMENT_MARKER = "/" // Start of a comment, through end of line.
	LABEL_MARKER   = "," // End of a label.
)

// Pending is an operand that is patched into the image once every label is
// known.
type Pending struct {
	Token   string // Label, literal, or $(expression).
	Address uint16 // Address of the word to patch.
	Radix   int    // Base of a literal token.
	Data    bool   // If set, the value replaces the whole word.
	LineNo  int
	Line    string
}

// Assembler is a single pass assembler with deferred operand resolution.
type Assembler struct {
	Log *zap.Logger // If set, logs the assembler actions.

	Symbols SymbolTable // Labels cataloged during the scan.
	Pending []Pending   // Operands awaiting resolution.

	prog   *Program
	cursor int // Address of the next written word.
}

func (asm *Assembler) log() *zap.Logger {
	if asm.Log == nil {
		return nopLogger
	}
	return asm.Log
}

// indexBare returns the index of the first marker outside of any $(...)
// expression, or -1.
func indexBare(text string, marker string) int {
	depth := 0
	for n := 0; n < len(text); n++ {
		switch {
		case depth == 0 && strings.HasPrefix(text[n:], "$("):
			depth = 1
			n++
		case depth > 0 && text[n] == '(':
			depth++
		case depth > 0 && text[n] == ')':
			depth--
		case depth == 0 && strings.HasPrefix(text[n:], marker):
			return n
		}
	}
	return -1
}

// cutBare is strings.Cut, ignoring markers inside $(...) expressions.
func cutBare(text string, marker string) (before, after string, found bool) {
	n := indexBare(text, marker)
	if n < 0 {
		return text, "", false
	}
	return text[:n], text[n+len(marker):], true
}

// stripLine removes the comment and surrounding white space from a line.
func stripLine(text string) string {
	text, _, _ = cutBare(text, COMMENT_MARKER)
	text = strings.TrimRight(text, "\r\n")
	return strings.TrimSpace(text)
}

// parseHex parses a hexadecimal literal, with or without a 0x prefix.
func parseHex(word string, bits int) (value uint64, err error) {
	digits := word
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	value, err = strconv.ParseUint(digits, 16, bits)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// Parse assembles source text into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		var syn ErrSyntax
		if err != nil && !errors.As(err, &syn) {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
		if err != nil {
			prog = nil
		}
	}()

	asm.Symbols.Reset()
	asm.Pending = asm.Pending[:0]
	asm.prog = &Program{}
	asm.cursor = 0

	for scanner.Scan() {
		lineno += 1
		line = stripLine(scanner.Text())
		if len(line) == 0 {
			continue
		}

		asm.log().Debug("scan", zap.Int("lineno", lineno), zap.Int("address", asm.cursor), zap.String("line", line))

		var end bool
		end, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if end {
			break
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	line = ""
	err = asm.resolve()
	if err != nil {
		return
	}

	prog = asm.prog
	prog.Symbols.Symbols = append(prog.Symbols.Symbols[:0], asm.Symbols.Symbols...)
	prog.Symbols.sorted = true

	return
}

// parseLine catalogs the label and scans the directive or instruction on a
// single stripped line.
func (asm *Assembler) parseLine(line string, lineno int) (end bool, err error) {
	text := line

	label, rest, found := cutBare(line, LABEL_MARKER)
	if found {
		label = strings.TrimSpace(label)
		if len(label) == 0 || strings.ContainsAny(label, " \t") {
			err = ErrLabelInvalid
			return
		}
		if asm.cursor > ADDRESS_MASK {
			err = ErrProgramTooLarge
			return
		}
		asm.Symbols.Add(label, uint16(asm.cursor), lineno)
		asm.log().Debug("label", zap.String("label", label), zap.Int("address", asm.cursor))
		text = strings.TrimSpace(rest)
	}

	words := strings.Fields(text)

	// A bare label still occupies a word.
	if len(words) == 0 {
		err = asm.emit(0, lineno)
		return
	}

	mnemonic, args := words[0], words[1:]

	switch mnemonic {
	case "ORG":
		err = asm.org(args)
	case "END":
		end = true
	case "Hex", "Dec":
		var token string
		token, err = operandOf(args)
		if err != nil {
			return
		}
		radix := 16
		if mnemonic == "Dec" {
			radix = 10
		}
		asm.postpone(token, radix, true, lineno, line)
		err = asm.emit(0, lineno)
	default:
		op, ok := LookupOpcode(mnemonic)
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		if op.HasOperand() {
			var token string
			token, err = operandOf(args)
			if err != nil {
				return
			}
			asm.postpone(token, 16, false, lineno, line)
		} else if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		err = asm.emit(MakeCode(op, 0), lineno)
	}

	return
}

// operandOf returns the single operand token, or an entire $(...) expression.
func operandOf(args []string) (token string, err error) {
	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	joined := strings.Join(args, " ")
	if strings.HasPrefix(joined, "$(") && strings.HasSuffix(joined, ")") {
		token = joined
		return
	}

	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	token = args[0]
	return
}

// org moves the address cursor for the next written word.
func (asm *Assembler) org(args []string) (err error) {
	if len(args) == 0 {
		err = ErrOrgSyntax
		return
	}
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	target, err := parseHex(args[0], 16)
	if err != nil {
		err = errors.Join(ErrOrgSyntax, err)
		return
	}
	if target > ADDRESS_MASK {
		err = errors.Join(ErrOrgSyntax, ErrProgramTooLarge)
		return
	}
	if int(target) < asm.cursor {
		err = ErrOrgBackward{Old: uint16(asm.cursor), New: uint16(target)}
		return
	}

	asm.log().Debug("org", zap.Int("from", asm.cursor), zap.Uint64("to", target))
	asm.cursor = int(target)

	return
}

// postpone records an operand of the word at the cursor for resolution.
func (asm *Assembler) postpone(token string, radix int, data bool, lineno int, line string) {
	asm.Pending = append(asm.Pending, Pending{
		Token:   token,
		Address: uint16(asm.cursor) & ADDRESS_MASK,
		Radix:   radix,
		Data:    data,
		LineNo:  lineno,
		Line:    line,
	})
}

// emit stores a word at the cursor and advances it.
func (asm *Assembler) emit(code Code, lineno int) (err error) {
	if asm.cursor > ADDRESS_MASK {
		err = ErrProgramTooLarge
		return
	}

	prog := asm.prog
	prog.Words[asm.cursor] = uint16(code)
	prog.LineNo[asm.cursor] = lineno
	asm.cursor++
	prog.Size = max(prog.Size, asm.cursor)

	return
}

// resolve sorts the symbol table and patches every pending operand.
func (asm *Assembler) resolve() (err error) {
	err = asm.Symbols.Sort()
	if err != nil {
		return
	}

	for _, pending := range asm.Pending {
		var value uint16
		value, err = asm.valueOf(pending)
		if err != nil {
			err = ErrSyntax{LineNo: pending.LineNo, Line: pending.Line, Err: err}
			return
		}

		word := &asm.prog.Words[pending.Address]
		if pending.Data {
			*word = value
		} else {
			*word |= value
		}

		asm.log().Debug("patch",
			zap.String("token", pending.Token),
			zap.Uint16("address", pending.Address),
			zap.Uint16("word", *word))
	}

	return
}

// valueOf resolves a pending token to the value patched into its word.
func (asm *Assembler) valueOf(pending Pending) (value uint16, err error) {
	token := pending.Token

	var v64 int64
	address, is_label := asm.Symbols.Lookup(token)

	switch {
	case is_label:
		v64 = int64(address)
	case strings.HasPrefix(token, "$(") && strings.HasSuffix(token, ")"):
		v64, err = asm.parenEval(token[2 : len(token)-1])
		if err != nil {
			return
		}
	case pending.Radix == 16:
		var u64 uint64
		u64, err = parseHex(token, 16)
		if err != nil {
			err = ErrParseValue(token)
			return
		}
		v64 = int64(u64)
	default:
		v64, err = strconv.ParseInt(token, pending.Radix, 32)
		if err != nil {
			err = ErrParseValue(token)
			return
		}
	}

	if pending.Data {
		if v64 < -0x8000 || v64 > 0xffff {
			err = ErrDataRange
			return
		}
	} else if v64 < 0 || v64 > ADDRESS_MASK {
		err = ErrOperandRange
		return
	}

	value = uint16(v64)
	return
}

// parenEval does $(...) evaluations with every label predeclared.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, address := range asm.Symbols.All() {
		pred[name] = starlark.MakeInt(int(address))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

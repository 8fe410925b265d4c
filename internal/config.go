package internal

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gitlab.com/efronlicht/enve"
	"go.uber.org/zap"
)

const (
	ENV_VERBOSE   = "MARIE_VERBOSE"
	ENV_LENIENT   = "MARIE_LENIENT"
	ENV_ENTRY     = "MARIE_ENTRY"
	ENV_EXTENSION = "MARIE_EXT"

	DEFAULT_ENTRY     = 0x100
	DEFAULT_EXTENSION = ".mex2"
)

// Config holds the environment defaults shared by the commands. Command
// line flags override every field.
type Config struct {
	Verbose   bool   // Debug level logging.
	Lenient   bool   // Undefined opcodes are no-ops.
	Entry     uint16 // Initial program counter.
	Extension string // Assembler output extension.
}

// ParseEntry parses a hexadecimal 12-bit address.
func ParseEntry(s string) (entry uint16, err error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v64, err := strconv.ParseUint(s, 16, 12)
	if err != nil {
		return
	}
	entry = uint16(v64)
	return
}

func parseExtension(s string) (ext string, err error) {
	if len(s) == 0 {
		err = errors.New("empty extension")
		return
	}
	ext = s
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return
}

// lookup parses an environment variable, keeping backup if it is missing or
// invalid.
func lookup[T any](log *zap.Logger, parse func(string) (T, error), key string, backup T) T {
	value, err := enve.Lookup(parse, key)
	if err != nil {
		if _, set := os.LookupEnv(key); set {
			log.Warn("invalid environment variable", zap.String("key", key), zap.Error(err), zap.Any("default", backup))
		}
		return backup
	}
	return value
}

// LoadConfig reads the configuration from the environment.
func LoadConfig(log *zap.Logger) (cfg Config) {
	if log == nil {
		log = zap.NewNop()
	}

	cfg = Config{
		Verbose:   lookup(log, strconv.ParseBool, ENV_VERBOSE, false),
		Lenient:   lookup(log, strconv.ParseBool, ENV_LENIENT, false),
		Entry:     lookup(log, ParseEntry, ENV_ENTRY, uint16(DEFAULT_ENTRY)),
		Extension: lookup(log, parseExtension, ENV_EXTENSION, DEFAULT_EXTENSION),
	}

	return
}

package internal

import (
	"path/filepath"
	"strings"
)

// OutputPath replaces the final extension of input with ext, or appends ext
// when input has none.
func OutputPath(input string, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

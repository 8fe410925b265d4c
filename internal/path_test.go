package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input  string
		ext    string
		output string
	}){
		{"hello.mas", ".mex2", "hello.mex2"},
		{"hello", ".mex2", "hello.mex2"},
		{"dir.d/hello", ".mex2", "dir.d/hello.mex2"},
		{"dir/hello.tar.mas", ".bin", "dir/hello.tar.bin"},
		{"hello.mex2", ".mex2", "hello.mex2"},
	}

	for _, entry := range table {
		assert.Equal(entry.output, OutputPath(entry.input, entry.ext), entry.input)
	}
}

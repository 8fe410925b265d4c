package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/marie/translate"
)

func TestFormatElapsed(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(translate.SetLanguage("en-US"))

	table := [](struct {
		elapsed time.Duration
		text    string
	}){
		{0, "Time: 0μs"},
		{999 * time.Microsecond, "Time: 999μs"},
		{1500 * time.Microsecond, "Time: 1.500ms"},
		{999999 * time.Microsecond, "Time: 999.999ms"},
		{2*time.Second + 5*time.Microsecond, "Time: 2.000005s"},
		{1234*time.Second + 500*time.Millisecond, "Time: 1234.500000s"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, FormatElapsed(entry.elapsed))
	}
}

func TestFormatTicks(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(translate.SetLanguage("en-US"))

	assert.Equal("Instructions: 7", FormatTicks(7))
	assert.Equal("Instructions: 12,345", FormatTicks(12345))
}

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)

	assert.True(NewLogger(true).Core().Enabled(zapcore.DebugLevel))
	assert.False(NewLogger(false).Core().Enabled(zapcore.DebugLevel))
}

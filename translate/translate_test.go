package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(Printer())

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("value 12 of x", From("value %d of %s", 12, "x"))
	assert.Equal("count 1,234,567", From("count %d", 1234567))

	assert.Error(SetLanguage("not a language tag"))
}

package io

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageTooLarge  = errors.New(f("image is too large, maximum size is %d words or %d bytes", ROM_WORDS_MAX, ROM_WORDS_MAX*2))
	ErrImageTruncated = errors.New(f("image has a partial word"))

	// Tape errors
	ErrOutputMissing = errors.New(f("no output attached"))
)

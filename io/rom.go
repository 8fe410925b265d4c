package io

import (
	"encoding/binary"
	"io"
)

// ROM_WORDS_MAX is the largest image that fits in the address space.
const ROM_WORDS_MAX = 0x1000

// Rom is an executable image: a flat sequence of 16-bit words in host byte
// order, one per memory cell starting at address 0.
type Rom struct {
	Data []uint16
}

// Unmarshal reads an image, rejecting one that is oversized or ends with a
// partial word.
func (rom *Rom) Unmarshal(input io.Reader) (err error) {
	raw, err := io.ReadAll(io.LimitReader(input, ROM_WORDS_MAX*2+1))
	if err != nil {
		return
	}

	if len(raw) > ROM_WORDS_MAX*2 {
		err = ErrImageTooLarge
		return
	}

	if len(raw)%2 != 0 {
		err = ErrImageTruncated
		return
	}

	data := make([]uint16, len(raw)/2)
	for n := range data {
		data[n] = binary.NativeEndian.Uint16(raw[n*2:])
	}
	rom.Data = data

	return
}

// Marshal writes the image.
func (rom *Rom) Marshal(output io.Writer) (err error) {
	if len(rom.Data) > ROM_WORDS_MAX {
		err = ErrImageTooLarge
		return
	}

	raw := make([]byte, len(rom.Data)*2)
	for n, word := range rom.Data {
		binary.NativeEndian.PutUint16(raw[n*2:], word)
	}

	_, err = output.Write(raw)

	return
}

package binmode

import (
	"github.com/wippyai/binmode-transcoder/errors"
)

// utf8Illegal describes a byte pattern that can never start a valid
// UTF-8 sequence. Rows with a non-zero mask2 also match on the second
// byte, which is how overlong 3-6 byte encodings are detected.
type utf8Illegal struct {
	pattern  byte
	mask     byte
	pattern2 byte
	mask2    byte
}

var utf8IllegalTable = []utf8Illegal{
	{pattern: 0x80, mask: 0xC0},                              // continuation byte as leader
	{pattern: 0xC0, mask: 0xFE},                              // overlong 2-byte form (0xC0, 0xC1)
	{pattern: 0xE0, mask: 0xFF, pattern2: 0x80, mask2: 0xE0}, // overlong 3-byte form
	{pattern: 0xF0, mask: 0xFF, pattern2: 0x80, mask2: 0xF0}, // overlong 4-byte form
	{pattern: 0xF8, mask: 0xFF, pattern2: 0x80, mask2: 0xF8}, // overlong 5-byte form
	{pattern: 0xFC, mask: 0xFF, pattern2: 0x80, mask2: 0xFC}, // overlong 6-byte form
}

// utf8Length maps a leading byte's high bits to the expected sequence
// length. Anything not matched is a single-byte (ASCII) sequence.
type utf8Length struct {
	pattern byte
	mask    byte
	length  int
}

var utf8LengthTable = []utf8Length{
	{pattern: 0xC0, mask: 0xE0, length: 2},
	{pattern: 0xE0, mask: 0xF0, length: 3},
	{pattern: 0xF0, mask: 0xF8, length: 4},
	{pattern: 0xF8, mask: 0xFC, length: 5},
	{pattern: 0xFC, mask: 0xFE, length: 6},
}

// ValidateUTF8 checks that data is structurally well-formed UTF-8:
// every sequence has a legal leader, the full expected length, and
// correctly shaped continuation bytes, and none of the listed overlong
// encodings appear.
//
// This is a structural check only. It does not reject every invalid
// code point; encoded surrogate halves, for instance, pass. That
// permissiveness is deliberate and matches existing Binmode-RPC
// producers; do not tighten it to full Unicode conformance.
//
// The returned error's offset is relative to the start of data.
func ValidateUTF8(data []byte) error {
	i := 0
	for i < len(data) {
		b := data[i]

		for _, row := range utf8IllegalTable {
			if b&row.mask != row.pattern {
				continue
			}
			if row.mask2 == 0 {
				return errors.InvalidUTF8(data[i:], i)
			}
			if i+1 < len(data) && data[i+1]&row.mask2 == row.pattern2 {
				return errors.InvalidUTF8(data[i:], i)
			}
		}

		length := 1
		for _, row := range utf8LengthTable {
			if b&row.mask == row.pattern {
				length = row.length
				break
			}
		}

		if i+length > len(data) {
			return errors.InvalidUTF8(data[i:], i)
		}

		for j := 1; j < length; j++ {
			if data[i+j]&0xC0 != 0x80 {
				return errors.InvalidUTF8(data[i:], i)
			}
		}

		i += length
	}
	return nil
}

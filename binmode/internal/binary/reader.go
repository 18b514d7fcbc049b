package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read requests more bytes than
// remain in the buffer.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Reader is a position-tracked, bounds-checked cursor over an in-memory
// buffer. Every read either advances the position or fails; there are
// no partial reads.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a new Reader over the given buffer.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the position.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	return r.buf[r.pos], nil
}

// ReadBytes reads exactly n bytes. The returned slice is a copy and
// does not alias the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, r.wrapError(ErrUnexpectedEOF)
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadI32LE reads a little-endian int32 (fixed 4 bytes).
func (r *Reader) ReadI32LE() (int32, error) {
	v, err := r.ReadU32LE()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Expect consumes len(lit) bytes and checks they equal lit. The
// position is not advanced on mismatch.
func (r *Reader) Expect(lit []byte) (bool, error) {
	if r.pos+len(lit) > len(r.buf) {
		return false, r.wrapError(ErrUnexpectedEOF)
	}
	for i, b := range lit {
		if r.buf[r.pos+i] != b {
			return false, nil
		}
	}
	r.pos += len(lit)
	return true, nil
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during binary parsing with position
// information.
type ParseError struct {
	Err      error
	Context  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("binmode: %s at position %d: %v", e.Context, e.Position, e.Err)
	}
	return fmt.Sprintf("binmode: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(context string, err error) error {
	return &ParseError{
		Position: r.pos,
		Context:  context,
		Err:      err,
	}
}

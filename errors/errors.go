package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // wire to value tree
	PhaseValidate Phase = "validate" // payload validation
	PhaseEmit     Phase = "emit"     // value tree to document
)

// Kind categorizes the error
type Kind string

const (
	KindMissingHeader          Kind = "missing_header"
	KindUnexpectedEOF          Kind = "unexpected_eof"
	KindUnknownMessageType     Kind = "unknown_message_type"
	KindUnknownType            Kind = "unknown_type"
	KindUnsupportedType        Kind = "unsupported_type"
	KindTypeMismatch           Kind = "type_mismatch"
	KindUndefinedCodebookEntry Kind = "undefined_codebook_entry"
	KindInvalidUTF8            Kind = "invalid_utf8"
)

// Error is the structured error type used throughout the transcoder
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int // byte offset into the input; -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the byte offset in the input
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingHeader reports input that does not start with the Binmode-RPC
// header literal.
func MissingHeader(header string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMissingHeader,
		Offset: 0,
		Detail: fmt.Sprintf("input does not begin with %q", header),
	}
}

// UnexpectedEOF reports a read past the end of the input buffer.
func UnexpectedEOF(offset int, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEOF,
		Offset: offset,
		Cause:  cause,
	}
}

// UnknownMessageType reports an unrecognized top-level message tag.
func UnknownMessageType(tag byte, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownMessageType,
		Offset: offset,
		Detail: fmt.Sprintf("message tag 0x%02x", tag),
	}
}

// UnknownType reports an unrecognized value tag.
func UnknownType(tag byte, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownType,
		Offset: offset,
		Detail: fmt.Sprintf("value tag 0x%02x", tag),
	}
}

// UnsupportedType reports a reserved value tag that is recognized but
// not implemented.
func UnsupportedType(tag byte, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupportedType,
		Offset: offset,
		Detail: fmt.Sprintf("reserved value tag %q", tag),
	}
}

// TypeMismatch reports a value that decoded as a different kind than
// the wire position requires.
func TypeMismatch(want, got string, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTypeMismatch,
		Offset: offset,
		Detail: fmt.Sprintf("expected %s, got %s", want, got),
	}
}

// UndefinedCodebookEntry reports a recall of a codebook index that was
// never recorded.
func UndefinedCodebookEntry(index byte, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUndefinedCodebookEntry,
		Offset: offset,
		Detail: fmt.Sprintf("recall of unset index %d", index),
	}
}

// InvalidUTF8 reports a string payload that fails structural UTF-8
// well-formedness. A short hex preview of the offending bytes is
// included in the detail.
func InvalidUTF8(data []byte, offset int) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

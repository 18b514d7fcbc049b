// Package errors provides structured error types for the transcoder.
//
// Errors are categorized by Phase (where in the pipeline the error
// occurred) and Kind (error category). The Error type carries the byte
// offset in the input where decoding failed, which is the single most
// useful datum when diagnosing a malformed Binmode-RPC stream.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownType).
//		Offset(17).
//		Detail("tag 0x%02x", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(tag, offset)
//	err := errors.TypeMismatch("string", "int", offset)
//
// All errors implement the standard error interface and support
// errors.Is/As; two Errors match when Phase and Kind agree.
package errors

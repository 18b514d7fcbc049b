// Package binmodetranscoder converts Binmode-RPC binary messages into
// XML-RPC documents.
//
// Binmode-RPC is a compact binary encoding of the XML-RPC data model:
// calls, responses, faults, and a fixed set of scalar and composite
// value types. Repeated strings are compressed with a codebook of
// backreferences. This library decodes one binary message into a typed
// value tree and renders that tree as an indented XML-RPC document.
//
// # Architecture Overview
//
// The library is organized into a small set of packages with distinct
// responsibilities:
//
//	binmode-transcoder/
//	├── binmode/             Binary decoder: message framing, value
//	│   │                    decoding, codebook, UTF-8 validation
//	│   └── internal/binary/ Position-tracked, bounds-checked byte cursor
//	├── xmlrpc/              XML-RPC document emitter
//	├── errors/              Structured error types for diagnostics
//	├── cmd/binmode2xmlrpc/  One-shot stdin-to-stdout transcoder
//	└── cmd/bininspect/      Interactive inspector for binary messages
//
// # Quick Start
//
// Decode a message and emit the XML-RPC document:
//
//	msg, err := binmode.DecodeMessage(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(xmlrpc.Emit(msg))
//
// # Data Flow
//
//	raw bytes -> cursor -> message decoder -> value tree -> XML-RPC text
//
// Decoding is strict: any malformed input aborts the whole decode with
// a structured error. The single non-fatal condition is trailing bytes
// after a complete message, reported as a warning on the decoded
// message rather than an error.
//
// # Concurrency
//
// A decode pass is single-threaded and self-contained. The cursor and
// codebook live for exactly one call to DecodeMessage and are never
// shared. Decoded messages are plain values and may be emitted from any
// goroutine.
package binmodetranscoder

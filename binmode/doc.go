// Package binmode decodes Binmode-RPC binary messages into typed value
// trees.
//
// A message is the ASCII header "binmode-rpc:" followed by a
// tag-dispatched binary encoding of either a method call or a response.
// All multi-byte integers are little-endian. The wire format is
// described tag by tag in constants.go.
//
// # Decoding
//
//	msg, err := binmode.DecodeMessage(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch msg.Type {
//	case binmode.MessageCall:
//	    fmt.Println(msg.Method, len(msg.Params))
//	case binmode.MessageFault:
//	    // msg.Fault is a struct value
//	case binmode.MessageResult:
//	    // msg.Result is the single result value
//	}
//
// # Codebook
//
// Repeated strings are compressed on the wire with a codebook: a '>'
// tag records the string that follows under a one-byte index, a '<' tag
// recalls a previously recorded string. The codebook lives for exactly
// one decode pass. Recording over an existing index shadows the earlier
// entry; recalling an index never recorded is a fatal decode error.
//
// # UTF-8 Validation
//
// Every string payload is checked for structural UTF-8 well-formedness
// as it is read off the wire. See ValidateUTF8 for the exact rule set,
// including its deliberate permissiveness.
//
// # Errors
//
// All decode failures return a structured *errors.Error carrying the
// phase, kind, and byte offset. Decoding never writes partial results:
// the returned message is nil whenever the error is non-nil. Trailing
// bytes after a complete message are not an error; the count is
// reported on Message.Trailing.
package binmode

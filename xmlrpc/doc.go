// Package xmlrpc renders decoded Binmode-RPC messages as XML-RPC
// documents.
//
// The emitter is a pure tree-to-text renderer: it has no decoding
// knowledge and panics on value kinds the decoder cannot produce. Each
// document is the XML declaration followed by a methodCall or
// methodResponse element, indented two spaces per nesting level with
// "\n" line terminators. Indentation is cosmetic only.
//
//	fmt.Print(xmlrpc.Emit(msg))
//
// Text content escapes '&', '<' and '"'. Base64 payloads are emitted
// without escaping; the base64 alphabet contains nothing that needs
// it.
package xmlrpc

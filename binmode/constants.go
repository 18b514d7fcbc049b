package binmode

// Header is the mandatory ASCII literal at the start of every
// Binmode-RPC message. Input that does not begin with it is rejected
// before any value decoding.
const Header = "binmode-rpc:"

// Message tags identify the top-level framing of a message.
const (
	TagCall     byte = 'C' // method call: name + parameter array
	TagResponse byte = 'R' // response: fault or result
	TagFault    byte = 'F' // fault marker inside a response
)

// Value tags identify the type of the value that follows.
// Lengths are little-endian; 1-byte lengths cover 0-255.
const (
	TagInteger      byte = 'I' // 4-byte signed little-endian
	TagBoolTrue     byte = 't' // no payload
	TagBoolFalse    byte = 'f' // no payload
	TagDouble       byte = 'D' // 1-byte length + verbatim decimal text
	TagDateTime     byte = '8' // 1-byte length + verbatim timestamp text
	TagBase64       byte = 'B' // 4-byte length + raw binary
	TagArray        byte = 'A' // 4-byte count + that many values
	TagStruct       byte = 'S' // 4-byte count + (string key, value) pairs
	TagString       byte = 'U' // 4-byte length + UTF-8 validated bytes
	TagStringRecord byte = '>' // 1-byte codebook index + string payload
	TagStringRecall byte = '<' // 1-byte codebook index
	TagReserved     byte = 'O' // reserved, always rejected
)

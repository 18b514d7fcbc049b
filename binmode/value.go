package binmode

// Kind identifies the variant held by a Value.
type Kind byte

const (
	KindInteger Kind = iota
	KindDouble
	KindBoolean
	KindString
	KindDateTime
	KindBase64
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindDateTime:
		return "dateTime"
	case KindBase64:
		return "base64"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is a decoded RPC value: a Kind plus the fields for that
// variant. Only the fields belonging to the Kind are populated.
type Value struct {
	// Str holds the text for KindString, and the verbatim wire text
	// for KindDouble and KindDateTime. Doubles are never reparsed as
	// numbers; the decimal representation on the wire is preserved
	// exactly.
	Str     string
	Bytes   []byte   // KindBase64: raw binary payload
	Items   []Value  // KindArray: elements in wire order
	Members []Member // KindStruct: members in wire encounter order
	Int     int32    // KindInteger
	Bool    bool     // KindBoolean
	Kind    Kind
}

// Member is a single struct entry.
type Member struct {
	Name  string
	Value Value
}

// Codebook maps one-byte indices to previously decoded strings. It is
// scoped to a single decode pass; there is no eviction and no
// persistence. A map with an explicit presence check is used rather
// than a fixed array so that "never recorded" and "recorded as empty
// string" stay distinct.
type Codebook struct {
	entries map[byte]string
}

// NewCodebook creates an empty codebook.
func NewCodebook() *Codebook {
	return &Codebook{entries: make(map[byte]string)}
}

// Record stores s at the given index. A later record at the same index
// shadows the earlier entry for subsequent recalls.
func (c *Codebook) Record(index byte, s string) {
	c.entries[index] = s
}

// Recall returns the string recorded at index, and whether the index
// has been recorded in this decode pass.
func (c *Codebook) Recall(index byte) (string, bool) {
	s, ok := c.entries[index]
	return s, ok
}

// Len returns the number of distinct indices recorded.
func (c *Codebook) Len() int {
	return len(c.entries)
}

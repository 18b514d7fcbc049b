package binmode

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/binmode-transcoder/binmode/internal/binary"
	"github.com/wippyai/binmode-transcoder/errors"
)

// MessageType identifies the framing of a decoded message.
type MessageType int

const (
	MessageCall   MessageType = iota // method call
	MessageFault                     // response carrying a fault struct
	MessageResult                    // response carrying a result value
)

func (t MessageType) String() string {
	switch t {
	case MessageCall:
		return "call"
	case MessageFault:
		return "fault"
	case MessageResult:
		return "result"
	default:
		return "unknown"
	}
}

// Message is one decoded Binmode-RPC message. Only the fields for its
// Type are populated: Method and Params for a call, Fault for a fault
// response, Result for a successful response.
type Message struct {
	Method   string
	Params   []Value
	Fault    Value
	Result   Value
	Type     MessageType
	Trailing int // bytes left over after the message; nonzero is a warning, not an error
}

// DecodeMessage decodes a single Binmode-RPC message from input.
//
// The input must begin with the Header literal. Exactly one message is
// decoded; unconsumed trailing bytes are counted on Message.Trailing
// and logged as a warning, but do not fail the decode. All other
// malformed input aborts with a structured *errors.Error.
func DecodeMessage(input []byte) (*Message, error) {
	r := binary.NewReader(input)

	ok, err := r.Expect([]byte(Header))
	if err != nil || !ok {
		return nil, errors.MissingHeader(Header)
	}

	d := &decoder{r: r, cb: NewCodebook()}

	tagOff := r.Position()
	tag, err := r.ReadByte()
	if err != nil {
		return nil, d.fail(err)
	}

	msg := &Message{}
	switch tag {
	case TagCall:
		method, err := d.readValueKind(KindString)
		if err != nil {
			return nil, err
		}
		params, err := d.readValueKind(KindArray)
		if err != nil {
			return nil, err
		}
		msg.Type = MessageCall
		msg.Method = method.Str
		msg.Params = params.Items

	case TagResponse:
		next, err := r.PeekByte()
		if err != nil {
			return nil, d.fail(err)
		}
		if next == TagFault {
			_, _ = r.ReadByte()
			fault, err := d.readValueKind(KindStruct)
			if err != nil {
				return nil, err
			}
			msg.Type = MessageFault
			msg.Fault = fault
		} else {
			result, err := d.readValue()
			if err != nil {
				return nil, err
			}
			msg.Type = MessageResult
			msg.Result = result
		}

	default:
		return nil, errors.UnknownMessageType(tag, tagOff)
	}

	msg.Trailing = r.Remaining()
	if msg.Trailing > 0 {
		Logger().Warn("trailing bytes after message",
			zap.Int("bytes", msg.Trailing),
			zap.Int("offset", r.Position()))
	}
	Logger().Debug("decoded message",
		zap.Stringer("type", msg.Type),
		zap.Int("codebook_entries", d.cb.Len()))

	return msg, nil
}

// decoder holds the per-pass state: the cursor and the codebook. Both
// are discarded when DecodeMessage returns.
type decoder struct {
	r  *binary.Reader
	cb *Codebook
}

// fail maps cursor-level short reads onto the structured error type;
// anything else passes through unchanged.
func (d *decoder) fail(err error) error {
	if stderrors.Is(err, binary.ErrUnexpectedEOF) {
		return errors.UnexpectedEOF(d.r.Position(), err)
	}
	return err
}

// readValue reads one tag byte and decodes the value it announces,
// recursing for arrays and structs.
func (d *decoder) readValue() (Value, error) {
	tagOff := d.r.Position()
	tag, err := d.r.ReadByte()
	if err != nil {
		return Value{}, d.fail(err)
	}

	switch tag {
	case TagInteger:
		n, err := d.r.ReadI32LE()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Value{Kind: KindInteger, Int: n}, nil

	case TagBoolTrue:
		return Value{Kind: KindBoolean, Bool: true}, nil

	case TagBoolFalse:
		return Value{Kind: KindBoolean, Bool: false}, nil

	case TagDouble:
		text, err := d.readShortText()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDouble, Str: text}, nil

	case TagDateTime:
		text, err := d.readShortText()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDateTime, Str: text}, nil

	case TagBase64:
		length, err := d.r.ReadU32LE()
		if err != nil {
			return Value{}, d.fail(err)
		}
		data, err := d.r.ReadBytes(int(length))
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Value{Kind: KindBase64, Bytes: data}, nil

	case TagArray:
		count, err := d.r.ReadU32LE()
		if err != nil {
			return Value{}, d.fail(err)
		}
		items := make([]Value, 0, clampCap(count, d.r.Remaining()))
		for i := uint32(0); i < count; i++ {
			item, err := d.readValue()
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{Kind: KindArray, Items: items}, nil

	case TagStruct:
		count, err := d.r.ReadU32LE()
		if err != nil {
			return Value{}, d.fail(err)
		}
		members := make([]Member, 0, clampCap(count, d.r.Remaining()))
		index := make(map[string]int)
		for i := uint32(0); i < count; i++ {
			key, err := d.readValueKind(KindString)
			if err != nil {
				return Value{}, err
			}
			val, err := d.readValue()
			if err != nil {
				return Value{}, err
			}
			if at, dup := index[key.Str]; dup {
				members[at].Value = val
				continue
			}
			index[key.Str] = len(members)
			members = append(members, Member{Name: key.Str, Value: val})
		}
		return Value{Kind: KindStruct, Members: members}, nil

	case TagString:
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Str: s}, nil

	case TagStringRecord:
		index, err := d.r.ReadByte()
		if err != nil {
			return Value{}, d.fail(err)
		}
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		d.cb.Record(index, s)
		return Value{Kind: KindString, Str: s}, nil

	case TagStringRecall:
		index, err := d.r.ReadByte()
		if err != nil {
			return Value{}, d.fail(err)
		}
		s, ok := d.cb.Recall(index)
		if !ok {
			return Value{}, errors.UndefinedCodebookEntry(index, tagOff)
		}
		return Value{Kind: KindString, Str: s}, nil

	case TagReserved:
		return Value{}, errors.UnsupportedType(tag, tagOff)

	default:
		return Value{}, errors.UnknownType(tag, tagOff)
	}
}

// readValueKind decodes one value and requires it to be of kind want.
func (d *decoder) readValueKind(want Kind) (Value, error) {
	off := d.r.Position()
	v, err := d.readValue()
	if err != nil {
		return Value{}, err
	}
	if v.Kind != want {
		return Value{}, errors.TypeMismatch(want.String(), v.Kind.String(), off)
	}
	return v, nil
}

// readString reads a 4-byte length, that many bytes, and validates them
// as UTF-8. Validation errors are reported at the absolute input
// offset of the offending byte.
func (d *decoder) readString() (string, error) {
	length, err := d.r.ReadU32LE()
	if err != nil {
		return "", d.fail(err)
	}
	start := d.r.Position()
	data, err := d.r.ReadBytes(int(length))
	if err != nil {
		return "", d.fail(err)
	}
	if err := ValidateUTF8(data); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			e.Offset += start
		}
		return "", err
	}
	return string(data), nil
}

// readShortText reads a 1-byte length and that many bytes, stored
// verbatim. Used for doubles and timestamps, whose wire text is never
// reparsed.
func (d *decoder) readShortText() (string, error) {
	length, err := d.r.ReadByte()
	if err != nil {
		return "", d.fail(err)
	}
	data, err := d.r.ReadBytes(int(length))
	if err != nil {
		return "", d.fail(err)
	}
	return string(data), nil
}

// clampCap bounds a wire-supplied element count for preallocation.
// Each element occupies at least one byte, so anything beyond the
// remaining input will fail with UnexpectedEof during the loop anyway.
func clampCap(count uint32, remaining int) int {
	if int(count) > remaining {
		return remaining
	}
	return int(count)
}

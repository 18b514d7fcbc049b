package binmode_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/binmode-transcoder/binmode"
	"github.com/wippyai/binmode-transcoder/errors"
)

// Wire-building helpers. All lengths little-endian per the format.

func u32le(n uint32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

func wireString(s string) []byte {
	out := []byte{'U'}
	out = append(out, u32le(uint32(len(s)))...)
	return append(out, s...)
}

func wireInt(n int32) []byte {
	return append([]byte{'I'}, u32le(uint32(n))...)
}

func wireMessage(body ...[]byte) []byte {
	out := []byte(binmode.Header)
	for _, b := range body {
		out = append(out, b...)
	}
	return out
}

func kindTarget(k errors.Kind) error {
	return errors.New(errors.PhaseDecode, k).Build()
}

func TestDecodeCallEmptyParams(t *testing.T) {
	input := wireMessage([]byte{'C'}, wireString("foo"), []byte{'A'}, u32le(0))
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.Type != binmode.MessageCall {
		t.Fatalf("expected call, got %v", msg.Type)
	}
	if msg.Method != "foo" {
		t.Errorf("expected method foo, got %q", msg.Method)
	}
	if len(msg.Params) != 0 {
		t.Errorf("expected no params, got %d", len(msg.Params))
	}
	if msg.Trailing != 0 {
		t.Errorf("expected no trailing bytes, got %d", msg.Trailing)
	}
}

func TestDecodeCallWithParams(t *testing.T) {
	input := wireMessage(
		[]byte{'C'}, wireString("sum"),
		[]byte{'A'}, u32le(3),
		wireInt(-7), []byte{'t'}, wireString("x"),
	)
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if len(msg.Params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(msg.Params))
	}
	if msg.Params[0].Kind != binmode.KindInteger || msg.Params[0].Int != -7 {
		t.Errorf("param 0: got %+v", msg.Params[0])
	}
	if msg.Params[1].Kind != binmode.KindBoolean || !msg.Params[1].Bool {
		t.Errorf("param 1: got %+v", msg.Params[1])
	}
	if msg.Params[2].Kind != binmode.KindString || msg.Params[2].Str != "x" {
		t.Errorf("param 2: got %+v", msg.Params[2])
	}
}

func TestDecodeResultScalars(t *testing.T) {
	cases := []struct {
		name  string
		wire  []byte
		check func(t *testing.T, v binmode.Value)
	}{
		{
			name: "integer",
			wire: wireInt(42),
			check: func(t *testing.T, v binmode.Value) {
				if v.Kind != binmode.KindInteger || v.Int != 42 {
					t.Errorf("got %+v", v)
				}
			},
		},
		{
			name: "boolean false",
			wire: []byte{'f'},
			check: func(t *testing.T, v binmode.Value) {
				if v.Kind != binmode.KindBoolean || v.Bool {
					t.Errorf("got %+v", v)
				}
			},
		},
		{
			name: "double verbatim",
			wire: append([]byte{'D', 6}, "3.1400"...),
			check: func(t *testing.T, v binmode.Value) {
				if v.Kind != binmode.KindDouble || v.Str != "3.1400" {
					t.Errorf("double text not verbatim: %+v", v)
				}
			},
		},
		{
			name: "datetime verbatim",
			wire: append([]byte{'8', 17}, "19980717T14:08:55"...),
			check: func(t *testing.T, v binmode.Value) {
				if v.Kind != binmode.KindDateTime || v.Str != "19980717T14:08:55" {
					t.Errorf("got %+v", v)
				}
			},
		},
		{
			name: "base64 raw",
			wire: append(append([]byte{'B'}, u32le(3)...), 0x00, 0xFF, 0x10),
			check: func(t *testing.T, v binmode.Value) {
				if v.Kind != binmode.KindBase64 || !bytes.Equal(v.Bytes, []byte{0x00, 0xFF, 0x10}) {
					t.Errorf("got %+v", v)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := binmode.DecodeMessage(wireMessage([]byte{'R'}, tc.wire))
			if err != nil {
				t.Fatalf("DecodeMessage: %v", err)
			}
			if msg.Type != binmode.MessageResult {
				t.Fatalf("expected result, got %v", msg.Type)
			}
			tc.check(t, msg.Result)
		})
	}
}

func TestDecodeFault(t *testing.T) {
	input := wireMessage(
		[]byte{'R', 'F', 'S'}, u32le(2),
		wireString("faultCode"), wireInt(4),
		wireString("faultString"), wireString("Too many parameters."),
	)
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.Type != binmode.MessageFault {
		t.Fatalf("expected fault, got %v", msg.Type)
	}
	m := msg.Fault.Members
	if len(m) != 2 {
		t.Fatalf("expected 2 members, got %d", len(m))
	}
	if m[0].Name != "faultCode" || m[0].Value.Int != 4 {
		t.Errorf("member 0: %+v", m[0])
	}
	if m[1].Name != "faultString" || m[1].Value.Str != "Too many parameters." {
		t.Errorf("member 1: %+v", m[1])
	}
}

func TestDecodeNestedArray(t *testing.T) {
	inner := append([]byte{'A'}, u32le(1)...)
	inner = append(inner, wireInt(1)...)
	outer := append([]byte{'A'}, u32le(2)...)
	outer = append(outer, inner...)
	outer = append(outer, []byte{'f'}...)

	msg, err := binmode.DecodeMessage(wireMessage([]byte{'R'}, outer))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	v := msg.Result
	if v.Kind != binmode.KindArray || len(v.Items) != 2 {
		t.Fatalf("outer array: %+v", v)
	}
	if v.Items[0].Kind != binmode.KindArray || len(v.Items[0].Items) != 1 {
		t.Errorf("inner array: %+v", v.Items[0])
	}
	if v.Items[0].Items[0].Int != 1 {
		t.Errorf("inner element: %+v", v.Items[0].Items[0])
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	for _, input := range [][]byte{
		nil,
		[]byte("bin"),
		[]byte("binmode-xpc:C"),
		[]byte("XMLRPC"),
	} {
		_, err := binmode.DecodeMessage(input)
		if !stderrors.Is(err, kindTarget(errors.KindMissingHeader)) {
			t.Errorf("input %q: expected missing_header, got %v", input, err)
		}
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	_, err := binmode.DecodeMessage(wireMessage([]byte{'Z'}))
	if !stderrors.Is(err, kindTarget(errors.KindUnknownMessageType)) {
		t.Errorf("expected unknown_message_type, got %v", err)
	}
}

func TestDecodeTruncatedInteger(t *testing.T) {
	// 'I' announces 4 payload bytes but only 2 follow.
	input := wireMessage([]byte{'R', 'I', 0x01, 0x02})
	_, err := binmode.DecodeMessage(input)
	if !stderrors.Is(err, kindTarget(errors.KindUnexpectedEOF)) {
		t.Errorf("expected unexpected_eof, got %v", err)
	}
}

func TestDecodeEmptyAfterHeader(t *testing.T) {
	_, err := binmode.DecodeMessage([]byte(binmode.Header))
	if !stderrors.Is(err, kindTarget(errors.KindUnexpectedEOF)) {
		t.Errorf("expected unexpected_eof, got %v", err)
	}
}

func TestDecodeReservedTag(t *testing.T) {
	_, err := binmode.DecodeMessage(wireMessage([]byte{'R', 'O'}))
	if !stderrors.Is(err, kindTarget(errors.KindUnsupportedType)) {
		t.Errorf("expected unsupported_type, got %v", err)
	}
}

func TestDecodeUnknownValueTag(t *testing.T) {
	_, err := binmode.DecodeMessage(wireMessage([]byte{'R', 'Q'}))
	if !stderrors.Is(err, kindTarget(errors.KindUnknownType)) {
		t.Errorf("expected unknown_type, got %v", err)
	}
}

func TestDecodeMethodNameNotString(t *testing.T) {
	input := wireMessage([]byte{'C'}, wireInt(5))
	_, err := binmode.DecodeMessage(input)
	if !stderrors.Is(err, kindTarget(errors.KindTypeMismatch)) {
		t.Errorf("expected type_mismatch, got %v", err)
	}
}

func TestDecodeStructKeyNotString(t *testing.T) {
	input := wireMessage([]byte{'R', 'S'}, u32le(1), wireInt(1), wireInt(2))
	_, err := binmode.DecodeMessage(input)
	if !stderrors.Is(err, kindTarget(errors.KindTypeMismatch)) {
		t.Errorf("expected type_mismatch, got %v", err)
	}
}

func TestDecodeStructDuplicateKeyLastWins(t *testing.T) {
	input := wireMessage(
		[]byte{'R', 'S'}, u32le(2),
		wireString("k"), wireInt(1),
		wireString("k"), wireInt(2),
	)
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.Type != binmode.MessageResult {
		t.Fatal("expected result message")
	}
	m := msg.Result.Members
	if len(m) != 1 {
		t.Fatalf("expected 1 member after duplicate key, got %d", len(m))
	}
	if m[0].Value.Int != 2 {
		t.Errorf("expected last value to win, got %d", m[0].Value.Int)
	}
}

func TestDecodeCodebookRoundTrip(t *testing.T) {
	// Record "shared" at index 5, then recall it inside the same array.
	record := append([]byte{'>', 5}, u32le(6)...)
	record = append(record, "shared"...)
	recall := []byte{'<', 5}

	body := append([]byte{'A'}, u32le(2)...)
	body = append(body, record...)
	body = append(body, recall...)

	msg, err := binmode.DecodeMessage(wireMessage([]byte{'R'}, body))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	items := msg.Result.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Str != "shared" || items[1].Str != "shared" {
		t.Errorf("expected identical text, got %q and %q", items[0].Str, items[1].Str)
	}
}

func TestDecodeCodebookShadowing(t *testing.T) {
	first := append([]byte{'>', 5}, u32le(1)...)
	first = append(first, 'a')
	second := append([]byte{'>', 5}, u32le(1)...)
	second = append(second, 'b')
	recall := []byte{'<', 5}

	body := append([]byte{'A'}, u32le(3)...)
	body = append(body, first...)
	body = append(body, second...)
	body = append(body, recall...)

	msg, err := binmode.DecodeMessage(wireMessage([]byte{'R'}, body))
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if got := msg.Result.Items[2].Str; got != "b" {
		t.Errorf("expected shadowing record to win, got %q", got)
	}
}

func TestDecodeRecallUnrecorded(t *testing.T) {
	_, err := binmode.DecodeMessage(wireMessage([]byte{'R', '<', 9}))
	if !stderrors.Is(err, kindTarget(errors.KindUndefinedCodebookEntry)) {
		t.Errorf("expected undefined_codebook_entry, got %v", err)
	}
}

func TestDecodeInvalidUTF8String(t *testing.T) {
	bad := append([]byte{'U'}, u32le(2)...)
	bad = append(bad, 0xC0, 0x80)
	_, err := binmode.DecodeMessage(wireMessage([]byte{'R'}, bad))
	target := errors.New(errors.PhaseValidate, errors.KindInvalidUTF8).Build()
	if !stderrors.Is(err, target) {
		t.Errorf("expected invalid_utf8, got %v", err)
	}
}

func TestDecodeTrailingBytesWarnsNotFails(t *testing.T) {
	input := wireMessage([]byte{'R'}, wireInt(1), []byte{0xDE, 0xAD, 0xBE})
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.Trailing != 3 {
		t.Errorf("expected 3 trailing bytes, got %d", msg.Trailing)
	}
}

func TestDecodeRecordedStringIsReturned(t *testing.T) {
	// A recorded string is both stored and yielded in place.
	record := append([]byte{'>', 0}, u32le(4)...)
	record = append(record, "name"...)
	input := wireMessage([]byte{'C'}, record, []byte{'A'}, u32le(0))
	msg, err := binmode.DecodeMessage(input)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.Method != "name" {
		t.Errorf("expected method from recorded string, got %q", msg.Method)
	}
}

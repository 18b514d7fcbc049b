package binmode_test

import (
	"testing"

	"github.com/wippyai/binmode-transcoder/binmode"
)

func TestCodebookRecordRecall(t *testing.T) {
	cb := binmode.NewCodebook()
	cb.Record(7, "hello")
	s, ok := cb.Recall(7)
	if !ok {
		t.Fatal("expected index 7 to be recorded")
	}
	if s != "hello" {
		t.Errorf("expected %q, got %q", "hello", s)
	}
}

func TestCodebookRecallUnset(t *testing.T) {
	cb := binmode.NewCodebook()
	if _, ok := cb.Recall(0); ok {
		t.Error("expected index 0 to be unset")
	}
}

func TestCodebookEmptyStringIsRecorded(t *testing.T) {
	cb := binmode.NewCodebook()
	cb.Record(3, "")
	s, ok := cb.Recall(3)
	if !ok {
		t.Fatal("empty string record must still count as recorded")
	}
	if s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}

func TestCodebookLastWriteWins(t *testing.T) {
	cb := binmode.NewCodebook()
	cb.Record(9, "first")
	cb.Record(9, "second")
	s, _ := cb.Recall(9)
	if s != "second" {
		t.Errorf("expected shadowing record to win, got %q", s)
	}
	if cb.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", cb.Len())
	}
}

func TestKindString(t *testing.T) {
	kinds := map[binmode.Kind]string{
		binmode.KindInteger:  "integer",
		binmode.KindDouble:   "double",
		binmode.KindBoolean:  "boolean",
		binmode.KindString:   "string",
		binmode.KindDateTime: "dateTime",
		binmode.KindBase64:   "base64",
		binmode.KindArray:    "array",
		binmode.KindStruct:   "struct",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

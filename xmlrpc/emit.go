package xmlrpc

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/binmode-transcoder/binmode"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Emit renders msg as an XML-RPC document.
func Emit(msg *binmode.Message) string {
	e := &emitter{}
	e.message(msg)
	return e.b.String()
}

// EmitTo renders msg and writes the document to w.
func EmitTo(w io.Writer, msg *binmode.Message) error {
	_, err := io.WriteString(w, Emit(msg))
	return err
}

// emitter carries the output buffer and the current nesting depth.
// Depth lives here rather than in any shared state so fragments can be
// rendered independently.
type emitter struct {
	b     strings.Builder
	depth int
}

// line writes one indented line.
func (e *emitter) line(s string) {
	for i := 0; i < e.depth; i++ {
		e.b.WriteString("  ")
	}
	e.b.WriteString(s)
	e.b.WriteByte('\n')
}

func (e *emitter) open(tag string) {
	e.line("<" + tag + ">")
	e.depth++
}

func (e *emitter) close(tag string) {
	e.depth--
	e.line("</" + tag + ">")
}

func (e *emitter) message(msg *binmode.Message) {
	e.line(xmlDeclaration)
	switch msg.Type {
	case binmode.MessageCall:
		e.open("methodCall")
		e.line("<methodName>" + escape(msg.Method) + "</methodName>")
		e.params(msg.Params)
		e.close("methodCall")

	case binmode.MessageFault:
		e.open("methodResponse")
		e.open("fault")
		e.value(msg.Fault)
		e.close("fault")
		e.close("methodResponse")

	case binmode.MessageResult:
		e.open("methodResponse")
		e.params([]binmode.Value{msg.Result})
		e.close("methodResponse")

	default:
		panic(fmt.Sprintf("xmlrpc: unknown message type %d", msg.Type))
	}
}

func (e *emitter) params(params []binmode.Value) {
	e.open("params")
	for _, p := range params {
		e.open("param")
		e.value(p)
		e.close("param")
	}
	e.close("params")
}

// value renders one value element. Scalars fit on a single line;
// arrays and structs nest.
func (e *emitter) value(v binmode.Value) {
	switch v.Kind {
	case binmode.KindInteger:
		e.line("<value><int>" + strconv.FormatInt(int64(v.Int), 10) + "</int></value>")

	case binmode.KindDouble:
		e.line("<value><double>" + escape(v.Str) + "</double></value>")

	case binmode.KindBoolean:
		text := "0"
		if v.Bool {
			text = "1"
		}
		e.line("<value><boolean>" + text + "</boolean></value>")

	case binmode.KindString:
		e.line("<value><string>" + escape(v.Str) + "</string></value>")

	case binmode.KindDateTime:
		e.line("<value><dateTime.iso8601>" + escape(v.Str) + "</dateTime.iso8601></value>")

	case binmode.KindBase64:
		// Base64 text never contains markup characters.
		e.line("<value><base64>" + base64.StdEncoding.EncodeToString(v.Bytes) + "</base64></value>")

	case binmode.KindArray:
		e.open("value")
		e.open("array")
		e.open("data")
		for _, item := range v.Items {
			e.value(item)
		}
		e.close("data")
		e.close("array")
		e.close("value")

	case binmode.KindStruct:
		e.open("value")
		e.open("struct")
		for _, m := range v.Members {
			e.open("member")
			e.line("<name>" + escape(m.Name) + "</name>")
			e.value(m.Value)
			e.close("member")
		}
		e.close("struct")
		e.close("value")

	default:
		// The decoder rejects unknown tags; reaching here is a bug.
		panic(fmt.Sprintf("xmlrpc: unknown value kind %d", v.Kind))
	}
}

// escaper replaces markup characters in a single pass, so an '&'
// introduced by one replacement is never escaped again.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

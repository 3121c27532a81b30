package xmlrpc

import (
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0"?>`

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes the XML special characters & < > " and '.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EncodeCall builds an XML-RPC methodCall document.
func EncodeCall(method string, params Values) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<methodCall><methodName>")
	b.WriteString(EscapeText(method))
	b.WriteString("</methodName><params>")
	for _, p := range params {
		appendParam(&b, p)
	}
	b.WriteString("</params></methodCall>")
	return b.String()
}

// EncodeResponse builds an XML-RPC methodResponse document with a single
// result value.
func EncodeResponse(v *Value) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<methodResponse><params>")
	appendParam(&b, v)
	b.WriteString("</params></methodResponse>")
	return b.String()
}

// EncodeFault builds an XML-RPC fault response.
func EncodeFault(code int, message string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<methodResponse><fault><value>")
	AppendValue(&b, NewStruct(
		&Member{Name: "faultCode", Value: NewInt(code)},
		&Member{Name: "faultString", Value: NewString(message)},
	))
	b.WriteString("</value></fault></methodResponse>")
	return b.String()
}

func appendParam(b *strings.Builder, v *Value) {
	b.WriteString("<param><value>")
	AppendValue(b, v)
	b.WriteString("</value></param>")
}

// AppendValue writes the content of a <value> element (without the
// surrounding <value> tags). A nil *Value is written as <nil/>. A Double
// holding NaN or an infinity is written as NaN, +Inf or -Inf, which servers
// reject; NewValue does not create such values.
func AppendValue(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("<nil/>")
		return
	}
	switch v.Kind {
	case String:
		b.WriteString("<string>")
		b.WriteString(EscapeText(v.Str))
		b.WriteString("</string>")
	case Int:
		b.WriteString("<int>")
		b.WriteString(strconv.FormatInt(v.Int, 10))
		b.WriteString("</int>")
	case Double:
		b.WriteString("<double>")
		// shortest representation, which parses back to the same number
		b.WriteString(strconv.FormatFloat(v.Double, 'f', -1, 64))
		b.WriteString("</double>")
	case Bool:
		if v.Bool {
			b.WriteString("<boolean>1</boolean>")
		} else {
			b.WriteString("<boolean>0</boolean>")
		}
	case Array:
		b.WriteString("<array><data>")
		for _, e := range v.Array {
			b.WriteString("<value>")
			AppendValue(b, e)
			b.WriteString("</value>")
		}
		b.WriteString("</data></array>")
	case Struct:
		b.WriteString("<struct>")
		for _, m := range v.Members {
			b.WriteString("<member><name>")
			b.WriteString(EscapeText(m.Name))
			b.WriteString("</name><value>")
			AppendValue(b, m.Value)
			b.WriteString("</value></member>")
		}
		b.WriteString("</struct>")
	default:
		// Nil and unknown kinds
		b.WriteString("<nil/>")
	}
}

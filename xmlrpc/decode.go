package xmlrpc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	faultPattern      = regexp.MustCompile(`(?s)<fault>(.*)</fault>`)
	paramsPattern     = regexp.MustCompile(`(?s)<params>\s*<param>\s*<value>(.*)</value>\s*</param>\s*</params>`)
	paramPattern      = regexp.MustCompile(`(?s)<param>\s*<value>(.*)</value>\s*</param>`)
	emptyParamPattern = regexp.MustCompile(`<param>\s*<value\s*/>\s*</param>`)
)

// DecodeResponse parses an XML-RPC methodResponse document. A fault
// response is returned as *FaultError, even if the document contains
// additionally a params block. A document without a recognizable result
// value is reported as *ProtocolError.
func DecodeResponse(doc string) (*Value, error) {
	// faults take precedence over everything else
	if m := faultPattern.FindStringSubmatch(doc); m != nil {
		return nil, decodeFault(m[1])
	}

	// envelope
	var inner string
	if m := paramsPattern.FindStringSubmatch(doc); m != nil {
		inner = m[1]
	} else if m := paramPattern.FindStringSubmatch(doc); m != nil {
		inner = m[1]
	} else if emptyParamPattern.MatchString(doc) {
		return NewString(""), nil
	} else {
		return nil, protocolErrorf("no result value found in response")
	}
	return ParseValue(inner)
}

func decodeFault(inner string) *FaultError {
	text := strings.TrimSpace(inner)
	vxml, _, ok, err := nextValue(inner, 0)
	if err != nil || !ok {
		return &FaultError{Code: -1, Message: text}
	}
	v, err := ParseValue(vxml)
	if err != nil {
		return &FaultError{Code: -1, Message: text}
	}
	f := &FaultError{Code: -1, Message: text}
	if c := v.Get("faultCode"); c != nil && c.Kind == Int {
		f.Code = int(c.Int)
	}
	if s := v.Get("faultString"); s != nil && s.Kind == String {
		f.Message = s.Str
	}
	return f
}

// DecodeCall parses an XML-RPC methodCall document.
func DecodeCall(doc string) (string, Values, error) {
	ns := strings.Index(doc, "<methodName>")
	if ns < 0 {
		return "", nil, protocolErrorf("missing <methodName>")
	}
	ns += len("<methodName>")
	ne := strings.Index(doc[ns:], "</methodName>")
	if ne < 0 {
		return "", nil, protocolErrorf("unterminated <methodName>")
	}
	method := unescapeText(strings.TrimSpace(doc[ns : ns+ne]))
	rest := doc[ns+ne:]

	params := Values{}
	ps := strings.Index(rest, "<params>")
	if ps < 0 {
		// no parameters
		return method, params, nil
	}
	ps += len("<params>")
	pe := strings.LastIndex(rest, "</params>")
	if pe < ps {
		return "", nil, protocolErrorf("unterminated <params>")
	}
	body := rest[ps:pe]
	pos := 0
	for {
		inner, next, ok, err := nextValue(body, pos)
		if err != nil {
			return "", nil, err
		}
		if !ok {
			break
		}
		v, err := ParseValue(inner)
		if err != nil {
			return "", nil, err
		}
		params = append(params, v)
		pos = next
	}
	return method, params, nil
}

// ParseValue parses the content of an XML-RPC <value> element. Invalid
// content of int, double and boolean elements yields 0 or false. Unknown
// elements are returned as string with the trimmed raw XML. An error is only
// returned for a corrupted nesting of structs and arrays.
func ParseValue(content string) (*Value, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return NewString(""), nil
	}
	// no type element: string
	if s[0] != '<' {
		return NewString(unescapeText(s)), nil
	}
	name, openEnd, empty := openTag(s)
	switch name {
	case "string":
		return NewString(unescapeText(leafText(s, name, openEnd, empty))), nil
	case "int", "i4", "i8":
		i, err := strconv.ParseInt(strings.TrimSpace(leafText(s, name, openEnd, empty)), 10, 64)
		if err != nil {
			i = 0
		}
		return NewInt64(i), nil
	case "double":
		f, err := strconv.ParseFloat(strings.TrimSpace(leafText(s, name, openEnd, empty)), 64)
		if err != nil {
			f = 0
		}
		return NewDouble(f), nil
	case "boolean":
		switch strings.TrimSpace(leafText(s, name, openEnd, empty)) {
		case "1", "true":
			return NewBool(true), nil
		default:
			return NewBool(false), nil
		}
	case "nil":
		return NewNil(), nil
	case "dateTime.iso8601", "base64":
		return NewString(strings.TrimSpace(leafText(s, name, openEnd, empty))), nil
	case "struct":
		return parseStruct(s, openEnd, empty)
	case "array":
		return parseArray(s, openEnd, empty)
	}
	return NewString(s), nil
}

var xmlEntities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"quot": '"',
	"apos": '\'',
}

// longest entity or character reference including & and ;
const maxEntityLen = 16

// unescapeText replaces the predefined XML entities and decimal or
// hexadecimal character references. Everything else is kept literally.
func unescapeText(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for amp >= 0 {
		b.WriteString(s[:amp])
		s = s[amp:]
		if r, n, ok := entity(s); ok {
			b.WriteRune(r)
			s = s[n:]
		} else {
			b.WriteByte('&')
			s = s[1:]
		}
		amp = strings.IndexByte(s, '&')
	}
	b.WriteString(s)
	return b.String()
}

// entity decodes the reference at the start of s, which starts with &. It
// returns the character and the length of the reference.
func entity(s string) (rune, int, bool) {
	w := s
	if len(w) > maxEntityLen {
		w = w[:maxEntityLen]
	}
	semi := strings.IndexByte(w, ';')
	if semi < 2 {
		return 0, 0, false
	}
	name := s[1:semi]
	if r, ok := xmlEntities[name]; ok {
		return r, semi + 1, true
	}
	if name[0] != '#' {
		return 0, 0, false
	}
	num, base := name[1:], 10
	if strings.HasPrefix(num, "x") {
		num, base = num[1:], 16
	}
	if num == "" {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil || n == 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return 0, 0, false
	}
	return rune(n), semi + 1, true
}

// openTag reads the element at the start of s. It returns the element name,
// the offset after the opening tag and whether the element is self-closing.
func openTag(s string) (string, int, bool) {
	i := 1
	for i < len(s) && !isTagDelim(s[i]) {
		i++
	}
	name := s[1:i]
	gt := strings.IndexByte(s[i:], '>')
	if gt < 0 {
		return name, len(s), false
	}
	gt += i
	return name, gt + 1, s[gt-1] == '/'
}

func isTagDelim(c byte) bool {
	return c == '>' || c == '/' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// leafText returns the text between the opening and the closing tag of a
// primitive element. A missing closing tag is tolerated.
func leafText(s, name string, openEnd int, empty bool) string {
	if empty {
		return ""
	}
	end := strings.Index(s[openEnd:], "</"+name)
	if end < 0 {
		return s[openEnd:]
	}
	return s[openEnd : openEnd+end]
}

func parseStruct(s string, openEnd int, empty bool) (*Value, error) {
	if empty {
		return NewStruct(), nil
	}
	bodyEnd := strings.LastIndex(s, "</struct>")
	if bodyEnd < openEnd {
		return nil, protocolErrorf("unterminated <struct>")
	}
	body := s[openEnd:bodyEnd]

	members := []*Member{}
	pos := 0
	for {
		mi := strings.Index(body[pos:], "<member>")
		if mi < 0 {
			break
		}
		ms := pos + mi + len("<member>")

		// the name must precede the value
		ni := strings.Index(body[ms:], "<name>")
		vi := strings.Index(body[ms:], "<value")
		if ni < 0 || (vi >= 0 && vi < ni) {
			return nil, protocolErrorf("struct member without <name>")
		}
		ns := ms + ni + len("<name>")
		ne := strings.Index(body[ns:], "</name>")
		if ne < 0 {
			return nil, protocolErrorf("unterminated <name>")
		}
		name := unescapeText(body[ns : ns+ne])

		inner, next, ok, err := nextValue(body, ns+ne+len("</name>"))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, protocolErrorf("struct member %s without <value>", name)
		}
		v, err := ParseValue(inner)
		if err != nil {
			return nil, err
		}
		members = append(members, &Member{Name: name, Value: v})

		if me := strings.Index(body[next:], "</member>"); me >= 0 {
			pos = next + me + len("</member>")
		} else {
			pos = next
		}
	}
	return NewStruct(members...), nil
}

func parseArray(s string, openEnd int, empty bool) (*Value, error) {
	if empty {
		return NewArray(), nil
	}
	body := s[openEnd:]
	di := strings.Index(body, "<data")
	if di < 0 {
		// <array></array>
		return NewArray(), nil
	}
	_, dataEnd, dataEmpty := openTag(body[di:])
	if dataEmpty {
		return NewArray(), nil
	}
	ds := di + dataEnd
	// nested arrays contain </data> too, the outer one is the last
	de := strings.LastIndex(body, "</data>")
	if de < ds {
		return nil, protocolErrorf("unterminated <data>")
	}
	payload := body[ds:de]

	elems := []*Value{}
	pos := 0
	for {
		inner, next, ok, err := nextValue(payload, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := ParseValue(inner)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		pos = next
	}
	return NewArray(elems...), nil
}

const (
	valueOpen = iota
	valueClose
	valueEmpty
)

type valueTag struct {
	kind       int
	start, end int
}

// nextValueTag finds the next <value>, </value> or <value/> tag in s at
// or after offset from.
func nextValueTag(s string, from int) (valueTag, bool) {
	i := from
	for i < len(s) {
		j := strings.IndexByte(s[i:], '<')
		if j < 0 {
			break
		}
		j += i
		rest := s[j:]
		switch {
		case strings.HasPrefix(rest, "</value") && len(rest) > 7 && (rest[7] == '>' || isSpace(rest[7])):
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				return valueTag{}, false
			}
			return valueTag{kind: valueClose, start: j, end: j + gt + 1}, true
		case strings.HasPrefix(rest, "<value") && len(rest) > 6 && isTagDelim(rest[6]):
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				return valueTag{}, false
			}
			kind := valueOpen
			if rest[gt-1] == '/' {
				kind = valueEmpty
			}
			return valueTag{kind: kind, start: j, end: j + gt + 1}, true
		}
		i = j + 1
	}
	return valueTag{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// nextValue locates the next complete <value> element in s, starting at pos.
// Nested <value> elements are skipped by tracking the depth, so that the
// returned content spans exactly one element. found is false, if there are
// no more elements.
func nextValue(s string, pos int) (content string, end int, found bool, err error) {
	t, ok := nextValueTag(s, pos)
	// ignore stray closing tags
	for ok && t.kind == valueClose {
		t, ok = nextValueTag(s, t.end)
	}
	if !ok {
		return "", pos, false, nil
	}
	if t.kind == valueEmpty {
		return "", t.end, true, nil
	}
	start := t.end
	depth := 1
	cur := t.end
	for {
		t, ok = nextValueTag(s, cur)
		if !ok {
			return "", pos, false, protocolErrorf("unterminated <value> at offset %d", start)
		}
		switch t.kind {
		case valueOpen:
			depth++
		case valueClose:
			depth--
		}
		cur = t.end
		if depth == 0 {
			return s[start:t.start], t.end, true, nil
		}
	}
}

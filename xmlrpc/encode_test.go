package xmlrpc

import (
	"strings"
	"testing"
)

type xmlTestCase struct {
	in   *Value
	want string
}

func xmlRunEncodeTests(t *testing.T, cases []xmlTestCase) {
	for i, c := range cases {
		var b strings.Builder
		AppendValue(&b, c.in)
		if got := b.String(); got != c.want {
			t.Errorf("unexpected xml in test case %d: want: %s got: %s", i+1, c.want, got)
		}
	}
}

func TestAppendValue(t *testing.T) {
	cases := []xmlTestCase{
		{
			// test case 1
			NewInt(123),
			"<int>123</int>",
		},
		{
			// test case 2
			NewInt64(-9007199254740993),
			"<int>-9007199254740993</int>",
		},
		{
			// test case 3
			NewBool(true),
			"<boolean>1</boolean>",
		},
		{
			// test case 4
			NewBool(false),
			"<boolean>0</boolean>",
		},
		{
			// test case 5
			NewString("abc"),
			"<string>abc</string>",
		},
		{
			// test case 6
			NewString(`a&b<c>"d'e`),
			"<string>a&amp;b&lt;c&gt;&quot;d&apos;e</string>",
		},
		{
			// test case 7
			NewDouble(123.456),
			"<double>123.456</double>",
		},
		{
			// test case 8
			NewDouble(-0.1),
			"<double>-0.1</double>",
		},
		{
			// test case 9
			NewNil(),
			"<nil/>",
		},
		{
			// test case 10
			nil,
			"<nil/>",
		},
		{
			// test case 11
			NewStruct(),
			"<struct></struct>",
		},
		{
			// test case 12
			NewStruct(
				&Member{"Field1", NewInt(123)},
				&Member{"a<b", NewString("abc")},
			),
			"<struct><member><name>Field1</name><value><int>123</int></value></member><member><name>a&lt;b</name><value><string>abc</string></value></member></struct>",
		},
		{
			// test case 13
			NewArray(),
			"<array><data></data></array>",
		},
		{
			// test case 14
			NewArray(NewString("abc"), NewInt(4)),
			"<array><data><value><string>abc</string></value><value><int>4</int></value></data></array>",
		},
		{
			// test case 15
			NewArray(
				NewInt(4),
				NewStruct(&Member{"Field", NewArray(NewNil())}),
			),
			"<array><data><value><int>4</int></value><value><struct><member><name>Field</name><value><array><data><value><nil/></value></data></array></value></member></struct></value></data></array>",
		},
	}
	xmlRunEncodeTests(t, cases)
}

func TestEncodeCall(t *testing.T) {
	cases := []struct {
		method string
		params Values
		want   string
	}{
		{
			"noParameters",
			Values{},
			`<?xml version="1.0"?><methodCall><methodName>noParameters</methodName><params></params></methodCall>`,
		},
		{
			"setAnswer",
			Values{NewInt(42)},
			`<?xml version="1.0"?><methodCall><methodName>setAnswer</methodName><params><param><value><int>42</int></value></param></params></methodCall>`,
		},
		{
			"twoParameters",
			Values{NewBool(true), NewString("abc")},
			`<?xml version="1.0"?><methodCall><methodName>twoParameters</methodName><params><param><value><boolean>1</boolean></value></param><param><value><string>abc</string></value></param></params></methodCall>`,
		},
	}
	for i, c := range cases {
		if got := EncodeCall(c.method, c.params); got != c.want {
			t.Errorf("unexpected xml in test case %d: want: %s got: %s", i+1, c.want, got)
		}
	}
}

func TestEncodeNativeNumbers(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{70, "<int>70</int>"},
		{70.0, "<int>70</int>"},
		{70.5, "<double>70.5</double>"},
		{float32(2), "<int>2</int>"},
		{-3.0, "<int>-3</int>"},
		{0.000001, "<double>0.000001</double>"},
		{1e21, "<double>1000000000000000000000</double>"},
	}
	for _, c := range cases {
		v, err := NewValue(c.in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `<?xml version="1.0"?><methodCall><methodName>m</methodName><params><param><value>` +
			c.want + `</value></param></params></methodCall>`
		if got := EncodeCall("m", Values{v}); got != want {
			t.Errorf("unexpected xml for %v: want: %s got: %s", c.in, want, got)
		}
	}
}

func TestEncodeFault(t *testing.T) {
	want := `<?xml version="1.0"?><methodResponse><fault><value><struct><member><name>faultCode</name><value><int>4</int></value></member><member><name>faultString</name><value><string>Too many parameters.</string></value></member></struct></value></fault></methodResponse>`
	if got := EncodeFault(4, "Too many parameters."); got != want {
		t.Errorf("unexpected xml: want: %s got: %s", want, got)
	}
}

package xmlrpc

import (
	"reflect"
	"testing"
)

func TestQuery_Int(t *testing.T) {
	cases := []struct {
		in        *Value
		wanted    int
		errWanted bool
	}{
		{NewString(""), 0, true},
		{NewDouble(1), 0, true},
		{NewInt(123), 123, false},
		{NewInt64(-456), -456, false},
	}
	for _, c := range cases {
		e := Q(c.in)
		i := e.Int()
		err := e.Err()
		if i != c.wanted || (err != nil) != c.errWanted {
			t.Errorf("unexpected result for %v: %d, %v", c.in, i, err)
		}
	}
}

func TestQuery_Bool(t *testing.T) {
	cases := []struct {
		in        *Value
		wanted    bool
		errWanted bool
	}{
		{NewString(""), false, true},
		{NewInt(1), false, true},
		{NewBool(false), false, false},
		{NewBool(true), true, false},
	}
	for _, c := range cases {
		u := Q(c.in)
		b := u.Bool()
		err := u.Err()
		if b != c.wanted || (err != nil) != c.errWanted {
			t.Errorf("unexpected result for %v: %t, %v", c.in, b, err)
		}
	}
}

func TestQuery_String(t *testing.T) {
	cases := []struct {
		in        *Value
		wanted    string
		errWanted bool
	}{
		{NewString("abc"), "abc", false},
		{NewString(" def"), " def", false},
		// empty char fields are sent as false
		{NewBool(false), "", false},
		{NewBool(true), "", true},
		{NewInt(1), "", true},
	}
	for _, c := range cases {
		u := Q(c.in)
		s := u.String()
		err := u.Err()
		if s != c.wanted || (err != nil) != c.errWanted {
			t.Errorf("unexpected result for %v: %q, %v", c.in, s, err)
		}
	}
}

func TestQuery_Double(t *testing.T) {
	cases := []struct {
		in        *Value
		wanted    float64
		errWanted bool
	}{
		{NewString("a"), 0.0, true},
		{NewDouble(0), 0.0, false},
		{NewDouble(-1e3), -1000.0, false},
		{NewInt(2), 2.0, false},
	}
	for _, c := range cases {
		u := Q(c.in)
		d := u.Float64()
		err := u.Err()
		if d != c.wanted || (err != nil) != c.errWanted {
			t.Errorf("unexpected result for %v: %g, %v", c.in, d, err)
		}
	}
}

func TestQuery_Key(t *testing.T) {
	e := Q(NewStruct())
	e.Key("unknown")
	if e.Err() == nil {
		t.Fail()
	}

	e = Q(NewStruct(
		&Member{"name1", NewInt(123)},
		&Member{"name2", NewString("abc")},
	))

	e.Key("unknown")
	if e.Err() == nil {
		t.Fail()
	}
	*e.err = nil

	f := e.Key("name1")
	if e.Err() != nil {
		t.Fail()
	}
	i := f.Int()
	if f.Err() != nil || i != 123 {
		t.Fail()
	}

	s := e.Key("name2").String()
	if e.Err() != nil || s != "abc" {
		t.Fail()
	}

	s = e.Key("name2").Key("unknown").Key("unknown2").String()
	if e.Err() == nil || s != "" {
		t.Fail()
	}
}

func TestQuery_TryKey(t *testing.T) {
	e := Q(NewStruct(
		&Member{"name1", NewInt(123)},
		&Member{"name2", NewString("abc")},
	))
	i := e.TryKey("name1").Int()
	if i != 123 || e.Err() != nil {
		t.Fail()
	}
	i = e.TryKey("unknown").Int()
	if i != 0 || e.Err() != nil {
		t.Fail()
	}
	i = e.TryKey("name1").TryKey("unkown").Int()
	if i != 0 || e.Err() == nil {
		t.Fail()
	}
}

func TestQuery_Array(t *testing.T) {
	e := Q(NewArray(NewString("abc"), NewInt(4)))
	if len(e.Slice()) != 2 {
		t.Fail()
	}
	s := e.Slice()[0].String()
	i := e.Slice()[1].Int()
	if s != "abc" || i != 4 || e.Err() != nil {
		t.Fail()
	}
	e.Slice()[0].Int()
	if e.Err() == nil {
		t.Fail()
	}
	*e.err = nil

	e.Idx(2)
	if e.Err() == nil {
		t.Error("index out of bounds expected")
	}

	e = Q(NewDouble(123.456))
	e.Slice()
	if e.Err() == nil {
		t.Fail()
	}
}

func TestQuery_Strings(t *testing.T) {
	e := Q(NewArray(NewString("abc"), NewString("def")))
	s := e.Strings()
	if e.Err() != nil {
		t.Error(e.Err())
	}
	if !reflect.DeepEqual(s, []string{"abc", "def"}) {
		t.Error("invalid result: ", s)
	}
}

func TestQuery_Ints(t *testing.T) {
	e := Q(NewArray(NewInt(3), NewInt(1)))
	ids := e.Ints()
	if e.Err() != nil {
		t.Error(e.Err())
	}
	if !reflect.DeepEqual(ids, []int64{3, 1}) {
		t.Error("invalid result: ", ids)
	}
}

func TestQuery_Any(t *testing.T) {
	cases := []struct {
		v    *Value
		want interface{}
	}{
		{NewInt(123), int64(123)},
		{NewBool(true), true},
		{NewDouble(123.456), 123.456},
		{NewString("abc"), "abc"},
		{NewArray(NewInt(1)), []interface{}{int64(1)}},
		{nil, nil},
	}
	for _, c := range cases {
		e := Q(c.v)
		v := e.Any()
		if e.Err() != nil {
			t.Errorf("unexpected error: %v", e.Err())
		}
		if !reflect.DeepEqual(v, c.want) {
			t.Errorf("unexpected value: %v, expected: %v", v, c.want)
		}
	}
}

func TestQuery_IsNil(t *testing.T) {
	if !Q(NewNil()).IsNil() || !Q(nil).IsNil() {
		t.Error("nil expected")
	}
	if Q(NewBool(false)).IsNil() {
		t.Error("false is not nil")
	}
}

func TestQuery_Member(t *testing.T) {
	rec := NewStruct(
		&Member{Name: "name", Value: NewString("Chair")},
		&Member{Name: "name", Value: NewString("Office Chair")},
	)
	e := Q(rec)
	if n := e.TryKey("description").String(); n != "" || e.Err() != nil {
		t.Errorf("unexpected result: %q, %v", n, e.Err())
	}
	if n := e.Key("name").String(); n != "Office Chair" || e.Err() != nil {
		t.Errorf("unexpected result: %q, %v", n, e.Err())
	}
	e.Key("description")
	if e.Err() == nil || e.Err().Error() != "Member not found: description" {
		t.Errorf("unexpected error: %v", e.Err())
	}
	// further lookups keep the first error
	if e.Key("name").String() != "" {
		t.Error("empty result expected")
	}
	if e.Err().Error() != "Member not found: description" {
		t.Errorf("unexpected error: %v", e.Err())
	}

	e = Q(NewArray(NewInt(1)))
	e.Idx(-1)
	if e.Err() == nil || e.Err().Error() != "Index -1 out of range (array length: 1)" {
		t.Errorf("unexpected error: %v", e.Err())
	}
}

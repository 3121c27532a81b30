package xmlrpc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the XML-RPC data type held by a Value.
type Kind int

// XML-RPC data types.
const (
	String Kind = iota
	Int
	Double
	Bool
	Nil
	Array
	Struct
)

var kindNames = [...]string{"string", "int", "double", "boolean", "nil", "array", "struct"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value represents an XML-RPC value. Only the field matching Kind is
// meaningful. Values are not modified after construction.
type Value struct {
	Kind    Kind
	Str     string
	Int     int64
	Double  float64
	Bool    bool
	Array   []*Value
	Members []*Member
}

// Member represents an XML-RPC struct member.
type Member struct {
	Name  string
	Value *Value
}

// Values holds the positional parameters of a method call.
type Values []*Value

// NewString creates a string value.
func NewString(s string) *Value {
	return &Value{Kind: String, Str: s}
}

// NewInt creates an int value.
func NewInt(i int) *Value {
	return &Value{Kind: Int, Int: int64(i)}
}

// NewInt64 creates an int value.
func NewInt64(i int64) *Value {
	return &Value{Kind: Int, Int: i}
}

// NewDouble creates a double value.
func NewDouble(f float64) *Value {
	return &Value{Kind: Double, Double: f}
}

// NewBool creates a boolean value.
func NewBool(b bool) *Value {
	return &Value{Kind: Bool, Bool: b}
}

// NewNil creates a nil value.
func NewNil() *Value {
	return &Value{Kind: Nil}
}

// NewArray creates an array value with the specified elements.
func NewArray(elems ...*Value) *Value {
	return &Value{Kind: Array, Array: elems}
}

// NewStruct creates a struct value. The order of the members is kept.
func NewStruct(members ...*Member) *Value {
	return &Value{Kind: Struct, Members: members}
}

// NewStrings creates an array of strings.
func NewStrings(strs []string) *Value {
	es := make([]*Value, len(strs))
	for i, s := range strs {
		es[i] = NewString(s)
	}
	return NewArray(es...)
}

// NewInts creates an array of ints.
func NewInts(is []int64) *Value {
	es := make([]*Value, len(is))
	for i, n := range is {
		es[i] = NewInt64(n)
	}
	return NewArray(es...)
}

// NewValue creates a value from a native data type. Supported types: nil,
// bool, all integer types, float32, float64, string, []string, []int,
// []int64, []interface{}, map[string]interface{}, *Value, Values and
// []*Member. Floating point numbers without a fractional part are converted
// to int, like numbers of JavaScript. NaN and infinities are rejected. Members
// of a map are sorted by name.
func NewValue(in interface{}) (*Value, error) {
	switch val := in.(type) {
	case nil:
		return NewNil(), nil
	case *Value:
		if val == nil {
			return NewNil(), nil
		}
		return val, nil
	case Values:
		return NewArray(val...), nil
	case []*Value:
		return NewArray(val...), nil
	case []*Member:
		return NewStruct(val...), nil
	case bool:
		return NewBool(val), nil
	case int:
		return NewInt(val), nil
	case int8:
		return NewInt64(int64(val)), nil
	case int16:
		return NewInt64(int64(val)), nil
	case int32:
		return NewInt64(int64(val)), nil
	case int64:
		return NewInt64(val), nil
	case uint:
		return newUint(uint64(val))
	case uint8:
		return NewInt64(int64(val)), nil
	case uint16:
		return NewInt64(int64(val)), nil
	case uint32:
		return NewInt64(int64(val)), nil
	case uint64:
		return newUint(val)
	case float32:
		return newNumber(float64(val))
	case float64:
		return newNumber(val)
	case string:
		return NewString(val), nil
	case []string:
		return NewStrings(val), nil
	case []int:
		es := make([]*Value, len(val))
		for i, n := range val {
			es[i] = NewInt(n)
		}
		return NewArray(es...), nil
	case []int64:
		return NewInts(val), nil
	case []interface{}:
		es := make([]*Value, len(val))
		for i, e := range val {
			cv, err := NewValue(e)
			if err != nil {
				return nil, err
			}
			es[i] = cv
		}
		return NewArray(es...), nil
	case map[string]interface{}:
		names := make([]string, 0, len(val))
		for n := range val {
			names = append(names, n)
		}
		sort.Strings(names)
		ms := make([]*Member, len(names))
		for i, n := range names {
			cv, err := NewValue(val[n])
			if err != nil {
				return nil, err
			}
			ms[i] = &Member{Name: n, Value: cv}
		}
		return NewStruct(ms...), nil
	default:
		return nil, fmt.Errorf("Conversion of type %[1]T with value %[1]v is not supported", in)
	}
}

func newUint(u uint64) (*Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("Integer out of range: %d", u)
	}
	return NewInt64(int64(u)), nil
}

// newNumber classifies a number: integral values within the int64 range
// become ints, all others doubles. NaN and infinities have no XML-RPC
// representation.
func newNumber(f float64) (*Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Number not representable in XML-RPC: %v", f)
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return NewInt64(int64(f)), nil
	}
	return NewDouble(f), nil
}

// Get returns the value of the struct member with the specified name. If
// the name occurs multiple times, the last member wins. nil is returned for
// a missing member or if v is not a struct.
func (v *Value) Get(name string) *Value {
	if v == nil || v.Kind != Struct {
		return nil
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Name == name {
			return v.Members[i].Value
		}
	}
	return nil
}

// Equal reports whether v and o hold the same data. Empty and nil arrays
// (or member lists) are equal. A nil *Value equals a Nil value.
func (v *Value) Equal(o *Value) bool {
	if v == nil {
		v = &Value{Kind: Nil}
	}
	if o == nil {
		o = &Value{Kind: Nil}
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case String:
		return v.Str == o.Str
	case Int:
		return v.Int == o.Int
	case Double:
		return v.Double == o.Double || (math.IsNaN(v.Double) && math.IsNaN(o.Double))
	case Bool:
		return v.Bool == o.Bool
	case Nil:
		return true
	case Array:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case Struct:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for i := range v.Members {
			if v.Members[i].Name != o.Members[i].Name || !v.Members[i].Value.Equal(o.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Native converts the value into string, int64, float64, bool, nil,
// []interface{} or map[string]interface{}. Duplicate struct members are
// resolved last-wins.
func (v *Value) Native() interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case String:
		return v.Str
	case Int:
		return v.Int
	case Double:
		return v.Double
	case Bool:
		return v.Bool
	case Array:
		es := make([]interface{}, len(v.Array))
		for i, e := range v.Array {
			es[i] = e.Native()
		}
		return es
	case Struct:
		m := make(map[string]interface{}, len(v.Members))
		for _, mb := range v.Members {
			m[mb.Name] = mb.Value.Native()
		}
		return m
	}
	return nil
}

// String returns a compact, human readable representation for logging.
func (v *Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v *Value) format(sb *strings.Builder) {
	if v == nil {
		sb.WriteString("nil")
		return
	}
	switch v.Kind {
	case String:
		sb.WriteString(strconv.Quote(v.Str))
	case Int:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case Double:
		sb.WriteString(strconv.FormatFloat(v.Double, 'g', -1, 64))
	case Bool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case Nil:
		sb.WriteString("nil")
	case Array:
		sb.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.format(sb)
		}
		sb.WriteByte(']')
	case Struct:
		sb.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.Name)
			sb.WriteString(": ")
			m.Value.format(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(v.Kind.String())
	}
}

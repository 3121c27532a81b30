package xmlrpc

import (
	"errors"
	"fmt"
)

// Query helps to extract values from the XML-RPC model.
type Query struct {
	value *Value
	err   *error
	// faster lookup for structs
	lookup map[string]*Query
	// cache arrays
	array []*Query
}

// Q creates a new Query for the specified Value.
func Q(v *Value) *Query {
	var err error
	return &Query{value: v, err: &err}
}

// Err returns the first encountered error.
func (q *Query) Err() error {
	return *q.err
}

func (q *Query) fail(err error) {
	if *q.err == nil {
		*q.err = err
	}
}

// Int64 gets an XML-RPC int value.
func (q *Query) Int64() int64 {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return 0
	}
	if q.value.Kind != Int {
		q.fail(fmt.Errorf("Not an int: %s", q.value.Kind))
		return 0
	}
	return q.value.Int
}

// Int gets an XML-RPC int value.
func (q *Query) Int() int {
	return int(q.Int64())
}

// Bool gets an XML-RPC boolean value.
func (q *Query) Bool() bool {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return false
	}
	if q.value.Kind != Bool {
		q.fail(fmt.Errorf("Not a bool: %s", q.value.Kind))
		return false
	}
	return q.value.Bool
}

// IsFalse returns true, if the value is the boolean false. The remote record
// store returns false instead of an empty string or a missing reference.
func (q *Query) IsFalse() bool {
	return q.Err() == nil && q.value != nil && q.value.Kind == Bool && !q.value.Bool
}

// String gets an XML-RPC string value. A boolean false is read as empty
// string.
func (q *Query) String() string {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return ""
	}
	if q.IsFalse() {
		return ""
	}
	if q.value.Kind != String {
		q.fail(fmt.Errorf("Not a string: %s", q.value.Kind))
		return ""
	}
	return q.value.Str
}

// Float64 gets an XML-RPC double value. An int is converted.
func (q *Query) Float64() float64 {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return 0
	}
	switch q.value.Kind {
	case Double:
		return q.value.Double
	case Int:
		return float64(q.value.Int)
	}
	q.fail(fmt.Errorf("Not a double: %s", q.value.Kind))
	return 0
}

// IsNil returns true, if there is no previous error and the value is an XML-RPC
// nil or an empty optional.
func (q *Query) IsNil() bool {
	if q.Err() != nil {
		return false
	}
	return q.value == nil || q.value.Kind == Nil
}

// Any returns data type int64, bool, float64, string, []interface{},
// map[string]interface{} or nil for an empty optional.
func (q *Query) Any() interface{} {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		return nil
	}
	return q.value.Native()
}

// Map returns all members of an XML-RPC struct. For duplicate member names the
// last member wins.
func (q *Query) Map() map[string]*Query {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		// return empty map
		return nil
	}
	// is map already created?
	if q.lookup != nil {
		return q.lookup
	}
	// create map
	if q.value.Kind != Struct {
		q.fail(errors.New("Not a struct"))
		return nil
	}
	q.lookup = make(map[string]*Query)
	for _, m := range q.value.Members {
		q.lookup[m.Name] = &Query{value: m.Value, err: q.err}
	}
	return q.lookup
}

// failed returns an empty query sharing the error of q.
func (q *Query) failed() *Query {
	return &Query{err: q.err}
}

// member looks up a struct member by name. If required, a missing member sets
// an error.
func (q *Query) member(name string, required bool) *Query {
	members := q.Map()
	if m, ok := members[name]; ok {
		return m
	}
	if required && q.Err() == nil {
		q.fail(fmt.Errorf("Member not found: %s", name))
	}
	return q.failed()
}

// Key returns the struct member with the specified name. A missing member sets
// an error.
func (q *Query) Key(name string) *Query {
	return q.member(name, true)
}

// TryKey returns the struct member with the specified name. A missing member
// yields an empty optional.
func (q *Query) TryKey(name string) *Query {
	return q.member(name, false)
}

// Slice returns all array elements.
func (q *Query) Slice() []*Query {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		// return empty slice
		return nil
	}
	// array already created?
	if q.array != nil {
		return q.array
	}
	// create array
	if q.value.Kind != Array {
		q.fail(errors.New("Not an array"))
		return nil
	}
	q.array = make([]*Query, len(q.value.Array))
	for i, v := range q.value.Array {
		q.array[i] = &Query{value: v, err: q.err}
	}
	return q.array
}

// Strings returns a string array.
func (q *Query) Strings() []string {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		// return empty slice
		return nil
	}
	var r []string
	for _, e := range q.Slice() {
		r = append(r, e.String())
	}
	if q.Err() != nil {
		return nil
	}
	return r
}

// Ints returns an int array, e.g. the IDs of a search.
func (q *Query) Ints() []int64 {
	// previous error or empty optional?
	if q.Err() != nil || q.value == nil {
		// return empty slice
		return nil
	}
	var r []int64
	for _, e := range q.Slice() {
		r = append(r, e.Int64())
	}
	if q.Err() != nil {
		return nil
	}
	return r
}

// Idx returns the array element at index i. An index out of range sets an
// error.
func (q *Query) Idx(i int) *Query {
	elems := q.Slice()
	if q.Err() == nil && (i < 0 || i >= len(elems)) {
		q.fail(fmt.Errorf("Index %d out of range (array length: %d)", i, len(elems)))
	}
	if q.Err() != nil {
		return q.failed()
	}
	return elems[i]
}

// Value returns the wrapped Value.
func (q *Query) Value() *Value {
	return q.value
}

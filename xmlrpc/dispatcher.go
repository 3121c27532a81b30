package xmlrpc

import (
	"fmt"
	"sort"
	"sync"
)

// A Method is dispatched from a Handler. It receives the positional
// parameters of the call.
type Method interface {
	Call(params Values) (*Value, error)
}

// MethodFunc is an adapter to use ordinary functions as Method's.
type MethodFunc func(params Values) (*Value, error)

// Call implements interface Method.
func (m MethodFunc) Call(params Values) (*Value, error) {
	return m(params)
}

// Dispatcher routes received calls by method name. The zero value is ready
// to use. A Dispatcher can also route the inner method of a generic call,
// e.g. the method parameter of execute_kw.
type Dispatcher struct {
	mutex    sync.RWMutex
	methods  map[string]Method
	fallback func(string, Values) (*Value, error)
}

// Handle registers m for calls of name. Like http.ServeMux, it panics on an
// empty name, a nil Method or a name which is already registered.
func (d *Dispatcher) Handle(name string, m Method) {
	if name == "" {
		panic("xmlrpc: empty method name")
	}
	if m == nil {
		panic("xmlrpc: nil method " + name)
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exists := d.methods[name]; exists {
		panic("xmlrpc: multiple registrations for method " + name)
	}
	if d.methods == nil {
		d.methods = make(map[string]Method)
	}
	d.methods[name] = m
}

// HandleFunc registers f for calls of name.
func (d *Dispatcher) HandleFunc(name string, f func(Values) (*Value, error)) {
	if f == nil {
		panic("xmlrpc: nil method " + name)
	}
	d.Handle(name, MethodFunc(f))
}

// HandleUnknownFunc sets f as fallback for names without a registered
// Method. Without a fallback, an unknown name is reported as error.
func (d *Dispatcher) HandleUnknownFunc(f func(string, Values) (*Value, error)) {
	d.mutex.Lock()
	d.fallback = f
	d.mutex.Unlock()
}

// Has returns true, if a Method is registered for name.
func (d *Dispatcher) Has(name string) bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	_, ok := d.methods[name]
	return ok
}

// Methods returns the sorted names of the registered methods.
func (d *Dispatcher) Methods() []string {
	d.mutex.RLock()
	names := make([]string, 0, len(d.methods))
	for name := range d.methods {
		names = append(names, name)
	}
	d.mutex.RUnlock()
	sort.Strings(names)
	return names
}

// AddSystemMethods registers system.listMethods, which returns the names of
// all registered methods.
func (d *Dispatcher) AddSystemMethods() {
	d.HandleFunc("system.listMethods", func(Values) (*Value, error) {
		return NewStrings(d.Methods()), nil
	})
}

// Dispatch calls the Method registered for name, or the fallback.
func (d *Dispatcher) Dispatch(name string, params Values) (*Value, error) {
	d.mutex.RLock()
	m, ok := d.methods[name]
	fallback := d.fallback
	d.mutex.RUnlock()

	switch {
	case ok:
		return m.Call(params)
	case fallback != nil:
		return fallback(name, params)
	}
	return nil, fmt.Errorf("Unknown method: %s", name)
}

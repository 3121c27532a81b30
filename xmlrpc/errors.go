package xmlrpc

import "fmt"

// FaultError encapsulates an XML-RPC fault response. Message is the
// faultString reported by the server, unchanged.
type FaultError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (f *FaultError) Error() string {
	return fmt.Sprintf("XML-RPC fault (code: %d, message: %s)", f.Code, f.Message)
}

// ProtocolError is returned for an XML-RPC document, which does not match
// the expected structure.
type ProtocolError struct {
	Msg string
}

// Error implements the error interface.
func (p *ProtocolError) Error() string {
	return "Invalid XML-RPC document: " + p.Msg
}

// TransportError is returned when the HTTP server answers with a non 2xx
// status code. The response body is not inspected.
type TransportError struct {
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (t *TransportError) Error() string {
	if t.Status != "" {
		return "HTTP request failed with status: " + t.Status
	}
	return fmt.Sprintf("HTTP request failed with status code: %d", t.StatusCode)
}

func protocolErrorf(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

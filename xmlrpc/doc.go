/*
Package xmlrpc implements the XML-RPC protocol without a general purpose XML
parser: a value model, a text based encoder, a decoder which delimits nested
<value> elements by tracking their depth, an HTTP client and an HTTP handler.

Decoding is deliberately lenient for primitive values: invalid content of
int, double and boolean elements yields 0 or false, unknown elements are
returned as strings. Only faults (*FaultError) and broken envelopes or
nesting (*ProtocolError) are reported as errors.
*/
package xmlrpc

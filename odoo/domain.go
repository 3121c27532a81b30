package odoo

import "github.com/mdzio/go-odoo/xmlrpc"

// Domain builds a search domain from conditions and prefix operators. Without
// terms all records match.
func Domain(terms ...*xmlrpc.Value) *xmlrpc.Value {
	return xmlrpc.NewArray(terms...)
}

// Cond builds a condition (field, operator, value), e.g.
// Cond("list_price", ">", xmlrpc.NewDouble(10)).
func Cond(field, operator string, value *xmlrpc.Value) *xmlrpc.Value {
	if value == nil {
		value = xmlrpc.NewBool(false)
	}
	return xmlrpc.NewArray(xmlrpc.NewString(field), xmlrpc.NewString(operator), value)
}

// And combines the next two terms.
func And() *xmlrpc.Value { return xmlrpc.NewString("&") }

// Or combines the next two terms.
func Or() *xmlrpc.Value { return xmlrpc.NewString("|") }

// Not negates the next term.
func Not() *xmlrpc.Value { return xmlrpc.NewString("!") }

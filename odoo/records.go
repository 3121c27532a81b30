package odoo

import (
	"context"

	"github.com/mdzio/go-odoo/xmlrpc"
)

// DefaultFields are read, if no fields are specified. Reading all fields of a
// model can exhaust the memory of the server.
var DefaultFields = []string{"id", "name"}

func fieldsOrDefault(fields []string) *xmlrpc.Value {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return xmlrpc.NewStrings(fields)
}

func domainOrEmpty(domain *xmlrpc.Value) *xmlrpc.Value {
	if domain == nil {
		return xmlrpc.NewArray()
	}
	return domain
}

// SearchRead reads the fields of the records matching domain. A limit of 0
// or less reads all records from offset. The result is an array of structs.
func (s *Session) SearchRead(ctx context.Context, model string, domain *xmlrpc.Value, fields []string, offset, limit int) (*xmlrpc.Value, error) {
	kwargs := []*xmlrpc.Member{
		{Name: "fields", Value: fieldsOrDefault(fields)},
		{Name: "offset", Value: xmlrpc.NewInt(offset)},
	}
	if limit > 0 {
		kwargs = append(kwargs, &xmlrpc.Member{Name: "limit", Value: xmlrpc.NewInt(limit)})
	}
	return s.ExecuteKw(ctx, model, "search_read", xmlrpc.Values{domainOrEmpty(domain)}, kwargs...)
}

// Search returns the IDs of the records matching domain as array of ints.
func (s *Session) Search(ctx context.Context, model string, domain *xmlrpc.Value, offset, limit int) (*xmlrpc.Value, error) {
	kwargs := []*xmlrpc.Member{
		{Name: "offset", Value: xmlrpc.NewInt(offset)},
	}
	if limit > 0 {
		kwargs = append(kwargs, &xmlrpc.Member{Name: "limit", Value: xmlrpc.NewInt(limit)})
	}
	return s.ExecuteKw(ctx, model, "search", xmlrpc.Values{domainOrEmpty(domain)}, kwargs...)
}

// SearchCount returns the number of records matching domain as int.
func (s *Session) SearchCount(ctx context.Context, model string, domain *xmlrpc.Value) (*xmlrpc.Value, error) {
	return s.Execute(ctx, model, "search_count", xmlrpc.Values{domainOrEmpty(domain)})
}

// Read reads the fields of the records with the specified IDs.
func (s *Session) Read(ctx context.Context, model string, ids []int64, fields []string) (*xmlrpc.Value, error) {
	return s.ExecuteKw(ctx, model, "read", xmlrpc.Values{xmlrpc.NewInts(ids)},
		&xmlrpc.Member{Name: "fields", Value: fieldsOrDefault(fields)})
}

// Create creates a record from a struct of field values and returns the ID of
// the new record.
func (s *Session) Create(ctx context.Context, model string, values *xmlrpc.Value) (*xmlrpc.Value, error) {
	return s.Execute(ctx, model, "create", xmlrpc.Values{values})
}

// Write updates the records with the specified IDs. The server returns true
// on success.
func (s *Session) Write(ctx context.Context, model string, ids []int64, values *xmlrpc.Value) (*xmlrpc.Value, error) {
	return s.Execute(ctx, model, "write", xmlrpc.Values{xmlrpc.NewInts(ids), values})
}

// Unlink deletes the records with the specified IDs.
func (s *Session) Unlink(ctx context.Context, model string, ids []int64) (*xmlrpc.Value, error) {
	return s.Execute(ctx, model, "unlink", xmlrpc.Values{xmlrpc.NewInts(ids)})
}

// FieldsGet returns the field definitions of a model. If attributes are
// specified, only these attributes of each field are returned.
func (s *Session) FieldsGet(ctx context.Context, model string, attributes []string) (*xmlrpc.Value, error) {
	if len(attributes) == 0 {
		return s.Execute(ctx, model, "fields_get", nil)
	}
	return s.ExecuteKw(ctx, model, "fields_get", nil,
		&xmlrpc.Member{Name: "attributes", Value: xmlrpc.NewStrings(attributes)})
}

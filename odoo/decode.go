package odoo

import (
	"fmt"
	"reflect"

	"github.com/mdzio/go-odoo/xmlrpc"
	"github.com/mitchellh/mapstructure"
)

// DecodeRecords decodes an array of records (e.g. the result of SearchRead or
// Read) into the slice pointed to by out. Fields are matched by the xmlrpc
// struct tag or by name, case-insensitive. Values are converted weakly, and
// the boolean false, which the server sends for empty fields, decodes to the
// zero value of non-boolean fields.
func DecodeRecords(v *xmlrpc.Value, out interface{}) error {
	if v == nil || v.Kind != xmlrpc.Array {
		return fmt.Errorf("Expected an array of records: %v", v)
	}
	return decode(v, out)
}

// DecodeRecord decodes a single record into the struct pointed to by out.
func DecodeRecord(v *xmlrpc.Value, out interface{}) error {
	if v == nil || v.Kind != xmlrpc.Struct {
		return fmt.Errorf("Expected a record: %v", v)
	}
	return decode(v, out)
}

func decode(v *xmlrpc.Value, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(falseAsZero),
		WeaklyTypedInput: true,
		TagName:          "xmlrpc",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(v.Native()); err != nil {
		return fmt.Errorf("Decoding of records failed: %w", err)
	}
	return nil
}

func falseAsZero(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if b, ok := data.(bool); !ok || b || from.Kind() != reflect.Bool {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Bool, reflect.Interface:
		return data, nil
	}
	return reflect.Zero(to).Interface(), nil
}

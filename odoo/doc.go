/*
Package odoo drives the record store of an Odoo style server over XML-RPC.

A Session authenticates once at the endpoint /xmlrpc/2/common and calls
execute_kw at /xmlrpc/2/object for every operation. Results are returned
as *xmlrpc.Value without any validation; use xmlrpc.Q or DecodeRecords to
read them:

	s, err := odoo.NewSession(odoo.ConfigFromEnv("ODOO_"))
	if err != nil {
		return err
	}
	v, err := s.SearchRead(ctx, "product.product",
		odoo.Domain(odoo.Cond("list_price", ">", xmlrpc.NewDouble(10))),
		[]string{"id", "name", "list_price"}, 0, 20)
*/
package odoo

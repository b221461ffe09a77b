// Package schema holds the static table metadata a crud repository is
// built from: the table name, the ordered column list, and the primary
// key.
//
// A Descriptor is derived once per record type, usually by generated code
// (see compiler/gen and cmd/crudgen), and is immutable afterwards. Column
// order is load-bearing: it fixes the column lists and placeholder
// positions of every rendered statement, and the order in which record
// values are bound and scanned.
//
// Hand-written descriptors use NewDescriptor and must declare exactly one
// primary key column:
//
//	desc, err := schema.NewDescriptor("User", []schema.Column{
//	    {Name: "id", PrimaryKey: true, AutoIncrement: true},
//	    {Name: "email"},
//	})
//
// The table name defaults to the Rails-style table form of the record
// type name ("User" becomes "users", "OrderItem" becomes "order_items")
// and can be overridden with WithTable.
package schema

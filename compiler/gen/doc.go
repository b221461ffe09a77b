// Package gen generates the per-record Schema implementations consumed
// by the crud runtime.
//
// Input comes from compiler/load as a list of record definitions.
// BuildTypes resolves them (column names, primary key, flag
// consistency) and Generate emits one Go file per record containing
// the descriptor variable, the Schema value type, and, for records
// defined in YAML, the record struct itself.
//
// All validation happens here, at generation time. A definition with
// no primary key, two primary keys, or an auto flag on a non-integer
// key is a SchemaError from Generate, never a runtime failure in the
// generated package.
package gen

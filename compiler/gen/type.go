package gen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/crud/compiler/load"
)

// Type is the generator's resolved view of one record definition:
// column names filled in, the primary key identified, and every
// constraint the generated code relies on already checked.
type Type struct {
	// Name is the record's Go type name.
	Name string
	// Table overrides the derived table name when non-empty.
	Table string
	// Fields are the record's columns in declaration order.
	Fields []*Field
	// ID is the primary key field. It also appears in Fields.
	ID *Field
	// EmitStruct requests emission of the record struct itself.
	EmitStruct bool
}

// Field is one resolved column.
type Field struct {
	Name   string
	Column string
	Type   string

	PK         bool
	Auto       bool
	OmitInsert bool
	OmitUpdate bool
	SoftDelete bool
}

// baseTypes is the set of supported non-pointer field type literals,
// beyond the predeclared numeric, bool and string kinds.
var baseTypes = map[string]bool{
	"time.Time": true,
	"uuid.UUID": true,
	"[]byte":    true,
}

var intKinds = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
}

var predeclared = map[string]bool{
	"bool": true, "string": true,
	"float32": true, "float64": true,
}

// FileName returns the output file name for the type.
func (t *Type) FileName() string {
	return inflect.Underscore(t.Name) + ".go"
}

// TableName returns the table the type maps to: the override when one
// was given, otherwise the tableized type name.
func (t *Type) TableName() string {
	if t.Table != "" {
		return t.Table
	}
	return inflect.Tableize(t.Name)
}

// KeyType returns the Go type literal of the primary key.
func (t *Type) KeyType() string { return t.ID.Type }

// IntegerKey reports whether the primary key is an integer type, and
// can therefore receive a driver-generated last-insert-id.
func (t *Type) IntegerKey() bool { return intKinds[t.ID.Type] }

// BuildTypes resolves loaded record definitions into generation-ready
// types. Every rule the runtime descriptor enforces is checked here
// too, so a bad definition fails the generator run instead of
// panicking in the generated package's init.
func BuildTypes(records []*load.Record) ([]*Type, error) {
	types := make([]*Type, 0, len(records))
	for _, rec := range records {
		t, err := buildType(rec)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func buildType(rec *load.Record) (*Type, error) {
	if len(rec.Fields) == 0 {
		return nil, NewSchemaError(rec.Name, "", "record has no fields", nil)
	}
	t := &Type{Name: rec.Name, Table: rec.Table, EmitStruct: rec.EmitStruct}
	seen := make(map[string]bool, len(rec.Fields))
	for i := range rec.Fields {
		f := &Field{
			Name:       rec.Fields[i].Name,
			Column:     rec.Fields[i].Column,
			Type:       rec.Fields[i].Type,
			PK:         rec.Fields[i].PK,
			Auto:       rec.Fields[i].Auto,
			OmitInsert: rec.Fields[i].OmitInsert,
			OmitUpdate: rec.Fields[i].OmitUpdate,
			SoftDelete: rec.Fields[i].SoftDelete,
		}
		if f.Column == "" {
			f.Column = inflect.Underscore(f.Name)
		}
		if seen[f.Column] {
			return nil, NewSchemaError(t.Name, f.Name, "duplicate column "+f.Column, nil)
		}
		seen[f.Column] = true
		if err := checkFieldType(t.Name, f); err != nil {
			return nil, err
		}
		if f.PK {
			if t.ID != nil {
				return nil, NewSchemaError(t.Name, f.Name, "multiple primary key fields ("+t.ID.Name+", "+f.Name+")", nil)
			}
			t.ID = f
		}
		t.Fields = append(t.Fields, f)
	}
	if t.ID == nil {
		// A field named ID is the key by convention when no field is
		// tagged explicitly.
		for _, f := range t.Fields {
			if f.Name == "ID" {
				f.PK = true
				t.ID = f
				break
			}
		}
	}
	if t.ID == nil {
		return nil, NewSchemaError(t.Name, "", "no primary key field; tag one with pk or name it ID", nil)
	}
	if err := checkFlags(t); err != nil {
		return nil, err
	}
	return t, nil
}

func checkFlags(t *Type) error {
	var soft *Field
	for _, f := range t.Fields {
		if f.Auto && !f.PK {
			return NewSchemaError(t.Name, f.Name, "auto is only valid on the primary key", nil)
		}
		if f.Auto && !intKinds[f.Type] {
			return NewSchemaError(t.Name, f.Name, "auto requires an integer key, got "+f.Type, nil)
		}
		if f.SoftDelete {
			if f.PK {
				return NewSchemaError(t.Name, f.Name, "the primary key cannot be the soft-delete column", nil)
			}
			if soft != nil {
				return NewSchemaError(t.Name, f.Name, "multiple soft-delete fields ("+soft.Name+", "+f.Name+")", nil)
			}
			if f.Type != "*time.Time" {
				return NewSchemaError(t.Name, f.Name, "soft-delete field must be *time.Time, got "+f.Type, nil)
			}
			soft = f
		}
	}
	return nil
}

func checkFieldType(record string, f *Field) error {
	base := strings.TrimPrefix(f.Type, "*")
	switch {
	case f.Type == "":
		return NewSchemaError(record, f.Name, "field has no type", nil)
	case f.Type == "*[]byte":
		return NewSchemaError(record, f.Name, "unsupported field type *[]byte", nil)
	case baseTypes[base], intKinds[base], predeclared[base]:
		return nil
	default:
		return NewSchemaError(record, f.Name, "unsupported field type "+f.Type, nil)
	}
}

// Package load turns record definitions into the source-agnostic model
// consumed by compiler/gen. Definitions come from one of two places:
// existing Go structs carrying `crud` tags (FromStructs, used by
// go:generate programs), or a YAML file (FromFile, used by the crudgen
// command, which then also emits the struct itself).
package load

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the loaded definition of one record type. Field order is
// preserved from the source; it becomes the descriptor column order.
type Record struct {
	// Name is the Go type name of the record.
	Name string
	// Table overrides the derived table name when non-empty.
	Table string
	// Fields are the record's columns in declaration order.
	Fields []Field
	// EmitStruct is set for YAML-defined records, whose struct type does
	// not exist yet and must be generated alongside the schema.
	EmitStruct bool
}

// Field is one column of a record definition.
type Field struct {
	// Name is the Go struct field name.
	Name string
	// Column is the column name; empty means derive it from Name.
	Column string
	// Type is the Go type literal, e.g. "int64", "*time.Time",
	// "uuid.UUID". See compiler/gen for the supported set.
	Type string

	PK         bool
	Auto       bool
	OmitInsert bool
	OmitUpdate bool
	SoftDelete bool
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// FromStructs loads record definitions from struct values by reflecting
// over their fields and `crud` tags once, at generation time. The
// runtime packages never reflect.
//
// Tag form: `crud:"column[,flag...]"` with flags pk, auto, omitinsert,
// omitupdate and softdelete. An empty column name derives it from the
// field name. Fields tagged `crud:"-"` and unexported fields are
// skipped.
func FromStructs(vs ...any) ([]*Record, error) {
	records := make([]*Record, 0, len(vs))
	for _, v := range vs {
		rt := reflect.TypeOf(v)
		if rt != nil && rt.Kind() == reflect.Pointer {
			rt = rt.Elem()
		}
		if rt == nil || rt.Kind() != reflect.Struct {
			return nil, fmt.Errorf("load: %T is not a struct type", v)
		}
		rec := &Record{Name: rt.Name()}
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			tag := sf.Tag.Get("crud")
			if tag == "-" {
				continue
			}
			f, err := parseTag(sf.Name, tag)
			if err != nil {
				return nil, fmt.Errorf("load: %s.%s: %w", rt.Name(), sf.Name, err)
			}
			f.Type, err = typeLiteral(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("load: %s.%s: %w", rt.Name(), sf.Name, err)
			}
			rec.Fields = append(rec.Fields, f)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseTag(fieldName, tag string) (Field, error) {
	f := Field{Name: fieldName}
	if tag == "" {
		return f, nil
	}
	parts := strings.Split(tag, ",")
	f.Column = strings.TrimSpace(parts[0])
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "pk":
			f.PK = true
		case "auto":
			f.Auto = true
		case "omitinsert":
			f.OmitInsert = true
		case "omitupdate":
			f.OmitUpdate = true
		case "softdelete":
			f.SoftDelete = true
		case "":
		default:
			return f, fmt.Errorf("unknown crud tag option %q", opt)
		}
	}
	return f, nil
}

// typeLiteral renders the Go type literal of a struct field type, for
// the subset of types the generator supports.
func typeLiteral(rt reflect.Type) (string, error) {
	ptr := ""
	if rt.Kind() == reflect.Pointer {
		ptr = "*"
		rt = rt.Elem()
	}
	switch rt {
	case timeType:
		return ptr + "time.Time", nil
	case uuidType:
		return ptr + "uuid.UUID", nil
	case bytesType:
		if ptr != "" {
			return "", fmt.Errorf("unsupported field type *[]byte")
		}
		return "[]byte", nil
	}
	switch rt.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ptr + rt.Kind().String(), nil
	default:
		return "", fmt.Errorf("unsupported field type %s", rt)
	}
}

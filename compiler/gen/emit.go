package gen

import (
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
)

const (
	crudPkg   = "github.com/syssam/crud"
	schemaPkg = "github.com/syssam/crud/schema"
	uuidPkg   = "github.com/google/uuid"
)

// emit renders the generated file for one type: the descriptor
// variable, the Schema implementation, and (for YAML-defined records)
// the record struct itself.
func emit(cfg *Config, t *Type) *jen.File {
	f := jen.NewFilePathName(cfg.Package, path.Base(cfg.Package))
	if cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}
	if t.EmitStruct {
		emitStruct(f, t)
	}
	emitDescriptor(f, t)
	emitSchema(f, t)
	return f
}

func emitStruct(f *jen.File, t *Type) {
	f.Commentf("%s is a record of the %s table.", t.Name, t.TableName())
	f.Type().Id(t.Name).StructFunc(func(g *jen.Group) {
		for _, fd := range t.Fields {
			g.Id(fd.Name).Add(typeCode(fd.Type)).Tag(map[string]string{"crud": fieldTag(fd)})
		}
	})
}

func emitDescriptor(f *jen.File, t *Type) {
	f.Commentf("Column names of the %s table.", t.TableName())
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, fd := range t.Fields {
			g.Id(t.Name + "Column" + fd.Name).Op("=").Lit(fd.Column)
		}
	})

	f.Commentf("%sDescriptor is the table metadata of %s.", t.Name, t.Name)
	f.Var().Id(t.Name + "Descriptor").Op("=").Qual(schemaPkg, "MustDescriptor").CallFunc(func(g *jen.Group) {
		g.Lit(t.Name)
		g.Index().Qual(schemaPkg, "Column").ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.Fields {
				g.Values(columnDict(t, fd))
			}
		})
		if t.Table != "" {
			g.Qual(schemaPkg, "WithTable").Call(jen.Lit(t.Table))
		}
	})
}

func emitSchema(f *jen.File, t *Type) {
	sc := t.Name + "Schema"
	key := typeCode(t.KeyType())

	f.Commentf("%s maps %s records to the %s table.", sc, t.Name, t.TableName())
	f.Type().Id(sc).Struct()

	f.Var().Id("_").Qual(crudPkg, "Schema").Index(jen.List(jen.Id(t.Name), key)).Op("=").Id(sc).Values()

	f.Comment("Descriptor returns the table metadata of " + t.Name + ".")
	f.Func().Params(jen.Id(sc)).Id("Descriptor").Params().Op("*").Qual(schemaPkg, "Descriptor").Block(
		jen.Return(jen.Id(t.Name + "Descriptor")),
	)

	f.Comment("Values returns the record's column values in descriptor order.")
	f.Func().Params(jen.Id(sc)).Id("Values").Params(jen.Id("rec").Id(t.Name)).Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.Fields {
				g.Id("rec").Dot(fd.Name)
			}
		})),
	)

	f.Comment("PK returns the record's primary key.")
	f.Func().Params(jen.Id(sc)).Id("PK").Params(jen.Id("rec").Id(t.Name)).Add(typeCode(t.KeyType())).Block(
		jen.Return(jen.Id("rec").Dot(t.ID.Name)),
	)

	f.Comment("WithPK returns a copy of the record with the primary key set.")
	f.Func().Params(jen.Id(sc)).Id("WithPK").Params(
		jen.Id("rec").Id(t.Name), jen.Id("pk").Add(typeCode(t.KeyType())),
	).Id(t.Name).Block(
		jen.Id("rec").Dot(t.ID.Name).Op("=").Id("pk"),
		jen.Return(jen.Id("rec")),
	)

	if t.IntegerKey() {
		f.Comment("FromInsertID converts a driver-generated id into the key type.")
		f.Func().Params(jen.Id(sc)).Id("FromInsertID").Params(jen.Id("id").Int64()).Add(typeCode(t.KeyType())).Block(
			jen.Return(jen.Id(t.KeyType()).Call(jen.Id("id"))),
		)
	} else {
		f.Comment("FromInsertID panics: the primary key is not database-generated.")
		f.Func().Params(jen.Id(sc)).Id("FromInsertID").Params(jen.Id("id").Int64()).Add(typeCode(t.KeyType())).Block(
			jen.Panic(jen.Lit(t.Name+": primary key is not database-generated")),
		)
	}

	f.Comment("ScanRow decodes one result row into a record.")
	f.Func().Params(jen.Id(sc)).Id("ScanRow").Params(
		jen.Id("scan").Func().Params(jen.Id("dest").Op("...").Any()).Error(),
	).Params(jen.Id(t.Name), jen.Error()).Block(
		jen.Var().Id("rec").Id(t.Name),
		jen.If(
			jen.Err().Op(":=").Id("scan").CallFunc(func(g *jen.Group) {
				for _, fd := range t.Fields {
					g.Op("&").Id("rec").Dot(fd.Name)
				}
			}),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Id(t.Name).Values(), jen.Err()),
		),
		jen.Return(jen.Id("rec"), jen.Nil()),
	)
}

func columnDict(t *Type, fd *Field) jen.Dict {
	d := jen.Dict{jen.Id("Name"): jen.Id(t.Name + "Column" + fd.Name)}
	if fd.PK {
		d[jen.Id("PrimaryKey")] = jen.True()
	}
	if fd.Auto {
		d[jen.Id("AutoIncrement")] = jen.True()
	}
	if fd.OmitInsert {
		d[jen.Id("OmitInsert")] = jen.True()
	}
	if fd.OmitUpdate {
		d[jen.Id("OmitUpdate")] = jen.True()
	}
	if fd.SoftDelete {
		d[jen.Id("SoftDelete")] = jen.True()
	}
	return d
}

// typeCode renders a supported field type literal as code. BuildTypes
// has already rejected anything outside the supported set.
func typeCode(lit string) jen.Code {
	var c *jen.Statement
	base := strings.TrimPrefix(lit, "*")
	switch base {
	case "time.Time":
		c = jen.Qual("time", "Time")
	case "uuid.UUID":
		c = jen.Qual(uuidPkg, "UUID")
	case "[]byte":
		c = jen.Index().Byte()
	default:
		c = jen.Id(base)
	}
	if strings.HasPrefix(lit, "*") {
		return jen.Op("*").Add(c)
	}
	return c
}

func fieldTag(fd *Field) string {
	parts := []string{fd.Column}
	if fd.PK {
		parts = append(parts, "pk")
	}
	if fd.Auto {
		parts = append(parts, "auto")
	}
	if fd.OmitInsert {
		parts = append(parts, "omitinsert")
	}
	if fd.OmitUpdate {
		parts = append(parts, "omitupdate")
	}
	if fd.SoftDelete {
		parts = append(parts, "softdelete")
	}
	return strings.Join(parts, ",")
}

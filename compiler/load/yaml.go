package load

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed crudgen configuration file.
type File struct {
	// Package is the import path of the generated package.
	Package string
	// Target is the directory generated files are written to.
	Target string
	// Records are the record definitions, with EmitStruct set.
	Records []*Record
}

type yamlFile struct {
	Package string       `yaml:"package"`
	Target  string       `yaml:"target"`
	Records []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	Name   string      `yaml:"name"`
	Table  string      `yaml:"table"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name       string   `yaml:"name"`
	Column     string   `yaml:"column"`
	Type       string   `yaml:"type"`
	PK         bool     `yaml:"pk"`
	Auto       bool     `yaml:"auto"`
	Omit       []string `yaml:"omit"`
	SoftDelete bool     `yaml:"softdelete"`
}

// FromFile loads record definitions from a YAML configuration file.
// Unknown keys are rejected so a typo in a flag name fails loudly
// instead of silently generating the wrong schema.
func FromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var yf yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", path, err)
	}
	f := &File{Package: yf.Package, Target: yf.Target}
	if f.Package == "" {
		return nil, fmt.Errorf("load: %s: missing package", path)
	}
	if f.Target == "" {
		return nil, fmt.Errorf("load: %s: missing target", path)
	}
	if len(yf.Records) == 0 {
		return nil, fmt.Errorf("load: %s: no records defined", path)
	}
	for _, yr := range yf.Records {
		rec := &Record{Name: yr.Name, Table: yr.Table, EmitStruct: true}
		if rec.Name == "" {
			return nil, fmt.Errorf("load: %s: record with no name", path)
		}
		for _, yfd := range yr.Fields {
			fd := Field{
				Name:       yfd.Name,
				Column:     yfd.Column,
				Type:       yfd.Type,
				PK:         yfd.PK,
				Auto:       yfd.Auto,
				SoftDelete: yfd.SoftDelete,
			}
			if fd.Name == "" {
				return nil, fmt.Errorf("load: %s: record %s has a field with no name", path, rec.Name)
			}
			if fd.Type == "" {
				return nil, fmt.Errorf("load: %s: %s.%s has no type", path, rec.Name, fd.Name)
			}
			for _, o := range yfd.Omit {
				switch o {
				case "insert":
					fd.OmitInsert = true
				case "update":
					fd.OmitUpdate = true
				default:
					return nil, fmt.Errorf("load: %s: %s.%s: unknown omit value %q", path, rec.Name, fd.Name, o)
				}
			}
			rec.Fields = append(rec.Fields, fd)
		}
		f.Records = append(f.Records, rec)
	}
	return f, nil
}

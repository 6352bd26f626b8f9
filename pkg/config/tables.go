package config

import (
	"strings"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// TableCatalog is the content of a tables file: a list of table definitions
// resolved through the factory registry.
type TableCatalog struct {
	Tables []TableDefinition `yaml:"tables" json:"tables"`
}

// ColumnDefinition is one physical column.
type ColumnDefinition struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// PrimaryKeyDefinition names the primary key columns of a table.
type PrimaryKeyDefinition struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Columns []string `yaml:"columns" json:"columns"`
}

// TableDefinition declares one table: its logical identifier, the factory
// that resolves it and the raw WITH options handed to that factory.
type TableDefinition struct {
	Catalog    string                 `yaml:"catalog,omitempty" json:"catalog,omitempty"`
	Database   string                 `yaml:"database,omitempty" json:"database,omitempty"`
	Name       string                 `yaml:"name" json:"name"`
	Connector  string                 `yaml:"connector" json:"connector"`
	Options    map[string]interface{} `yaml:"options" json:"options"`
	Columns    []ColumnDefinition     `yaml:"columns,omitempty" json:"columns,omitempty"`
	PrimaryKey *PrimaryKeyDefinition  `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
}

// LoadTableCatalog reads and structurally validates a tables file.
func LoadTableCatalog(path string) (*TableCatalog, error) {
	var catalog TableCatalog
	if err := Load(path, &catalog); err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks every definition and rejects duplicate identifiers.
// Option values are not inspected here; the table factories own that.
func (c *TableCatalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Tables))
	for i := range c.Tables {
		def := &c.Tables[i]
		if err := def.Validate(); err != nil {
			return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeValidation, "invalid table definition").
				WithDetail("index", i)
		}
		id := def.Identifier().String()
		if _, dup := seen[id]; dup {
			return nebulaerrors.New(nebulaerrors.ErrorTypeConflict, "duplicate table definition: "+id).
				WithDetail("table", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Find returns the definition whose identifier or bare name equals name.
func (c *TableCatalog) Find(name string) (*TableDefinition, bool) {
	for i := range c.Tables {
		def := &c.Tables[i]
		if def.Identifier().String() == name || def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// Identifier returns the logical object identifier of the table.
func (d *TableDefinition) Identifier() core.ObjectIdentifier {
	return core.ObjectIdentifier{Catalog: d.Catalog, Database: d.Database, Object: d.Name}
}

// Validate checks the structural fields of the definition.
func (d *TableDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "table name is required")
	}
	if strings.TrimSpace(d.Connector) == "" {
		return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "connector is required").
			WithDetail("table", d.Name)
	}

	declared := make(map[string]struct{}, len(d.Columns))
	for _, col := range d.Columns {
		if col.Name == "" {
			return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "column name is required").
				WithDetail("table", d.Name)
		}
		if _, dup := declared[col.Name]; dup {
			return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "duplicate column: "+col.Name).
				WithDetail("table", d.Name)
		}
		declared[col.Name] = struct{}{}
	}

	if d.PrimaryKey == nil {
		return nil
	}
	if len(d.PrimaryKey.Columns) == 0 {
		return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "primary key has no columns").
			WithDetail("table", d.Name)
	}
	for _, name := range d.PrimaryKey.Columns {
		if _, ok := declared[name]; !ok && len(d.Columns) > 0 {
			return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "primary key column is not declared: "+name).
				WithDetail("table", d.Name)
		}
	}
	return nil
}

// FactoryContext builds the context handed to a table factory. The primary
// key is nil when the definition has none.
func (d *TableDefinition) FactoryContext() *core.FactoryContext {
	schema := core.PhysicalSchema{Columns: make([]core.Column, 0, len(d.Columns))}
	for _, col := range d.Columns {
		schema.Columns = append(schema.Columns, core.Column{Name: col.Name, Type: col.Type})
	}
	if d.PrimaryKey != nil {
		schema.PrimaryKey = &core.PrimaryKey{
			Name:    d.PrimaryKey.Name,
			Columns: append([]string(nil), d.PrimaryKey.Columns...),
		}
	}

	return &core.FactoryContext{
		Identifier: d.Identifier(),
		Options:    options.NewRawOptions(d.Options),
		Schema:     schema,
	}
}

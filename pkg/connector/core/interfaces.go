package core

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
)

// ConnectorType represents the role a table plays in a job
type ConnectorType string

const (
	ConnectorTypeSource ConnectorType = "source"
	ConnectorTypeSink   ConnectorType = "sink"
)

// ObjectIdentifier is the fully qualified logical name of a catalog table
type ObjectIdentifier struct {
	Catalog  string `json:"catalog" yaml:"catalog"`
	Database string `json:"database" yaml:"database"`
	Object   string `json:"object" yaml:"object"`
}

// String renders the identifier as catalog.database.object, skipping empty parts.
func (id ObjectIdentifier) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{id.Catalog, id.Database, id.Object} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// Column represents a physical column of a table
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// PrimaryKey represents a declared primary key constraint
type PrimaryKey struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

// PhysicalSchema is the ordered column list of a table plus its optional primary key.
// A nil PrimaryKey means the table has no key.
type PhysicalSchema struct {
	Columns    []Column    `json:"columns" yaml:"columns"`
	PrimaryKey *PrimaryKey `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// ColumnNames returns the column names in declared order.
func (s PhysicalSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKeyColumns returns a copy of the primary key columns, or nil when the
// schema declares no key.
func (s PhysicalSchema) PrimaryKeyColumns() []string {
	if s.PrimaryKey == nil {
		return nil
	}
	cols := make([]string, len(s.PrimaryKey.Columns))
	copy(cols, s.PrimaryKey.Columns)
	return cols
}

// Clone returns a deep copy of the schema.
func (s PhysicalSchema) Clone() PhysicalSchema {
	out := PhysicalSchema{Columns: make([]Column, len(s.Columns))}
	copy(out.Columns, s.Columns)
	if s.PrimaryKey != nil {
		out.PrimaryKey = &PrimaryKey{Name: s.PrimaryKey.Name, Columns: s.PrimaryKeyColumns()}
	}
	return out
}

// FactoryContext carries everything a table factory needs for one table instantiation
type FactoryContext struct {
	Identifier ObjectIdentifier
	Options    options.RawOptions
	Schema     PhysicalSchema
}

// DynamicTableSource is the descriptor a source factory hands to the execution engine
type DynamicTableSource interface {
	AsSummaryString() string
}

// DynamicTableSink is the descriptor a sink factory hands to the execution engine
type DynamicTableSink interface {
	AsSummaryString() string
}

// Factory describes the options a table factory understands
type Factory interface {
	// FactoryIdentifier is the connector name users put in table definitions, e.g. "mysql-x"
	FactoryIdentifier() string
	RequiredOptions() []options.Key
	OptionalOptions() []options.Key
}

// TableSourceFactory creates source descriptors
type TableSourceFactory interface {
	Factory
	CreateTableSource(ctx *FactoryContext) (DynamicTableSource, error)
}

// TableSinkFactory creates sink descriptors
type TableSinkFactory interface {
	Factory
	CreateTableSink(ctx *FactoryContext) (DynamicTableSink, error)
}

// TableFactory creates both sources and sinks
type TableFactory interface {
	TableSourceFactory
	TableSinkFactory
}

// ParseConnectorType parses "source" or "sink", case-insensitively.
func ParseConnectorType(s string) (ConnectorType, error) {
	switch ConnectorType(strings.ToLower(strings.TrimSpace(s))) {
	case ConnectorTypeSource:
		return ConnectorTypeSource, nil
	case ConnectorTypeSink:
		return ConnectorTypeSink, nil
	default:
		return "", fmt.Errorf("unknown connector type %q, expected source or sink", s)
	}
}

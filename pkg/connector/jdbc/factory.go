// Package jdbc resolves JDBC table options into typed source and sink
// descriptors.
//
// A TableFactory is built around one dialect. Each CreateTableSource or
// CreateTableSink call validates the raw options, first per key (required,
// typed, recognized) and then across keys, and assembles immutable configs:
//
//	factory := jdbc.NewTableFactory("mysql-x", mysql.New())
//	src, err := factory.CreateTableSource(&core.FactoryContext{
//	    Identifier: core.ObjectIdentifier{Catalog: "default", Database: "shop", Object: "orders"},
//	    Options: options.FromStrings(map[string]string{
//	        "url":        "jdbc:mysql://localhost:3306/shop",
//	        "table-name": "orders",
//	    }),
//	})
//
// Failures are *nebulaerrors.Error values; use nebulaerrors.IsType to tell
// the categories apart.
package jdbc

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
	"github.com/ajitpratap0/nebula-jdbc/pkg/logger"
	"github.com/ajitpratap0/nebula-jdbc/pkg/metrics"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// TableSource is the resolved descriptor of a JDBC source table.
type TableSource struct {
	Connection *ConnectionConfig    `json:"connection"`
	Scan       *ScanConfig          `json:"scan"`
	Partition  *PartitionScanConfig `json:"partition,omitempty"`
	Lookup     *LookupConfig        `json:"lookup"`
	Schema     core.PhysicalSchema  `json:"schema"`
	Dialect    string               `json:"dialect"`
	DriverName string               `json:"driver_name"`
}

// AsSummaryString implements core.DynamicTableSource.
func (s *TableSource) AsSummaryString() string {
	return fmt.Sprintf("JDBC:%s", s.Dialect)
}

// TableSink is the resolved descriptor of a JDBC sink table.
type TableSink struct {
	Connection *ConnectionConfig   `json:"connection"`
	MaxRetries int                 `json:"max_retries"`
	Schema     core.PhysicalSchema `json:"schema"`
	Dialect    string              `json:"dialect"`
	DriverName string              `json:"driver_name"`
}

// AsSummaryString implements core.DynamicTableSink.
func (s *TableSink) AsSummaryString() string {
	return fmt.Sprintf("JDBC:%s", s.Dialect)
}

// TableFactory creates JDBC sources and sinks for one dialect.
type TableFactory struct {
	identifier string
	dialect    dialect.Dialect
	opts       *OptionRegistry
	validator  *Validator
	assembler  *Assembler
	logger     *zap.Logger
}

// FactoryOption configures a TableFactory.
type FactoryOption func(*TableFactory)

// WithLogger sets the logger. Without it every invocation logs through the
// global logger current at that time.
func WithLogger(l *zap.Logger) FactoryOption {
	return func(f *TableFactory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithOptions replaces the shared DefaultOptions registry.
func WithOptions(r *OptionRegistry) FactoryOption {
	return func(f *TableFactory) {
		if r != nil {
			f.opts = r
		}
	}
}

// NewTableFactory creates a factory named identifier around dialect d.
func NewTableFactory(identifier string, d dialect.Dialect, opts ...FactoryOption) *TableFactory {
	f := &TableFactory{
		identifier: identifier,
		dialect:    d,
		opts:       DefaultOptions,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger != nil {
		f.logger = f.logger.With(zap.String("connector", identifier))
	}
	f.validator = NewValidator(f.opts, d)
	f.assembler = NewAssembler(f.opts)
	return f
}

// FactoryIdentifier implements core.Factory.
func (f *TableFactory) FactoryIdentifier() string { return f.identifier }

// RequiredOptions implements core.Factory.
func (f *TableFactory) RequiredOptions() []options.Key { return f.opts.RequiredOptions() }

// OptionalOptions implements core.Factory.
func (f *TableFactory) OptionalOptions() []options.Key { return f.opts.OptionalOptions() }

// Dialect returns the dialect the factory was built with.
func (f *TableFactory) Dialect() dialect.Dialect { return f.dialect }

// Validator returns the factory's option validator.
func (f *TableFactory) Validator() *Validator { return f.validator }

// CreateTableSource validates ctx and builds a *TableSource.
func (f *TableFactory) CreateTableSource(ctx *core.FactoryContext) (core.DynamicTableSource, error) {
	src, err := f.BuildTableSource(ctx)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// CreateTableSink validates ctx and builds a *TableSink.
func (f *TableFactory) CreateTableSink(ctx *core.FactoryContext) (core.DynamicTableSink, error) {
	sink, err := f.BuildTableSink(ctx)
	if err != nil {
		return nil, err
	}
	return sink, nil
}

// BuildTableSource is CreateTableSource with the concrete return type.
func (f *TableFactory) BuildTableSource(ctx *core.FactoryContext) (*TableSource, error) {
	var src *TableSource
	err := f.invoke(ctx, metrics.KindSource, func(raw options.RawOptions) {
		src = &TableSource{
			Connection: f.assembler.ConnectionConfig(raw, ctx.Schema),
			Scan:       f.assembler.ScanConfig(raw),
			Partition:  f.assembler.PartitionScanConfig(raw),
			Lookup:     f.assembler.LookupConfig(raw, ctx.Identifier.Object),
			Schema:     ctx.Schema.Clone(),
			Dialect:    f.dialect.Identifier(),
			DriverName: f.dialect.DriverName(),
		}
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

// BuildTableSink is CreateTableSink with the concrete return type.
func (f *TableFactory) BuildTableSink(ctx *core.FactoryContext) (*TableSink, error) {
	var sink *TableSink
	err := f.invoke(ctx, metrics.KindSink, func(raw options.RawOptions) {
		sink = &TableSink{
			Connection: f.assembler.ConnectionConfig(raw, ctx.Schema),
			MaxRetries: f.assembler.SinkMaxRetries(raw),
			Schema:     ctx.Schema.Clone(),
			Dialect:    f.dialect.Identifier(),
			DriverName: f.dialect.DriverName(),
		}
	})
	if err != nil {
		return nil, err
	}
	return sink, nil
}

func (f *TableFactory) log() *zap.Logger {
	if f.logger != nil {
		return f.logger
	}
	return logger.ForComponent("jdbc_table_factory").With(zap.String("connector", f.identifier))
}

// invoke validates ctx.Options and runs build only when validation passes.
func (f *TableFactory) invoke(ctx *core.FactoryContext, kind string, build func(options.RawOptions)) error {
	if ctx == nil {
		return nebulaerrors.New(nebulaerrors.ErrorTypeValidation, "factory context is nil")
	}

	timer := metrics.NewTimer(f.identifier)
	log := f.log().With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("kind", kind),
		zap.String("table", ctx.Identifier.String()),
	)

	if err := f.validator.ValidateAll(ctx.Options); err != nil {
		metrics.ObserveInvocation(f.identifier, kind, err, timer.Stop())
		log.Debug("table options rejected",
			zap.String("error_type", string(nebulaerrors.TypeOf(err))),
			zap.Strings("keys", nebulaerrors.Keys(err)),
			zap.Error(err))
		return err
	}

	build(ctx.Options)
	elapsed := timer.Stop()
	metrics.ObserveInvocation(f.identifier, kind, nil, elapsed)
	log.Info("table options resolved", zap.Duration("duration", elapsed))
	return nil
}

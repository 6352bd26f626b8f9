package jdbc

import (
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
)

// Assembler maps validated raw options to typed configs. Absent options take
// the registry default; nothing else is defaulted here.
type Assembler struct {
	opts *OptionRegistry
}

// NewAssembler creates an assembler over the given option set.
func NewAssembler(opts *OptionRegistry) *Assembler {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Assembler{opts: opts}
}

// ConnectionConfig builds the connection config. UpdateKeyColumns mirrors the
// schema's primary key and stays nil when there is none.
func (a *Assembler) ConnectionConfig(raw options.RawOptions, schema core.PhysicalSchema) *ConnectionConfig {
	o := a.opts
	return &ConnectionConfig{
		JdbcURL:             o.URL.Value(raw),
		TableNames:          []string{o.TableName.Value(raw)},
		SchemaName:          o.Schema.Ptr(raw),
		Username:            o.Username.Ptr(raw),
		Password:            o.Password.Ptr(raw),
		AllReplace:          o.SinkAllReplace.Value(raw),
		BatchSize:           o.SinkBufferFlushMaxRows.Value(raw),
		FlushIntervalMillis: o.SinkBufferFlushIntervalMs.Value(raw),
		Parallelism:         o.SinkParallelism.Value(raw),
		UpdateKeyColumns:    schema.PrimaryKeyColumns(),
	}
}

// ScanConfig builds the read tuning config.
func (a *Assembler) ScanConfig(raw options.RawOptions) *ScanConfig {
	return &ScanConfig{
		FetchSize:  a.opts.ScanFetchSize.Value(raw),
		AutoCommit: a.opts.ScanAutoCommit.Value(raw),
	}
}

// PartitionScanConfig returns nil unless every scan partition option is set.
func (a *Assembler) PartitionScanConfig(raw options.RawOptions) *PartitionScanConfig {
	o := a.opts
	group := o.partitionGroup()
	if options.CountPresent(raw, group...) != len(group) {
		return nil
	}
	return &PartitionScanConfig{
		PartitionColumn: o.ScanPartitionColumn.Value(raw),
		LowerBound:      o.ScanPartitionLowerBound.Value(raw),
		UpperBound:      o.ScanPartitionUpperBound.Value(raw),
		NumPartitions:   o.ScanPartitionNum.Value(raw),
		FetchSize:       o.ScanFetchSize.Value(raw),
		AutoCommit:      o.ScanAutoCommit.Value(raw),
	}
}

// LookupConfig builds the lookup config for the logical table tableName.
func (a *Assembler) LookupConfig(raw options.RawOptions, tableName string) *LookupConfig {
	o := a.opts
	cacheType, err := ParseCacheType(o.LookupCacheType.Value(raw))
	if err != nil {
		cacheType = CacheNone
	}
	return &LookupConfig{
		TableName:          tableName,
		AsyncPoolSize:      o.LookupAsyncPoolSize.Value(raw),
		CachePeriodMillis:  o.LookupCachePeriodMs.Value(raw),
		CacheMaxRows:       o.LookupCacheMaxRows.Value(raw),
		CacheTTLMillis:     o.LookupCacheTTLMs.Value(raw),
		CacheType:          cacheType,
		MaxRetryTimes:      o.LookupMaxRetries.Value(raw),
		ErrorLimit:         o.LookupErrorLimit.Value(raw),
		FetchSize:          o.LookupFetchSize.Value(raw),
		AsyncTimeoutMillis: o.LookupAsyncTimeoutMs.Value(raw),
		Parallelism:        o.LookupParallelism.Value(raw),
	}
}

// SinkMaxRetries returns the sink write retry count.
func (a *Assembler) SinkMaxRetries(raw options.RawOptions) int {
	return a.opts.SinkMaxRetries.Value(raw)
}

package jdbc

import (
	"fmt"
	"math"
	"strings"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
)

// Option keys recognized by every JDBC table factory.
const (
	KeyURL       = "url"
	KeyTableName = "table-name"
	KeySchema    = "schema"
	KeyUsername  = "username"
	KeyPassword  = "password"

	KeyScanPartitionColumn     = "scan.partition.column"
	KeyScanPartitionNum        = "scan.partition.num"
	KeyScanPartitionLowerBound = "scan.partition.lower-bound"
	KeyScanPartitionUpperBound = "scan.partition.upper-bound"
	KeyScanFetchSize           = "scan.fetch-size"
	KeyScanAutoCommit          = "scan.auto-commit"

	KeyLookupCachePeriodMs  = "lookup.cache.period-ms"
	KeyLookupCacheMaxRows   = "lookup.cache.max-rows"
	KeyLookupCacheTTLMs     = "lookup.cache.ttl-ms"
	KeyLookupCacheType      = "lookup.cache.type"
	KeyLookupMaxRetries     = "lookup.max-retries"
	KeyLookupErrorLimit     = "lookup.error-limit"
	KeyLookupFetchSize      = "lookup.fetch-size"
	KeyLookupAsyncTimeoutMs = "lookup.async-timeout-ms"
	KeyLookupAsyncPoolSize  = "lookup.async-pool-size"
	KeyLookupParallelism    = "lookup.parallelism"

	KeySinkBufferFlushMaxRows    = "sink.buffer-flush.max-rows"
	KeySinkBufferFlushIntervalMs = "sink.buffer-flush.interval-ms"
	KeySinkMaxRetries            = "sink.max-retries"
	KeySinkAllReplace            = "sink.all-replace"
	KeySinkParallelism           = "sink.parallelism"
)

// CacheType is the lookup cache strategy
type CacheType string

const (
	CacheNone CacheType = "NONE"
	CacheLRU  CacheType = "LRU"
	CacheAll  CacheType = "ALL"
)

// ParseCacheType parses NONE, LRU or ALL, case-insensitively.
func ParseCacheType(s string) (CacheType, error) {
	switch CacheType(strings.ToUpper(strings.TrimSpace(s))) {
	case CacheNone:
		return CacheNone, nil
	case CacheLRU:
		return CacheLRU, nil
	case CacheAll:
		return CacheAll, nil
	default:
		return "", fmt.Errorf("unknown cache type %q, expected one of NONE, LRU, ALL", s)
	}
}

// OptionRegistry declares every option a JDBC table factory understands.
// It is built once and shared by pointer; callers must not modify it.
type OptionRegistry struct {
	URL       *options.Option[string]
	TableName *options.Option[string]
	Schema    *options.Option[string]
	Username  *options.Option[string]
	Password  *options.Option[string]

	ScanPartitionColumn     *options.Option[string]
	ScanPartitionNum        *options.Option[int]
	ScanPartitionLowerBound *options.Option[int64]
	ScanPartitionUpperBound *options.Option[int64]
	ScanFetchSize           *options.Option[int]
	ScanAutoCommit          *options.Option[bool]

	LookupCachePeriodMs  *options.Option[int64]
	LookupCacheMaxRows   *options.Option[int64]
	LookupCacheTTLMs     *options.Option[int64]
	LookupCacheType      *options.Option[string]
	LookupMaxRetries     *options.Option[int]
	LookupErrorLimit     *options.Option[int64]
	LookupFetchSize      *options.Option[int]
	LookupAsyncTimeoutMs *options.Option[int]
	LookupAsyncPoolSize  *options.Option[int]
	LookupParallelism    *options.Option[int]

	SinkBufferFlushMaxRows    *options.Option[int]
	SinkBufferFlushIntervalMs *options.Option[int64]
	SinkMaxRetries            *options.Option[int]
	SinkAllReplace            *options.Option[bool]
	SinkParallelism           *options.Option[int]

	byKey map[string]options.Key
}

// DefaultOptions is the shared option registry used by every JDBC factory.
var DefaultOptions = NewOptionRegistry()

// NewOptionRegistry declares the JDBC option set.
func NewOptionRegistry() *OptionRegistry {
	r := &OptionRegistry{
		URL:       options.NewString(KeyURL).WithDescription("The JDBC database url."),
		TableName: options.NewString(KeyTableName).WithDescription("The JDBC table name."),
		Schema:    options.NewString(KeySchema).WithDescription("The database schema the table lives in."),
		Username:  options.NewString(KeyUsername).WithDescription("The JDBC user name."),
		Password:  options.NewString(KeyPassword).WithDescription("The JDBC password."),

		ScanPartitionColumn: options.NewString(KeyScanPartitionColumn).
			WithDescription("The column name used for partitioning the input."),
		ScanPartitionNum: options.NewInt(KeyScanPartitionNum).
			WithDescription("The number of partitions."),
		ScanPartitionLowerBound: options.NewInt64(KeyScanPartitionLowerBound).
			WithDescription("The smallest value of the first partition."),
		ScanPartitionUpperBound: options.NewInt64(KeyScanPartitionUpperBound).
			WithDescription("The largest value of the last partition."),
		ScanFetchSize: options.NewInt(KeyScanFetchSize).WithDefault(0).
			WithDescription("Rows fetched from the database per round trip when reading. 0 leaves it to the driver."),
		ScanAutoCommit: options.NewBool(KeyScanAutoCommit).WithDefault(true).
			WithDescription("Sets the auto-commit flag on the reading connection."),

		LookupCachePeriodMs: options.NewInt64(KeyLookupCachePeriodMs).WithDefault(3600 * 1000).
			WithDescription("Reload period of an ALL cache, in milliseconds."),
		LookupCacheMaxRows: options.NewInt64(KeyLookupCacheMaxRows).WithDefault(10000).
			WithDescription("The max number of rows in the lookup cache."),
		LookupCacheTTLMs: options.NewInt64(KeyLookupCacheTTLMs).WithDefault(60 * 1000).
			WithDescription("The time to live of each row in the lookup cache, in milliseconds."),
		LookupCacheType: options.NewString(KeyLookupCacheType).WithDefault(string(CacheNone)).
			WithDescription("Lookup cache strategy: NONE, LRU or ALL."),
		LookupMaxRetries: options.NewInt(KeyLookupMaxRetries).WithDefault(3).
			WithDescription("The max retry times if lookup database failed."),
		LookupErrorLimit: options.NewInt64(KeyLookupErrorLimit).WithDefault(math.MaxInt64).
			WithDescription("The number of failed lookups tolerated before the job fails."),
		LookupFetchSize: options.NewInt(KeyLookupFetchSize).WithDefault(1000).
			WithDescription("Rows fetched per round trip when loading an ALL cache."),
		LookupAsyncTimeoutMs: options.NewInt(KeyLookupAsyncTimeoutMs).WithDefault(10000).
			WithDescription("Timeout of an asynchronous lookup, in milliseconds."),
		LookupAsyncPoolSize: options.NewInt(KeyLookupAsyncPoolSize).WithDefault(5).
			WithDescription("Size of the asynchronous lookup connection pool."),
		LookupParallelism: options.NewInt(KeyLookupParallelism).WithDefault(1).
			WithDescription("Parallelism of the lookup operator."),

		SinkBufferFlushMaxRows: options.NewInt(KeySinkBufferFlushMaxRows).WithDefault(100).
			WithDescription("The max size of buffered records before flush."),
		SinkBufferFlushIntervalMs: options.NewInt64(KeySinkBufferFlushIntervalMs).WithDefault(1000).
			WithDescription("The flush interval of buffered records, in milliseconds."),
		SinkMaxRetries: options.NewInt(KeySinkMaxRetries).WithDefault(3).
			WithDescription("The max retry times if writing records to database failed."),
		SinkAllReplace: options.NewBool(KeySinkAllReplace).WithDefault(false).
			WithDescription("Replace every column on upsert, including nulls."),
		SinkParallelism: options.NewInt(KeySinkParallelism).WithDefault(1).
			WithDescription("Parallelism of the sink operator."),
	}

	r.byKey = make(map[string]options.Key)
	for _, k := range r.All() {
		r.byKey[k.Key()] = k
	}
	return r
}

// RequiredOptions returns the options every table definition must set.
func (r *OptionRegistry) RequiredOptions() []options.Key {
	return []options.Key{r.URL, r.TableName}
}

// OptionalOptions returns every other recognized option.
func (r *OptionRegistry) OptionalOptions() []options.Key {
	return []options.Key{
		r.Schema,
		r.Username,
		r.Password,

		r.ScanPartitionColumn,
		r.ScanPartitionLowerBound,
		r.ScanPartitionUpperBound,
		r.ScanPartitionNum,
		r.ScanFetchSize,
		r.ScanAutoCommit,

		r.LookupCachePeriodMs,
		r.LookupCacheMaxRows,
		r.LookupCacheTTLMs,
		r.LookupCacheType,
		r.LookupMaxRetries,
		r.LookupErrorLimit,
		r.LookupFetchSize,
		r.LookupAsyncTimeoutMs,
		r.LookupAsyncPoolSize,
		r.LookupParallelism,

		r.SinkBufferFlushMaxRows,
		r.SinkBufferFlushIntervalMs,
		r.SinkMaxRetries,
		r.SinkAllReplace,
		r.SinkParallelism,
	}
}

// All returns required options followed by optional options.
func (r *OptionRegistry) All() []options.Key {
	return append(r.RequiredOptions(), r.OptionalOptions()...)
}

// Lookup finds a declared option by key.
func (r *OptionRegistry) Lookup(key string) (options.Key, bool) {
	k, ok := r.byKey[key]
	return k, ok
}

// IsRequired reports whether key is a required option.
func (r *OptionRegistry) IsRequired(key string) bool {
	return key == KeyURL || key == KeyTableName
}

// partitionGroup lists the scan partition options that must be set together.
func (r *OptionRegistry) partitionGroup() []options.Key {
	return []options.Key{
		r.ScanPartitionColumn,
		r.ScanPartitionNum,
		r.ScanPartitionLowerBound,
		r.ScanPartitionUpperBound,
	}
}

func (r *OptionRegistry) credentialGroup() []options.Key {
	return []options.Key{r.Username, r.Password}
}

func (r *OptionRegistry) lookupCacheGroup() []options.Key {
	return []options.Key{r.LookupCacheMaxRows, r.LookupCacheTTLMs}
}

package jdbc

import (
	"github.com/goccy/go-json"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
)

// ConnectionConfig holds the connection and write tuning shared by sources and sinks.
// Optional string fields are nil when the option was not set.
type ConnectionConfig struct {
	JdbcURL    string   `json:"jdbc_url"`
	TableNames []string `json:"table_names"`
	SchemaName *string  `json:"schema_name,omitempty"`
	Username   *string  `json:"username,omitempty"`
	// Password is never serialized.
	Password *string `json:"-"`

	AllReplace          bool  `json:"all_replace"`
	BatchSize           int   `json:"batch_size"`
	FlushIntervalMillis int64 `json:"flush_interval_millis"`
	Parallelism         int   `json:"parallelism"`

	// UpdateKeyColumns is nil when the table declares no primary key.
	UpdateKeyColumns []string `json:"update_key_columns"`
}

// HasCredentials reports whether username and password were supplied.
func (c *ConnectionConfig) HasCredentials() bool {
	return c.Username != nil && c.Password != nil
}

// MarshalJSON renders c with any password embedded in the URL masked.
func (c ConnectionConfig) MarshalJSON() ([]byte, error) {
	type plain ConnectionConfig
	p := plain(c)
	p.JdbcURL = dialect.Redact(c.JdbcURL)
	return json.Marshal(p)
}

// Clone returns a deep copy of c.
func (c *ConnectionConfig) Clone() *ConnectionConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.TableNames = cloneStrings(c.TableNames)
	out.UpdateKeyColumns = cloneStrings(c.UpdateKeyColumns)
	out.SchemaName = cloneString(c.SchemaName)
	out.Username = cloneString(c.Username)
	out.Password = cloneString(c.Password)
	return &out
}

// ScanConfig holds read tuning that applies with or without partitioning.
type ScanConfig struct {
	FetchSize  int  `json:"fetch_size"`
	AutoCommit bool `json:"auto_commit"`
}

// PartitionScanConfig splits a source read into numeric ranges of PartitionColumn.
type PartitionScanConfig struct {
	PartitionColumn string `json:"partition_column"`
	LowerBound      int64  `json:"lower_bound"`
	UpperBound      int64  `json:"upper_bound"`
	NumPartitions   int    `json:"num_partitions"`
	FetchSize       int    `json:"fetch_size"`
	AutoCommit      bool   `json:"auto_commit"`
}

// LookupConfig configures point lookups against the table.
type LookupConfig struct {
	TableName          string    `json:"table_name"`
	AsyncPoolSize      int       `json:"async_pool_size"`
	CachePeriodMillis  int64     `json:"cache_period_millis"`
	CacheMaxRows       int64     `json:"cache_max_rows"`
	CacheTTLMillis     int64     `json:"cache_ttl_millis"`
	CacheType          CacheType `json:"cache_type"`
	MaxRetryTimes      int       `json:"max_retry_times"`
	ErrorLimit         int64     `json:"error_limit"`
	FetchSize          int       `json:"fetch_size"`
	AsyncTimeoutMillis int       `json:"async_timeout_millis"`
	Parallelism        int       `json:"parallelism"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

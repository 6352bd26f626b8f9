package jdbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/core"
	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/options"
	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
	"github.com/ajitpratap0/nebula-jdbc/pkg/testutil"
)

func newTestFactory(t *testing.T) *TableFactory {
	return NewTableFactory("stub-x", stubDialect{}, WithLogger(testutil.TestLogger(t)))
}

func factoryContext(raw options.RawOptions, pk *core.PrimaryKey) *core.FactoryContext {
	return &core.FactoryContext{
		Identifier: core.ObjectIdentifier{Catalog: "default_catalog", Database: "shop", Object: "orders_dim"},
		Options:    raw,
		Schema: core.PhysicalSchema{
			Columns: []core.Column{
				{Name: "id", Type: "BIGINT"},
				{Name: "ts", Type: "TIMESTAMP(3)"},
				{Name: "amount", Type: "DECIMAL(10, 2)"},
			},
			PrimaryKey: pk,
		},
	}
}

func TestTableFactory_Metadata(t *testing.T) {
	f := newTestFactory(t)

	assert.Equal(t, "stub-x", f.FactoryIdentifier())
	assert.Equal(t, []string{KeyURL, KeyTableName}, options.Keys(f.RequiredOptions()))
	assert.Len(t, f.OptionalOptions(), 24)
	assert.Equal(t, "stub", f.Dialect().Identifier())
	assert.NotNil(t, f.Validator())

	var _ core.TableFactory = f
}

func TestTableFactory_MissingRequiredFailsFirst(t *testing.T) {
	f := newTestFactory(t)

	// the other violations are never reached
	raw := options.FromStrings(map[string]string{
		KeyTableName:        "orders",
		KeyUsername:         "app",
		KeyLookupMaxRetries: "-1",
		"unknown.key":       "x",
	})

	_, err := f.CreateTableSource(factoryContext(raw, nil))
	require.Error(t, err)
	assert.True(t, nebulaerrors.IsType(err, nebulaerrors.ErrorTypeMissingOption))
	assert.Equal(t, []string{KeyURL}, nebulaerrors.Keys(err))

	_, err = f.CreateTableSink(factoryContext(options.FromStrings(map[string]string{KeyURL: stubURL}), nil))
	require.Error(t, err)
	assert.True(t, nebulaerrors.IsType(err, nebulaerrors.ErrorTypeMissingOption))
	assert.Equal(t, []string{KeyTableName}, nebulaerrors.Keys(err))
}

func TestTableFactory_CreateTableSource(t *testing.T) {
	f := newTestFactory(t)
	raw := baseOptions(map[string]string{
		KeyScanPartitionColumn:     "id",
		KeyScanPartitionNum:        "4",
		KeyScanPartitionLowerBound: "1",
		KeyScanPartitionUpperBound: "100",
	})

	dts, err := f.CreateTableSource(factoryContext(raw, &core.PrimaryKey{Name: "pk", Columns: []string{"id", "ts"}}))
	require.NoError(t, err)
	src, ok := dts.(*TableSource)
	require.True(t, ok)

	assert.Equal(t, "JDBC:stub", src.AsSummaryString())
	assert.Equal(t, "stub", src.Dialect)
	assert.Equal(t, "stubdriver", src.DriverName)
	assert.Equal(t, []string{"id", "ts"}, src.Connection.UpdateKeyColumns)
	assert.Equal(t, []string{"id", "ts", "amount"}, src.Schema.ColumnNames())

	require.NotNil(t, src.Partition)
	assert.Equal(t, "id", src.Partition.PartitionColumn)
	assert.Equal(t, int64(1), src.Partition.LowerBound)
	assert.Equal(t, int64(100), src.Partition.UpperBound)
	assert.Equal(t, 4, src.Partition.NumPartitions)

	assert.Equal(t, "orders_dim", src.Lookup.TableName)
	assert.Equal(t, CacheNone, src.Lookup.CacheType)
	assert.Equal(t, 3, src.Lookup.MaxRetryTimes)
	assert.True(t, src.Scan.AutoCommit)
}

func TestTableFactory_SourceWithoutPartitioning(t *testing.T) {
	f := newTestFactory(t)

	src, err := f.BuildTableSource(factoryContext(baseOptions(map[string]string{KeyScanFetchSize: "128"}), nil))
	require.NoError(t, err)
	assert.Nil(t, src.Partition)
	assert.Equal(t, 128, src.Scan.FetchSize)
	assert.Nil(t, src.Connection.UpdateKeyColumns)
}

func TestTableFactory_CreateTableSink(t *testing.T) {
	f := newTestFactory(t)
	raw := baseOptions(map[string]string{
		KeyUsername:       "app",
		KeyPassword:       "secret",
		KeySinkMaxRetries: "0",
		KeySinkAllReplace: "true",
	})

	dts, err := f.CreateTableSink(factoryContext(raw, &core.PrimaryKey{Columns: []string{"id"}}))
	require.NoError(t, err)
	sink, ok := dts.(*TableSink)
	require.True(t, ok)

	assert.Equal(t, "JDBC:stub", sink.AsSummaryString())
	assert.Equal(t, 0, sink.MaxRetries)
	assert.True(t, sink.Connection.AllReplace)
	assert.Equal(t, []string{"id"}, sink.Connection.UpdateKeyColumns)
	assert.Equal(t, "app", *sink.Connection.Username)
}

func TestTableFactory_SinkRejectsNegativeRetries(t *testing.T) {
	f := newTestFactory(t)

	dts, err := f.CreateTableSink(factoryContext(baseOptions(map[string]string{KeySinkMaxRetries: "-1"}), nil))
	require.Error(t, err)
	assert.Nil(t, dts)
	assert.True(t, nebulaerrors.IsType(err, nebulaerrors.ErrorTypeNegativeValue))
}

func TestTableFactory_Deterministic(t *testing.T) {
	f := newTestFactory(t)
	raw := baseOptions(map[string]string{
		KeySchema:             "sales",
		KeyLookupCacheType:    "LRU",
		KeyLookupCacheMaxRows: "10",
		KeyLookupCacheTTLMs:   "20",
	})
	pk := &core.PrimaryKey{Columns: []string{"id"}}

	first, err := f.BuildTableSource(factoryContext(raw, pk))
	require.NoError(t, err)
	second, err := f.BuildTableSource(factoryContext(raw, pk))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first.Connection, second.Connection)
}

func TestTableFactory_NilContext(t *testing.T) {
	f := newTestFactory(t)

	_, err := f.CreateTableSource(nil)
	require.Error(t, err)
	assert.True(t, nebulaerrors.IsType(err, nebulaerrors.ErrorTypeValidation))
}

func TestTableFactory_NilDialect(t *testing.T) {
	f := NewTableFactory("nodialect-x", nil, WithLogger(testutil.TestLogger(t)))

	_, err := f.CreateTableSink(factoryContext(baseOptions(nil), nil))
	require.Error(t, err)
	assert.True(t, nebulaerrors.IsType(err, nebulaerrors.ErrorTypeUnresolvedDialect))
}

func TestTableFactory_Logging(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	f := NewTableFactory("stub-x", stubDialect{}, WithLogger(zap.New(obs)))

	_, err := f.CreateTableSource(factoryContext(baseOptions(nil), nil))
	require.NoError(t, err)
	_, err = f.CreateTableSource(factoryContext(baseOptions(map[string]string{KeyUsername: "app"}), nil))
	require.Error(t, err)

	resolved := logs.FilterMessage("table options resolved").All()
	require.Len(t, resolved, 1)
	fields := resolved[0].ContextMap()
	assert.Equal(t, "stub-x", fields["connector"])
	assert.Equal(t, "source", fields["kind"])
	assert.Equal(t, "default_catalog.shop.orders_dim", fields["table"])
	assert.NotEmpty(t, fields["invocation_id"])

	rejected := logs.FilterMessage("table options rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.DebugLevel, rejected[0].Level)
	assert.Equal(t, string(nebulaerrors.ErrorTypeIncompleteOptionGroup), rejected[0].ContextMap()["error_type"])
	assert.NotEqual(t, fields["invocation_id"], rejected[0].ContextMap()["invocation_id"])
}

func TestWithOptions(t *testing.T) {
	custom := NewOptionRegistry()
	f := NewTableFactory("stub-x", stubDialect{}, WithOptions(custom), WithOptions(nil), WithLogger(nil))
	assert.Same(t, custom.URL, f.RequiredOptions()[0])
}

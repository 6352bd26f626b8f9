package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption_Lookup(t *testing.T) {
	fetch := NewInt("scan.fetch-size").WithDefault(0)

	tests := []struct {
		name    string
		raw     RawOptions
		want    int
		present bool
		wantErr bool
	}{
		{name: "absent", raw: NewRawOptions(nil), want: 0, present: false},
		{name: "string value", raw: FromStrings(map[string]string{"scan.fetch-size": "500"}), want: 500, present: true},
		{name: "padded string", raw: FromStrings(map[string]string{"scan.fetch-size": " 42 "}), want: 42, present: true},
		{name: "native int", raw: NewRawOptions(map[string]any{"scan.fetch-size": 7}), want: 7, present: true},
		{name: "whole float", raw: NewRawOptions(map[string]any{"scan.fetch-size": float64(9)}), want: 9, present: true},
		{name: "fractional float", raw: NewRawOptions(map[string]any{"scan.fetch-size": 1.5}), present: true, wantErr: true},
		{name: "bool", raw: NewRawOptions(map[string]any{"scan.fetch-size": true}), present: true, wantErr: true},
		{name: "garbage", raw: FromStrings(map[string]string{"scan.fetch-size": "lots"}), present: true, wantErr: true},
		{name: "leading zero is decimal", raw: FromStrings(map[string]string{"scan.fetch-size": "010"}), want: 10, present: true},
		{name: "signed", raw: FromStrings(map[string]string{"scan.fetch-size": "+12"}), want: 12, present: true},
		{name: "hex", raw: FromStrings(map[string]string{"scan.fetch-size": "0x10"}), present: true, wantErr: true},
		{name: "binary", raw: FromStrings(map[string]string{"scan.fetch-size": "0b11"}), present: true, wantErr: true},
		{name: "underscore", raw: FromStrings(map[string]string{"scan.fetch-size": "1_000"}), present: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := fetch.Lookup(tt.raw)
			assert.Equal(t, tt.present, ok)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "scan.fetch-size")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOption_DefaultsAreNotPresence(t *testing.T) {
	autoCommit := NewBool("scan.auto-commit").WithDefault(true)
	raw := NewRawOptions(nil)

	_, ok, err := autoCommit.Lookup(raw)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, autoCommit.Ptr(raw))
	assert.Equal(t, 0, CountPresent(raw, autoCommit))

	v, err := autoCommit.Get(raw)
	require.NoError(t, err)
	assert.True(t, v)
	assert.True(t, autoCommit.Value(raw))
}

func TestOption_Int64AcceptsLargeValues(t *testing.T) {
	limit := NewInt64("lookup.error-limit")
	raw := FromStrings(map[string]string{"lookup.error-limit": "9223372036854775807"})

	v, err := limit.Get(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), v)

	v, err = limit.Get(FromStrings(map[string]string{"lookup.error-limit": "-010"}))
	require.NoError(t, err)
	assert.Equal(t, int64(-10), v)

	_, err = limit.Get(FromStrings(map[string]string{"lookup.error-limit": "0o17"}))
	require.Error(t, err)

	_, err = limit.Get(FromStrings(map[string]string{"lookup.error-limit": "9223372036854775808"}))
	require.Error(t, err)
}

func TestOption_Bool(t *testing.T) {
	replace := NewBool("sink.all-replace").WithDefault(false)

	v, err := replace.Get(FromStrings(map[string]string{"sink.all-replace": "TRUE"}))
	require.NoError(t, err)
	assert.True(t, v)

	_, err = replace.Get(FromStrings(map[string]string{"sink.all-replace": "maybe"}))
	assert.Error(t, err)

	// an undecodable value falls back to the default
	assert.False(t, replace.Value(FromStrings(map[string]string{"sink.all-replace": "maybe"})))
}

func TestOption_Metadata(t *testing.T) {
	schema := NewString("schema").WithDescription("Database schema")
	assert.Equal(t, "schema", schema.Key())
	assert.Equal(t, TypeString, schema.Type())
	assert.False(t, schema.HasDefault())
	assert.Nil(t, schema.DefaultValue())
	assert.Equal(t, "Database schema", schema.Description())

	period := NewInt64("lookup.cache.period-ms").WithDefault(3600000)
	assert.True(t, period.HasDefault())
	assert.Equal(t, int64(3600000), period.DefaultValue())
	def, ok := period.Default()
	assert.True(t, ok)
	assert.Equal(t, int64(3600000), def)
}

func TestKeyHelpers(t *testing.T) {
	user := NewString("username")
	pass := NewString("password")
	url := NewString("url")
	all := []Key{url, user, pass}

	raw := FromStrings(map[string]string{
		"username": "app",
		"colour":   "blue",
	})

	assert.Equal(t, []string{"url", "username", "password"}, Keys(all))
	assert.Equal(t, 1, CountPresent(raw, user, pass))
	assert.Equal(t, []string{"password", "url"}, MissingKeys(raw, all))
	assert.Equal(t, []string{"colour"}, UnknownKeys(raw, all))
	assert.NoError(t, user.Check(raw))
}

func TestRawOptions_Immutable(t *testing.T) {
	src := map[string]any{"url": "jdbc:mysql://localhost:3306/db"}
	raw := NewRawOptions(src)

	src["url"] = "changed"
	src["table-name"] = "orders"

	v, ok := raw.Get("url")
	require.True(t, ok)
	assert.Equal(t, "jdbc:mysql://localhost:3306/db", v)
	assert.False(t, raw.Contains("table-name"))

	copied := raw.Raw()
	copied["url"] = "mutated"
	v, _ = raw.Get("url")
	assert.Equal(t, "jdbc:mysql://localhost:3306/db", v)

	extended := raw.With("table-name", "orders")
	assert.True(t, extended.Contains("table-name"))
	assert.False(t, raw.Contains("table-name"))
	assert.Equal(t, 1, raw.Len())
	assert.Equal(t, []string{"table-name", "url"}, extended.Keys())
}

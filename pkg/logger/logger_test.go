package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json info", cfg: Config{Level: "info", Encoding: "json"}},
		{name: "console debug", cfg: Config{Level: "debug", Encoding: "console", Development: true}},
		{name: "invalid level", cfg: Config{Level: "loud", Encoding: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := newLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestForComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mu.Lock()
	prev := globalLogger
	globalLogger = zap.New(core)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		globalLogger = prev
		mu.Unlock()
	})

	ForComponent("registry").Info("registered")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "registry", logs.All()[0].ContextMap()["component"])
}

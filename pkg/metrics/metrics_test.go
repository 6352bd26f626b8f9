package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

func TestObserveInvocation(t *testing.T) {
	const connector = "metrics-test-x"

	ObserveInvocation(connector, KindSource, nil, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(FactoryInvocations.WithLabelValues(connector, KindSource, ResultSuccess)))

	err := nebulaerrors.Wrap(
		nebulaerrors.New(nebulaerrors.ErrorTypeNegativeValue, "negative"),
		nebulaerrors.ErrorTypeConfig, "failed to create table sink")
	ObserveInvocation(connector, KindSink, err, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(FactoryInvocations.WithLabelValues(connector, KindSink, ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ValidationErrors.WithLabelValues(connector, string(nebulaerrors.ErrorTypeNegativeValue))))

	ObserveInvocation(connector, KindSink, errors.New("plain"), time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(ValidationErrors.WithLabelValues(connector, string(nebulaerrors.ErrorTypeInternal))))
}

func TestTimer(t *testing.T) {
	timer := NewTimer("resolve")
	time.Sleep(2 * time.Millisecond)
	first := timer.Stop()
	assert.GreaterOrEqual(t, first, 2*time.Millisecond)
	assert.GreaterOrEqual(t, timer.Stop(), first)
	assert.Equal(t, "resolve", timer.Name())
}

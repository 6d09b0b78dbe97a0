package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false, Endpoint: "http://localhost:4318"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, shutdown(ctx), "noop shutdown should ignore a cancelled context")
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address so nothing is exported
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = "http://192.0.2.1:4318"

	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	always := sdktrace.AlwaysSample().Description()
	assert.Equal(t, always, sampler(1).Description())
	assert.Equal(t, always, sampler(0).Description())
	assert.NotEqual(t, always, sampler(0.25).Description())
}

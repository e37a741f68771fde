package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerContextShutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), nil, nil, nil)

	closerCalls := 0
	sc.SetStoreCloser(func() error {
		closerCalls++
		return nil
	})

	require.NoError(t, sc.Shutdown(context.Background()))
	assert.True(t, sc.IsShutdown())
	assert.Equal(t, 1, closerCalls)

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("lifecycle context not cancelled after shutdown")
	}

	// Second shutdown is a no-op.
	require.NoError(t, sc.Shutdown(context.Background()))
	assert.Equal(t, 1, closerCalls)
}

func TestServerContextShutdownPropagatesCloserError(t *testing.T) {
	sc := NewServerContext(context.Background(), nil, nil, nil)
	sc.SetStoreCloser(func() error {
		return errors.New("pool close failed")
	})

	err := sc.Shutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool close failed")
}

func TestServerContextMetricsNilWithoutInstrumentation(t *testing.T) {
	sc := NewServerContext(context.Background(), nil, nil, nil)
	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())
}

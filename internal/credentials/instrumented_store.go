package credentials

import (
	"context"
	"errors"
)

// StoreMetrics records grant store operations. Satisfied by
// instrumentation.Metrics.
type StoreMetrics interface {
	RecordStoreOperation(ctx context.Context, store, operation, status string)
}

// InstrumentedStore wraps a Store and records an operation metric per
// call. ErrNotFound counts as success: an absent grant is a normal
// outcome, not a store failure.
type InstrumentedStore struct {
	inner   Store
	name    string
	metrics StoreMetrics
}

// NewInstrumentedStore wraps inner. Name labels the backend in the
// metric ("file", "memory", "redis", "postgres").
func NewInstrumentedStore(inner Store, name string, metrics StoreMetrics) *InstrumentedStore {
	return &InstrumentedStore{
		inner:   inner,
		name:    name,
		metrics: metrics,
	}
}

func (s *InstrumentedStore) Load(ctx context.Context, tenant string) (*Grant, error) {
	g, err := s.inner.Load(ctx, tenant)
	s.record(ctx, "load", err)
	return g, err
}

func (s *InstrumentedStore) Save(ctx context.Context, tenant string, g *Grant) error {
	err := s.inner.Save(ctx, tenant, g)
	s.record(ctx, "save", err)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, tenant string) error {
	err := s.inner.Delete(ctx, tenant)
	s.record(ctx, "delete", err)
	return err
}

func (s *InstrumentedStore) record(ctx context.Context, operation string, err error) {
	status := "success"
	if err != nil && !errors.Is(err, ErrNotFound) {
		status = "error"
	}
	s.metrics.RecordStoreOperation(ctx, s.name, operation, status)
}

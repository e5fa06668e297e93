package component

import (
	"context"
	"sync/atomic"

	"github.com/uisync/selection-harness/framework"

	"golang.org/x/exp/slices"
)

// DataProvider is a source of items for a component.
type DataProvider[T comparable] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// ListDataProvider serves a fixed in-memory list.
type ListDataProvider[T comparable] struct {
	items []T
}

func NewListDataProvider[T comparable](items ...T) *ListDataProvider[T] {
	return &ListDataProvider[T]{items: slices.Clone(items)}
}

func (p *ListDataProvider[T]) Fetch(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(p.items), nil
}

// LoggingDataProvider counts and logs each request made to the provider it wraps, as
// "Backend request #N" with N starting at 0.
type LoggingDataProvider[T comparable] struct {
	delegate DataProvider[T]
	logger   framework.Logger
	requests atomic.Int32
}

func NewLoggingDataProvider[T comparable](delegate DataProvider[T], logger framework.Logger) *LoggingDataProvider[T] {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &LoggingDataProvider[T]{delegate: delegate, logger: logger}
}

func (p *LoggingDataProvider[T]) Fetch(ctx context.Context) ([]T, error) {
	n := p.requests.Add(1) - 1
	p.logger.Printf("Backend request #%d", n)
	return p.delegate.Fetch(ctx)
}

// Requests is how many times Fetch has been called.
func (p *LoggingDataProvider[T]) Requests() int {
	return int(p.requests.Load())
}

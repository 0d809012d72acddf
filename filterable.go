package filterator

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/roach88/filterator/internal/command"
	"github.com/roach88/filterator/internal/ir"
)

// Filterable is a chainable query handle over a slice of T.
//
// A Filterable is immutable; it is safe to run queries on one from several
// goroutines as long as the items themselves are not modified.
type Filterable[T any] struct {
	items  []T
	logger *slog.Logger
}

type options struct {
	logger *slog.Logger
}

// Option configures a Filterable.
type Option func(*options)

// WithLogger sets the logger commands write Debug records to.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New wraps a copy of items.
func New[T any](items []T, opts ...Option) *Filterable[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Filterable[T]{items: slices.Clone(items), logger: o.logger}
}

// derive wraps a result slice owned by a command, keeping the logger.
func (f *Filterable[T]) derive(items []T) *Filterable[T] {
	if items == nil {
		items = []T{}
	}
	return &Filterable[T]{items: items, logger: f.logger}
}

// Filter returns the items matching every lookup and every predicate.
func (f *Filterable[T]) Filter(where Lookups, preds ...func(T) bool) (*Filterable[T], error) {
	return command.Filter(f.items, where, preds, f.derive, f.logger).Execute()
}

// Exclude returns the items Filter would drop for the same arguments.
// With no arguments every item is dropped.
func (f *Filterable[T]) Exclude(where Lookups, preds ...func(T) bool) (*Filterable[T], error) {
	return command.Exclude(f.items, where, preds, f.derive, f.logger).Execute()
}

// OrderBy returns the items sorted by keys. A "-" prefix sorts that key
// in descending order. The sort is stable.
func (f *Filterable[T]) OrderBy(keys ...string) (*Filterable[T], error) {
	return command.Order(f.items, keys, f.derive, f.logger).Execute()
}

// Get returns the only item matching where and preds.
//
// With no arguments the Filterable itself must hold exactly one item.
// Returns an error matching ErrMultipleValuesReturned otherwise, including
// when nothing matches.
func (f *Filterable[T]) Get(where Lookups, preds ...func(T) bool) (T, error) {
	return command.Get(f.items, where, preds, f.logger).Execute()
}

// Count returns the number of items.
func (f *Filterable[T]) Count() int {
	return command.CountOf(f.items, f.logger).Execute()
}

// Exists reports whether there is at least one item.
func (f *Filterable[T]) Exists() bool {
	return command.ExistsIn(f.items, f.logger).Execute()
}

// Items returns a copy of the items.
func (f *Filterable[T]) Items() []T {
	return slices.Clone(f.items)
}

// All iterates over the items in order.
func (f *Filterable[T]) All() iter.Seq[T] {
	return slices.Values(f.items)
}

// Equal reports whether f and other hold equal items in the same order.
// Items compare by value, with pointers dereferenced.
func (f *Filterable[T]) Equal(other *Filterable[T]) bool {
	if other == nil {
		return false
	}
	return slices.EqualFunc(f.items, other.items, func(a, b T) bool {
		return ir.Equal(a, b)
	})
}

func (f *Filterable[T]) String() string {
	return fmt.Sprintf("<Filterable: %v>", f.items)
}

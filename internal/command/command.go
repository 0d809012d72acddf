package command

import (
	"log/slog"

	"github.com/roach88/filterator/internal/constraint"
	"github.com/roach88/filterator/internal/ir"
	"github.com/roach88/filterator/internal/ordering"
)

// base holds what every collection-producing command needs. wrap rebuilds
// the caller's wrapper around a result slice.
type base[T, W any] struct {
	items  []T
	wrap   func([]T) W
	logger *slog.Logger
}

func newBase[T, W any](items []T, wrap func([]T) W, logger *slog.Logger) base[T, W] {
	if logger == nil {
		logger = slog.Default()
	}
	return base[T, W]{items: items, wrap: wrap, logger: logger}
}

// Combine builds the conjunction of the keyword lookups and predicates.
// Lookups come first, in order, followed by the predicates.
func Combine[T any](where constraint.Lookups, preds []func(T) bool) (constraint.All, error) {
	all, err := constraint.BuildAll(where)
	if err != nil {
		return nil, err
	}
	for _, p := range preds {
		all = append(all, constraint.Predicate(func(item any) bool {
			v, _ := item.(T)
			return p(v)
		}))
	}
	return all, nil
}

// selectItems keeps the items for which c fits, in input order.
func selectItems[T any](items []T, c constraint.Constraint) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := c.Fits(item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// FilterCommand keeps items matching every lookup and predicate.
type FilterCommand[T, W any] struct {
	base[T, W]
	where constraint.Lookups
	preds []func(T) bool
}

// Filter creates a FilterCommand.
func Filter[T, W any](items []T, where constraint.Lookups, preds []func(T) bool, wrap func([]T) W, logger *slog.Logger) *FilterCommand[T, W] {
	return &FilterCommand[T, W]{base: newBase(items, wrap, logger), where: where, preds: preds}
}

// Execute runs the filter.
func (c *FilterCommand[T, W]) Execute() (W, error) {
	var zero W
	all, err := Combine(c.where, c.preds)
	if err != nil {
		return zero, err
	}
	out, err := selectItems(c.items, all)
	if err != nil {
		return zero, err
	}
	c.logger.Debug("filter",
		"lookups", c.where,
		"predicates", len(c.preds),
		"in", len(c.items),
		"out", len(out))
	return c.wrap(out), nil
}

// ExcludeCommand keeps the items a FilterCommand with the same arguments
// would drop.
type ExcludeCommand[T, W any] struct {
	base[T, W]
	where constraint.Lookups
	preds []func(T) bool
}

// Exclude creates an ExcludeCommand.
func Exclude[T, W any](items []T, where constraint.Lookups, preds []func(T) bool, wrap func([]T) W, logger *slog.Logger) *ExcludeCommand[T, W] {
	return &ExcludeCommand[T, W]{base: newBase(items, wrap, logger), where: where, preds: preds}
}

// Execute runs the exclusion.
func (c *ExcludeCommand[T, W]) Execute() (W, error) {
	var zero W
	all, err := Combine(c.where, c.preds)
	if err != nil {
		return zero, err
	}
	out, err := selectItems(c.items, constraint.Not{Constraint: all})
	if err != nil {
		return zero, err
	}
	c.logger.Debug("exclude",
		"lookups", c.where,
		"predicates", len(c.preds),
		"in", len(c.items),
		"out", len(out))
	return c.wrap(out), nil
}

// OrderCommand sorts items by order keys.
type OrderCommand[T, W any] struct {
	base[T, W]
	keys []string
}

// Order creates an OrderCommand. Keys prefixed with "-" sort descending.
func Order[T, W any](items []T, keys []string, wrap func([]T) W, logger *slog.Logger) *OrderCommand[T, W] {
	return &OrderCommand[T, W]{base: newBase(items, wrap, logger), keys: keys}
}

// Execute runs the sort.
func (c *OrderCommand[T, W]) Execute() (W, error) {
	var zero W
	keys, err := ordering.ParseKeys(c.keys)
	if err != nil {
		return zero, err
	}
	out, err := ordering.Sort(c.items, keys)
	if err != nil {
		return zero, err
	}
	c.logger.Debug("order",
		"keys", c.keys,
		"uniform", ordering.Uniform(keys),
		"items", len(out))
	return c.wrap(out), nil
}

// GetCommand returns the single item matching its arguments.
type GetCommand[T any] struct {
	items  []T
	where  constraint.Lookups
	preds  []func(T) bool
	logger *slog.Logger
}

// Get creates a GetCommand. With no lookups and no predicates the items
// themselves must hold exactly one element.
func Get[T any](items []T, where constraint.Lookups, preds []func(T) bool, logger *slog.Logger) *GetCommand[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetCommand[T]{items: items, where: where, preds: preds, logger: logger}
}

// Execute returns the matching item, or a MULTIPLE_VALUES_RETURNED error
// when zero or several items match.
func (c *GetCommand[T]) Execute() (T, error) {
	var zero T
	matched := c.items
	if len(c.where) > 0 || len(c.preds) > 0 {
		all, err := Combine(c.where, c.preds)
		if err != nil {
			return zero, err
		}
		if matched, err = selectItems(c.items, all); err != nil {
			return zero, err
		}
	}
	c.logger.Debug("get",
		"lookups", c.where,
		"predicates", len(c.preds),
		"matched", len(matched))
	if len(matched) != 1 {
		return zero, ir.NewMultipleValuesError(len(matched))
	}
	return matched[0], nil
}

// CountCommand reports the number of items.
type CountCommand[T any] struct {
	items  []T
	logger *slog.Logger
}

// CountOf creates a CountCommand.
func CountOf[T any](items []T, logger *slog.Logger) *CountCommand[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &CountCommand[T]{items: items, logger: logger}
}

// Execute returns len(items).
func (c *CountCommand[T]) Execute() int {
	n := len(c.items)
	c.logger.Debug("count", "items", n)
	return n
}

// ExistsCommand reports whether there is at least one item.
type ExistsCommand[T any] struct {
	items  []T
	logger *slog.Logger
}

// ExistsIn creates an ExistsCommand.
func ExistsIn[T any](items []T, logger *slog.Logger) *ExistsCommand[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExistsCommand[T]{items: items, logger: logger}
}

// Execute returns len(items) > 0.
func (c *ExistsCommand[T]) Execute() bool {
	ok := len(c.items) > 0
	c.logger.Debug("exists", "result", ok)
	return ok
}

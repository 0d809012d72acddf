package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/filterator"
	"github.com/roach88/filterator/internal/constraint"
	"github.com/roach88/filterator/internal/source"
)

// Kind describes the shape of a Result's value.
type Kind string

const (
	KindRecords Kind = "records"
	KindItem    Kind = "item"
	KindCount   Kind = "count"
	KindExists  Kind = "exists"
)

// Result is the outcome of a plan.
//
// Value holds []source.Record for KindRecords, source.Record for KindItem,
// int for KindCount and bool for KindExists.
type Result struct {
	Plan  string `json:"plan"`
	Kind  Kind   `json:"kind"`
	Value any    `json:"value"`
}

// Run loads the plan's source and applies its steps in order.
func Run(ctx context.Context, p *Plan, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	records, err := source.LoadContext(ctx, p.SourcePath(), source.Options{Table: p.Table, Path: p.Path})
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}
	logger.Debug("source loaded", "plan", p.Name, "source", p.SourcePath(), "records", len(records))

	q := filterator.New(records, filterator.WithLogger(logger))
	for i, step := range p.Steps {
		res, next, err := apply(q, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step.Op(), err)
		}
		if res != nil {
			res.Plan = p.Name
			return res, nil
		}
		q = next
	}

	return &Result{Plan: p.Name, Kind: KindRecords, Value: nonNil(q.Items())}, nil
}

// apply runs one step. Terminal steps return a Result, the others the
// next query.
func apply(q *filterator.Filterable[source.Record], step Step) (*Result, *filterator.Filterable[source.Record], error) {
	switch {
	case step.Filter != nil:
		next, err := q.Filter(constraint.Lookups(*step.Filter))
		return nil, next, err
	case step.Exclude != nil:
		next, err := q.Exclude(constraint.Lookups(*step.Exclude))
		return nil, next, err
	case step.OrderBy != nil:
		next, err := q.OrderBy(step.OrderBy...)
		return nil, next, err
	case step.Get != nil:
		item, err := q.Get(constraint.Lookups(*step.Get))
		if err != nil {
			return nil, nil, err
		}
		return &Result{Kind: KindItem, Value: item}, nil, nil
	case step.Count:
		return &Result{Kind: KindCount, Value: q.Count()}, nil, nil
	default:
		return &Result{Kind: KindExists, Value: q.Exists()}, nil, nil
	}
}

func nonNil(records []source.Record) []source.Record {
	if records == nil {
		return []source.Record{}
	}
	return records
}

// Package command executes one query operation over a slice of items.
//
// Each wrapper method builds a command bound to the items, its arguments
// and a wrap factory, executes it once and discards it. Commands that
// produce a collection hand the resulting slice to the factory so the
// caller gets its own wrapper type back:
//
//	out, err := command.Filter(items, where, preds, wrap, logger).Execute()
//
// Commands never modify the input slice. Every command logs one Debug
// record when it completes.
package command

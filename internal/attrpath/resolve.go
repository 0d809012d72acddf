// Package attrpath resolves double-underscore attribute paths against items.
//
// A path such as "vehicle__type" is split on Separator and walked one
// segment per hop. Each hop looks the segment up on the current value:
//
//  1. Getter implementations (GetField), including pointer receivers
//  2. maps with string-kinded keys
//  3. struct fields: `query` tag, exact Go name, `json` tag, then a
//     case- and underscore-insensitive match (number_of_legs -> NumberOfLegs)
//  4. exported methods, matched the same way
//
// After each hop a nil value ends resolution with a nil result, and a
// zero-argument callable is invoked and its result returned immediately,
// even when segments remain.
package attrpath

import (
	"reflect"
	"strings"
	"sync"

	"github.com/roach88/filterator/internal/ir"
)

// Separator joins path segments and separates a path from its operator keyword.
const Separator = "__"

// Getter is implemented by items that expose their attributes explicitly.
// GetField returns false when the item has no attribute called name.
type Getter interface {
	GetField(name string) (any, bool)
}

// Split returns the segments of path, rejecting empty paths and segments.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, ir.NewInvalidPathError(path, "empty path")
	}
	segments := strings.Split(path, Separator)
	for _, seg := range segments {
		if seg == "" {
			return nil, ir.NewInvalidPathError(path, "empty path segment")
		}
	}
	return segments, nil
}

// Resolve walks path on item and returns the value it names.
//
// Returns nil without error when a hop yields nil. Returns an
// ATTRIBUTE_NOT_FOUND error when a segment does not exist.
//
// NOTE: a zero-argument callable met along the way is the final producer of
// the value; remaining segments are not applied to its result.
func Resolve(item any, path string) (any, error) {
	segments, err := Split(path)
	if err != nil {
		return nil, err
	}

	current := item
	for _, seg := range segments {
		next, ok, err := lookup(current, seg)
		if err != nil {
			return nil, ir.WithPath(err, path)
		}
		if !ok {
			return nil, ir.NewAttributeNotFoundError(path, seg, current)
		}
		if ir.IsNil(next) {
			return nil, nil
		}
		if fn, ok := zeroArgFunc(next); ok {
			return invoke(fn, path)
		}
		current = next
	}
	return current, nil
}

// lookup finds seg on value. The bool is false when no attribute matches.
func lookup(value any, seg string) (any, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	if g, ok := asGetter(value); ok {
		v, found := g.GetField(seg)
		return v, found, nil
	}

	v := reflect.ValueOf(value)
	base := v
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Interface {
		if base.IsNil() {
			return nil, false, nil
		}
		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Map:
		if base.Type().Key().Kind() != reflect.String {
			return nil, false, nil
		}
		elem := base.MapIndex(reflect.ValueOf(seg).Convert(base.Type().Key()))
		if !elem.IsValid() {
			return nil, false, nil
		}
		return elem.Interface(), true, nil
	case reflect.Struct:
		if index, ok := fieldIndex(base.Type(), seg); ok {
			field, err := base.FieldByIndexErr(index)
			if err != nil {
				// nil embedded pointer on the way to a promoted field
				return nil, true, nil
			}
			if field.CanInterface() {
				return field.Interface(), true, nil
			}
		}
	}

	if m, ok := method(v, seg); ok {
		return m.Interface(), true, nil
	}
	return nil, false, nil
}

var getterType = reflect.TypeFor[Getter]()

// asGetter returns value as a Getter. A value whose pointer type has a
// pointer-receiver GetField is reached through an addressable copy.
func asGetter(value any) (Getter, bool) {
	if g, ok := value.(Getter); ok {
		return g, true
	}
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer || !reflect.PointerTo(t).Implements(getterType) {
		return nil, false
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	return ptr.Interface().(Getter), true
}

type fieldKey struct {
	t   reflect.Type
	seg string
}

// fieldIndexCache maps (struct type, segment) to a field index or nil for
// "no such field". Safe for concurrent queries.
var fieldIndexCache sync.Map

func fieldIndex(t reflect.Type, seg string) ([]int, bool) {
	key := fieldKey{t: t, seg: seg}
	if cached, ok := fieldIndexCache.Load(key); ok {
		index := cached.([]int)
		return index, index != nil
	}
	index := findField(t, seg)
	fieldIndexCache.Store(key, index)
	return index, index != nil
}

func findField(t reflect.Type, seg string) []int {
	fields := reflect.VisibleFields(t)
	exported := fields[:0:0]
	for _, f := range fields {
		if f.IsExported() && tagName(f, "query") != "-" {
			exported = append(exported, f)
		}
	}

	matchers := []func(reflect.StructField) bool{
		func(f reflect.StructField) bool { return tagName(f, "query") == seg },
		func(f reflect.StructField) bool { return f.Name == seg },
		func(f reflect.StructField) bool { return tagName(f, "json") == seg },
		func(f reflect.StructField) bool { return normalize(f.Name) == normalize(seg) },
	}
	for _, match := range matchers {
		for _, f := range exported {
			if match(f) {
				return f.Index
			}
		}
	}
	return nil
}

func tagName(f reflect.StructField, key string) string {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// normalize folds case and drops underscores so snake_case segments match
// Go identifiers.
func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// method finds an exported method named seg. Pointer-receiver methods are
// reachable from struct values through an addressable copy.
func method(v reflect.Value, seg string) (reflect.Value, bool) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Pointer {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}

	if m := v.MethodByName(seg); m.IsValid() {
		return m, true
	}
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		if normalize(t.Method(i).Name) == normalize(seg) {
			return v.Method(i), true
		}
	}
	return reflect.Value{}, false
}

package attrpath

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// zeroArgFunc reports whether x is a func that can be called without arguments.
func zeroArgFunc(x any) (reflect.Value, bool) {
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, false
	}
	t := v.Type()
	if t.NumIn() == 0 || (t.IsVariadic() && t.NumIn() == 1) {
		return v, true
	}
	return reflect.Value{}, false
}

// invoke calls fn and returns its first result.
//
// Funcs with no results yield nil. A non-nil trailing error result is
// returned wrapped with the path being resolved.
func invoke(fn reflect.Value, path string) (any, error) {
	out := fn.Call(nil)
	if len(out) == 0 {
		return nil, nil
	}

	last := out[len(out)-1]
	if len(out) > 1 && last.Type().Implements(errorType) && !last.IsNil() {
		return nil, fmt.Errorf("resolve %s: %w", path, last.Interface().(error))
	}
	return out[0].Interface(), nil
}

package ir

import (
	"cmp"
	"reflect"
	"strings"
	"unicode/utf8"
)

// numClass groups reflect kinds that compare numerically.
type numClass int

const (
	notNumber numClass = iota
	signedNumber
	unsignedNumber
	floatNumber
)

func classify(v reflect.Value) numClass {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	default:
		return notNumber
	}
}

// indirect unwraps interfaces and non-nil pointers.
// Returns an invalid Value for nil.
func indirect(x any) reflect.Value {
	v := reflect.ValueOf(x)
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// IsNil reports whether x is nil or a nil pointer, interface or func.
// Nil slices and maps are values (empty collections), not nil.
func IsNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return v.IsNil()
	}
	return false
}

// Equal reports whether a and b hold the same value.
//
// Numbers compare by value across kinds, string kinds by content, nil only
// equals nil. Everything else falls back to reflect.DeepEqual on the
// dereferenced values.
func Equal(a, b any) bool {
	va, vb := indirect(a), indirect(b)
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && !vb.IsValid()
	}

	if classify(va) != notNumber && classify(vb) != notNumber {
		return compareNumbers(va, vb) == 0
	}
	if va.Kind() == reflect.String && vb.Kind() == reflect.String {
		return va.String() == vb.String()
	}
	if va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool {
		return va.Bool() == vb.Bool()
	}
	return reflect.DeepEqual(va.Interface(), vb.Interface())
}

// Compare orders a against b, returning -1, 0 or +1.
//
// Supported: numbers of any kind, string kinds, bools (false < true),
// slices and arrays (lexicographic), and values whose type has a method
// Compare(T) int such as time.Time. Two nils compare equal. Anything else
// returns a TYPE_MISMATCH error.
func Compare(a, b any) (int, error) {
	va, vb := indirect(a), indirect(b)
	return compareValues(va, vb)
}

func compareValues(va, vb reflect.Value) (int, error) {
	if !va.IsValid() || !vb.IsValid() {
		if !va.IsValid() && !vb.IsValid() {
			return 0, nil
		}
		return 0, NewTypeMismatchError("cannot order %s and %s", typeName(va), typeName(vb))
	}

	if classify(va) != notNumber && classify(vb) != notNumber {
		return compareNumbers(va, vb), nil
	}

	switch {
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return strings.Compare(va.String(), vb.String()), nil
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		return compareBools(va.Bool(), vb.Bool()), nil
	case isSequence(va) && isSequence(vb):
		return compareSequences(va, vb)
	}

	if c, ok := compareMethod(va, vb); ok {
		return c, nil
	}
	return 0, NewTypeMismatchError("cannot order %s and %s", typeName(va), typeName(vb))
}

func compareNumbers(va, vb reflect.Value) int {
	ca, cb := classify(va), classify(vb)
	switch {
	case ca == floatNumber || cb == floatNumber:
		return cmp.Compare(toFloat(va), toFloat(vb))
	case ca == signedNumber && cb == signedNumber:
		return cmp.Compare(va.Int(), vb.Int())
	case ca == unsignedNumber && cb == unsignedNumber:
		return cmp.Compare(va.Uint(), vb.Uint())
	case ca == signedNumber:
		if va.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(va.Int()), vb.Uint())
	default:
		if vb.Int() < 0 {
			return 1
		}
		return cmp.Compare(va.Uint(), uint64(vb.Int()))
	}
}

func toFloat(v reflect.Value) float64 {
	switch classify(v) {
	case signedNumber:
		return float64(v.Int())
	case unsignedNumber:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func compareSequences(va, vb reflect.Value) (int, error) {
	n := min(va.Len(), vb.Len())
	for i := 0; i < n; i++ {
		c, err := compareValues(indirect(va.Index(i).Interface()), indirect(vb.Index(i).Interface()))
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(va.Len(), vb.Len()), nil
}

// compareMethod uses a Compare(T) int method when both values share type T.
func compareMethod(va, vb reflect.Value) (int, bool) {
	if va.Type() != vb.Type() {
		return 0, false
	}
	m := va.MethodByName("Compare")
	if !m.IsValid() {
		return 0, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.In(0) != va.Type() || mt.Out(0).Kind() != reflect.Int {
		return 0, false
	}
	out := m.Call([]reflect.Value{vb})
	return cmp.Compare(out[0].Int(), 0), true
}

// Truthy reports the boolean coercion of x.
//
// nil, false, zero numbers and empty strings, slices, arrays and maps are
// false. Every other value, including any struct, is true.
func Truthy(x any) bool {
	v := indirect(x)
	if !v.IsValid() {
		return false
	}
	switch classify(v) {
	case signedNumber:
		return v.Int() != 0
	case unsignedNumber:
		return v.Uint() != 0
	case floatNumber:
		return v.Float() != 0
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len() > 0
	case reflect.Func:
		return !v.IsNil()
	}
	return true
}

// Len returns the size of x. Strings are measured in runes.
func Len(x any) (int, error) {
	v := indirect(x)
	if !v.IsValid() {
		return 0, NewTypeMismatchError("nil has no length")
	}
	switch v.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(v.String()), nil
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len(), nil
	}
	return 0, NewTypeMismatchError("%s has no length", typeName(v))
}

// Contains reports whether elem is a member of container.
//
// Strings test for a substring, slices and arrays for an Equal element and
// maps for an Equal key.
func Contains(container, elem any) (bool, error) {
	v := indirect(container)
	if !v.IsValid() {
		return false, NewTypeMismatchError("nil is not a container")
	}

	switch v.Kind() {
	case reflect.String:
		s, err := AsString(elem)
		if err != nil {
			return false, NewTypeMismatchError("substring must be a string, got %T", elem)
		}
		return strings.Contains(v.String(), s), nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if Equal(v.Index(i).Interface(), elem) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if Equal(iter.Key().Interface(), elem) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, NewTypeMismatchError("%s is not a container", typeName(v))
}

// AsString returns the content of a string-kinded value.
func AsString(x any) (string, error) {
	v := indirect(x)
	if !v.IsValid() || v.Kind() != reflect.String {
		return "", NewTypeMismatchError("expected a string, got %T", x)
	}
	return v.String(), nil
}

// IsInteger reports whether x holds a signed or unsigned integer.
func IsInteger(x any) bool {
	c := classify(indirect(x))
	return c == signedNumber || c == unsignedNumber
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}

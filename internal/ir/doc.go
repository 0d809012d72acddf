// Package ir provides the value model shared by every filterator package.
//
// This package contains no query logic. All other internal packages import
// ir; ir imports nothing internal. This keeps value semantics and the error
// taxonomy in one foundational layer with no circular dependencies.
//
// Value semantics:
//   - Equal: numeric kinds compare by value (int 23 equals float 23.0),
//     string kinds compare by content, everything else uses deep equality
//   - Compare: numbers, strings, bools, slices (lexicographic) and any type
//     with a Compare(T) int method (time.Time); anything else is a
//     TYPE_MISMATCH
//   - Truthy: nil, zero numbers, false and empty strings/slices/maps are false
//   - Len: length of strings (in runes), slices, arrays, maps and channels
//
// Pointers are dereferenced before any of the above. A nil pointer is nil.
package ir

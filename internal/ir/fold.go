package ir

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s normalized to NFC and case folded, for caseless matching.
// A new Caser is built per call since Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/filterator/internal/ir"
)

type vehicle struct {
	Type         string
	Manufacturer string
}

type person struct {
	Name     string
	Age      int
	Sex      string
	Children []*person
	Vehicle  *vehicle
}

func fixture() (marta, joe, alice, bob *person) {
	marta = &person{Name: "Marta", Age: 2, Sex: "F"}
	joe = &person{Name: "Joe", Age: 7, Sex: "M"}
	alice = &person{
		Name: "Alice", Age: 23, Sex: "F",
		Children: []*person{marta},
		Vehicle:  &vehicle{Type: "bicycle", Manufacturer: "nsbikes"},
	}
	bob = &person{
		Name: "Bob", Age: 31, Sex: "M",
		Children: []*person{joe},
		Vehicle:  &vehicle{Type: "car", Manufacturer: "mazda"},
	}
	return marta, joe, alice, bob
}

func TestField_Fits(t *testing.T) {
	marta, _, alice, bob := fixture()

	tests := []struct {
		name string
		key  string
		val  any
		item *person
		want bool
	}{
		{"exact match", "name", "Bob", bob, true},
		{"exact miss", "name", "bob", bob, false},
		{"explicit exact", "age__exact", 31, bob, true},
		{"exact numeric cross kind", "age", int64(31), bob, true},
		{"exact nil against nil", "vehicle__type", nil, marta, true},
		{"iexact", "name__iexact", "BOB", bob, true},
		{"exact string", "name", "Alice", alice, true},
		{"contains", "name__contains", "o", bob, true},
		{"contains miss", "name__contains", "o", alice, false},
		{"startswith", "vehicle__manufacturer__startswith", "ns", alice, true},
		{"startswith case-sensitive", "vehicle__manufacturer__startswith", "NS", alice, false},
		{"istartswith", "vehicle__manufacturer__istartswith", "NS", alice, true},
		{"endswith", "vehicle__manufacturer__endswith", "da", bob, true},
		{"iendswith", "vehicle__manufacturer__iendswith", "DA", bob, true},
		{"regex anchored", "name__regex", "A.i", alice, true},
		{"regex not searched", "name__regex", "lic", alice, false},
		{"regex alternation anchored", "name__regex", "x|ob", bob, false},
		{"regex alternation at start", "name__regex", "x|Bo", bob, true},
		{"gt", "age__gt", 23, bob, true},
		{"gt equal", "age__gt", 31, bob, false},
		{"gte", "age__gte", 31, bob, true},
		{"lt", "age__lt", 10, marta, true},
		{"lte float", "age__lte", 2.0, marta, true},
		{"isnull false on empty children", "children__isnull", false, marta, true},
		{"isnull false with children", "children__isnull", false, alice, false},
		{"isnull true on nil vehicle", "vehicle__isnull", true, marta, false},
		{"count", "children__count", 1, alice, true},
		{"count zero on nil slice", "children__count", 0, marta, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Build(tt.key, tt.val)
			require.NoError(t, err)
			got, err := f.Fits(tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_FitsErrors(t *testing.T) {
	marta, _, alice, _ := fixture()

	tests := []struct {
		name string
		key  string
		val  any
		item *person
		code ir.ErrorCode
	}{
		{"missing attribute", "height", 1, alice, ir.ErrCodeAttributeNotFound},
		{"order string against int", "name__gt", 3, alice, ir.ErrCodeTypeMismatch},
		{"order nil", "vehicle__type__gt", "a", marta, ir.ErrCodeTypeMismatch},
		{"startswith on int", "age__startswith", "2", alice, ir.ErrCodeTypeMismatch},
		{"count of int", "age__count", 1, alice, ir.ErrCodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Build(tt.key, tt.val)
			require.NoError(t, err)
			_, err = f.Fits(tt.item)
			require.Error(t, err)
			assert.True(t, ir.HasCode(err, tt.code), "got %v", err)

			var e *ir.Error
			require.ErrorAs(t, err, &e)
			assert.NotEmpty(t, e.Path)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		path string
		op   Operator
		val  any
		code ir.ErrorCode
	}{
		{"unsupported operator", "age", Operator("between"), 1, ir.ErrCodeUnsupportedOperator},
		{"empty path", "", Exact, 1, ir.ErrCodeInvalidPath},
		{"startswith non-string", "name", StartsWith, 1, ir.ErrCodeInvalidValue},
		{"bad regex", "name", Regex, "[", ir.ErrCodeInvalidValue},
		{"regex closing the anchor group", "name", Regex, "x)|(y", ir.ErrCodeInvalidValue},
		{"isnull non-bool", "vehicle", IsNull, "yes", ir.ErrCodeInvalidValue},
		{"count non-integer", "children", Count, 1.5, ir.ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.path, tt.op, tt.val)
			assert.Nil(t, f)
			assert.True(t, ir.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestAllAndNot(t *testing.T) {
	marta, joe, alice, bob := fixture()

	female, err := Build("sex", "F")
	require.NoError(t, err)
	adult, err := Build("age__gte", 18)
	require.NoError(t, err)

	both := All{female, adult}
	for _, tc := range []struct {
		item *person
		want bool
	}{{marta, false}, {joe, false}, {alice, true}, {bob, false}} {
		got, err := both.Fits(tc.item)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.item.Name)

		neg, err := Not{both}.Fits(tc.item)
		require.NoError(t, err)
		assert.Equal(t, !tc.want, neg, tc.item.Name)
	}

	ok, err := All{}.Fits(bob)
	require.NoError(t, err)
	assert.True(t, ok, "empty conjunction holds")
}

func TestAll_StopsAtFirstFalse(t *testing.T) {
	_, _, _, bob := fixture()
	female, err := Build("sex", "F")
	require.NoError(t, err)
	missing, err := Build("height", 1)
	require.NoError(t, err)

	ok, err := All{female, missing}.Fits(bob)
	require.NoError(t, err, "missing attribute is never evaluated")
	assert.False(t, ok)

	_, err = Not{All{missing}}.Fits(bob)
	assert.True(t, ir.HasCode(err, ir.ErrCodeAttributeNotFound))
}

func TestPredicate(t *testing.T) {
	_, _, alice, bob := fixture()
	hasCar := Predicate(func(item any) bool {
		p := item.(*person)
		return p.Vehicle != nil && p.Vehicle.Type == "car"
	})

	ok, err := hasCar.Fits(bob)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = All{hasCar}.Fits(alice)
	require.NoError(t, err)
	assert.False(t, ok)
}

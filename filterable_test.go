package filterator

import (
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Vehicle struct {
	Type         string
	Manufacturer string
}

type Person struct {
	Name     string
	Age      int
	Sex      string
	Children []*Person
	Vehicle  *Vehicle
}

type fixture struct {
	marta, joe, alice, bob *Person
	people                 *Filterable[*Person]
}

func newFixture() fixture {
	car := &Vehicle{Type: "car", Manufacturer: "ford"}
	bicycle := &Vehicle{Type: "bicycle", Manufacturer: "nsbikes"}

	f := fixture{}
	f.marta = &Person{Name: "Marta", Age: 2, Sex: "F"}
	f.joe = &Person{Name: "Joe", Age: 7, Sex: "M"}
	f.alice = &Person{Name: "Alice", Age: 23, Sex: "F", Children: []*Person{f.marta}, Vehicle: bicycle}
	f.bob = &Person{Name: "Bob", Age: 31, Sex: "M", Children: []*Person{f.marta, f.joe}, Vehicle: car}
	f.people = New([]*Person{f.marta, f.joe, f.alice, f.bob}, WithLogger(slog.New(slog.DiscardHandler)))
	return f
}

func threeLetterName(p *Person) bool { return len(p.Name) == 3 }

func TestFilter(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		where Lookups
		preds []func(*Person) bool
		want  []*Person
	}{
		{"multiple constraints", Where("sex", "M").And("age__gte", 18), nil, []*Person{f.bob}},
		{"by string", Where("name", "Bob"), nil, []*Person{f.bob}},
		{"by int", Where("age", 23), nil, []*Person{f.alice}},
		{"iexact", Where("name__iexact", "bob"), nil, []*Person{f.bob}},
		{"contains", Where("name__contains", "o"), nil, []*Person{f.joe, f.bob}},
		{"startswith", Where("name__startswith", "B"), nil, []*Person{f.bob}},
		{"istartswith", Where("name__istartswith", "b"), nil, []*Person{f.bob}},
		{"endswith", Where("name__endswith", "ob"), nil, []*Person{f.bob}},
		{"iendswith", Where("name__iendswith", "OB"), nil, []*Person{f.bob}},
		{"regex", Where("name__regex", "^[AB].*$"), nil, []*Person{f.alice, f.bob}},
		{"gt", Where("age__gt", 23), nil, []*Person{f.bob}},
		{"gte", Where("age__gte", 23), nil, []*Person{f.alice, f.bob}},
		{"lt", Where("age__lt", 7), nil, []*Person{f.marta}},
		{"lte", Where("age__lte", 7), nil, []*Person{f.marta, f.joe}},
		{"isnull false", Where("children__isnull", false), nil, []*Person{f.marta, f.joe}},
		{"isnull true", Where("children__isnull", true), nil, []*Person{f.alice, f.bob}},
		{"count", Where("children__count", 1), nil, []*Person{f.alice}},
		{"callable", nil, []func(*Person) bool{threeLetterName}, []*Person{f.joe, f.bob}},
		{
			"multiple callables", nil,
			[]func(*Person) bool{threeLetterName, func(p *Person) bool { return p.Age > 18 }},
			[]*Person{f.bob},
		},
		{"callable and constraint", Where("age__gt", 18), []func(*Person) bool{threeLetterName}, []*Person{f.bob}},
		{"deep", Where("vehicle__type", "bicycle"), nil, []*Person{f.alice}},
		{"deep manufacturer", Where("vehicle__manufacturer__istartswith", "NS"), nil, []*Person{f.alice}},
		{"no arguments", nil, nil, []*Person{f.marta, f.joe, f.alice, f.bob}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.people.Filter(tt.where, tt.preds...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Items())
		})
	}
}

func TestFilter_Routineness(t *testing.T) {
	f := newFixture()

	men, err := f.people.Filter(Where("sex", "M"))
	require.NoError(t, err)
	assert.Equal(t, []*Person{f.joe, f.bob}, men.Items())

	mature, err := men.Filter(Where("age__gte", 18))
	require.NoError(t, err)
	assert.Equal(t, []*Person{f.bob}, mature.Items())

	assert.Equal(t, []*Person{f.joe, f.bob}, men.Items())
	assert.Equal(t, 4, f.people.Count())
}

func TestNew_CopiesInput(t *testing.T) {
	items := []int{3, 1, 2}
	q := New(items)
	items[0] = 99

	assert.Equal(t, []int{3, 1, 2}, q.Items())

	out := q.Items()
	out[1] = 42
	assert.Equal(t, []int{3, 1, 2}, q.Items())
}

func TestExclude(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		where Lookups
		preds []func(*Person) bool
		want  []*Person
	}{
		{"men", Where("sex", "M"), nil, []*Person{f.marta, f.alice}},
		{"all constraints must hold to drop", Where("sex", "F").And("age", 23), nil, []*Person{f.marta, f.joe, f.bob}},
		{"callable", nil, []func(*Person) bool{threeLetterName}, []*Person{f.marta, f.alice}},
		{"deep attribute", Where("vehicle__type", "car"), nil, []*Person{f.marta, f.joe, f.alice}},
		{"no arguments drops everything", nil, nil, []*Person{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.people.Exclude(tt.where, tt.preds...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Items())
		})
	}
}

func TestFilterExcludeComplement(t *testing.T) {
	f := newFixture()

	for _, where := range []Lookups{
		Where("sex", "M"),
		Where("age__gte", 7).And("sex", "F"),
		Where("vehicle__type", "car"),
		Where("name__regex", "[MJ]"),
		nil,
	} {
		kept, err := f.people.Filter(where)
		require.NoError(t, err)
		dropped, err := f.people.Exclude(where)
		require.NoError(t, err)

		for p := range f.people.All() {
			inKept := slices.Contains(kept.Items(), p)
			inDropped := slices.Contains(dropped.Items(), p)
			assert.NotEqual(t, inKept, inDropped, "%s with %v", p.Name, where)
		}
	}
}

func TestGet(t *testing.T) {
	f := newFixture()

	bobs, err := f.people.Filter(Where("name", "Bob"))
	require.NoError(t, err)
	got, err := bobs.Get(nil)
	require.NoError(t, err)
	assert.Same(t, f.bob, got)

	got, err = f.people.Get(Where("name", "Bob"))
	require.NoError(t, err)
	assert.Same(t, f.bob, got)

	got, err = f.people.Get(nil, func(p *Person) bool { return p.Name == "Bob" })
	require.NoError(t, err)
	assert.Same(t, f.bob, got)

	_, err = f.people.Get(Where("sex", "M"))
	assert.ErrorIs(t, err, ErrMultipleValuesReturned)
	assert.True(t, IsMultipleValuesReturned(err))

	_, err = f.people.Get(Where("name", "Cris"))
	assert.ErrorIs(t, err, ErrMultipleValuesReturned, "zero matches is also not exactly one")

	_, err = New([]int{}).Get(nil)
	assert.ErrorIs(t, err, ErrMultipleValuesReturned)

	n, err := New([]int{5}).Get(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCountAndExists(t *testing.T) {
	f := newFixture()

	men, err := f.people.Filter(Where("sex", "M"))
	require.NoError(t, err)
	assert.Equal(t, 2, men.Count())
	assert.True(t, men.Exists())

	nobody, err := f.people.Filter(Where("age", 200))
	require.NoError(t, err)
	assert.Equal(t, 0, nobody.Count())
	assert.False(t, nobody.Exists())

	cris, err := f.people.Filter(Where("name", "Cris"))
	require.NoError(t, err)
	assert.False(t, cris.Exists())

	for _, q := range []*Filterable[*Person]{f.people, men, nobody, New[*Person](nil)} {
		assert.Equal(t, q.Count() == 0, !q.Exists())
	}
}

type Creature struct {
	Name         string
	NumberOfLegs int
	NumberOfEyes int
}

func TestOrderBy(t *testing.T) {
	dog := Creature{Name: "dog", NumberOfLegs: 4, NumberOfEyes: 2}
	spider := Creature{Name: "spider", NumberOfLegs: 8, NumberOfEyes: 9000}
	human := Creature{Name: "human", NumberOfLegs: 2, NumberOfEyes: 2}
	creatures := New([]Creature{dog, human, spider})

	tests := []struct {
		name string
		keys []string
		want []Creature
	}{
		{"int", []string{"number_of_legs"}, []Creature{human, dog, spider}},
		{"equal items keep original order", []string{"number_of_eyes"}, []Creature{dog, human, spider}},
		{"multiple ints", []string{"number_of_eyes", "number_of_legs"}, []Creature{human, dog, spider}},
		{"reversed key", []string{"-number_of_legs"}, []Creature{spider, dog, human}},
		{"multiple reversed keys", []string{"-number_of_eyes", "-number_of_legs"}, []Creature{spider, dog, human}},
		{"mixed directions", []string{"-number_of_eyes", "number_of_legs"}, []Creature{spider, human, dog}},
		{"string", []string{"name"}, []Creature{dog, human, spider}},
		{"string reversed", []string{"-name"}, []Creature{spider, human, dog}},
		{"Go field names", []string{"NumberOfLegs"}, []Creature{human, dog, spider}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := creatures.OrderBy(tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Items())
		})
	}

	assert.Equal(t, []Creature{dog, human, spider}, creatures.Items())
}

func TestChaining(t *testing.T) {
	f := newFixture()

	adults, err := f.people.Filter(Where("age__gte", 18))
	require.NoError(t, err)
	ordered, err := adults.OrderBy("-age")
	require.NoError(t, err)
	first, err := ordered.Filter(nil, func(p *Person) bool { return p.Vehicle != nil })
	require.NoError(t, err)

	assert.Equal(t, []*Person{f.bob, f.alice}, first.Items())
	assert.True(t, first.Equal(ordered))
	assert.False(t, first.Equal(adults))
	assert.False(t, first.Equal(nil))
}

func TestErrors(t *testing.T) {
	f := newFixture()

	_, err := f.people.Filter(Where("height__gt", 180))
	assert.ErrorIs(t, err, ErrAttributeNotFound)
	assert.True(t, IsAttributeNotFound(err))

	_, err = f.people.Filter(Where("name__gt", 3))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.True(t, IsTypeMismatch(err))

	_, err = f.people.Filter(Where("name__startswith", 3))
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.True(t, IsInvalidQuery(err))

	_, err = f.people.OrderBy("")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.True(t, IsInvalidQuery(err))

	_, err = f.people.OrderBy("vehicle__type")
	assert.ErrorIs(t, err, ErrTypeMismatch, "people without a vehicle cannot be ordered against a type")

	assert.False(t, IsInvalidQuery(nil))
	assert.NotErrorIs(t, err, ErrUnsupportedOperator)
}

type bag map[string]any

type tagged struct {
	values map[string]any
}

func (t tagged) GetField(name string) (any, bool) {
	v, ok := t.values[name]
	return v, ok
}

var _ FieldGetter = tagged{}

func TestItemKinds(t *testing.T) {
	maps := New([]bag{{"name": "a", "size": 3}, {"name": "b", "size": 1}})
	got, err := maps.OrderBy("size")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Items()[0]["name"])

	getters := New([]tagged{
		{values: map[string]any{"colour": "red"}},
		{values: map[string]any{"colour": "blue"}},
	})
	blue, err := getters.Get(Where("colour__endswith", "ue"))
	require.NoError(t, err)
	assert.Equal(t, "blue", blue.values["colour"])
}

func TestConcurrentQueries(t *testing.T) {
	f := newFixture()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			men, err := f.people.Filter(Where("sex", "M"))
			assert.NoError(t, err)
			assert.Equal(t, 2, men.Count())
			_, err = f.people.OrderBy("-age", "name")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, f.people.Count())
}

func TestOperators(t *testing.T) {
	ops := Operators()
	assert.Contains(t, ops, Operator("istartswith"))
	assert.Len(t, ops, 14)
}

func TestString(t *testing.T) {
	assert.Equal(t, "<Filterable: [1 2 3]>", New([]int{1, 2, 3}).String())
}

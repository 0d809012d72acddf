// Package filterator provides chainable queries over in-memory collections.
//
// Wrap a slice with New and narrow, exclude, sort or fetch from it:
//
//	people := filterator.New(all)
//	men, err := people.Filter(filterator.Where("sex", "M"))
//	adults, err := men.Filter(filterator.Where("age__gte", 18))
//	bob, err := people.Get(filterator.Where("name", "Bob"))
//	oldest, err := people.OrderBy("-age", "name")
//
// Lookup keys are attribute paths joined by "__", optionally followed by an
// operator keyword: "vehicle__type", "age__gte", "name__istartswith".
// A key whose final segment is not a keyword compares with exact equality.
// See Operators for the supported keywords.
//
// Attributes are resolved on structs (query tag, Go name, json tag or a
// snake_case form of the Go name), on maps with string keys, on exported
// methods, and on values implementing FieldGetter.
//
// Every operation returns a new wrapper. The wrapped slice is copied by New
// and never modified, so derived queries do not affect their base.
package filterator

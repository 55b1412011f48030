package statemachine

// Matcher is a composable predicate over a value of type T, narrowed to the
// variant R. Matching is conjunctive: the variant check and every Where
// predicate must hold.
//
// Matchers are immutable; Where returns a new matcher so a shared base
// matcher can be refined at several registration sites independently.
type Matcher[T, R any] struct {
	predicates []func(T) bool
}

// Any returns a matcher accepting every value whose runtime variant is R.
func Any[T, R any]() Matcher[T, R] {
	return Matcher[T, R]{
		predicates: []func(T) bool{func(v T) bool {
			_, ok := any(v).(R)
			return ok
		}},
	}
}

// Eq returns a matcher accepting exactly the given value.
func Eq[T any, R comparable](value R) Matcher[T, R] {
	return Any[T, R]().Where(func(v R) bool { return v == value })
}

// Where returns a new matcher that additionally requires the predicate to
// hold. The predicate runs only after the value has been narrowed to R.
func (m Matcher[T, R]) Where(predicate func(R) bool) Matcher[T, R] {
	predicates := make([]func(T) bool, len(m.predicates), len(m.predicates)+1)
	copy(predicates, m.predicates)
	predicates = append(predicates, func(v T) bool {
		return predicate(any(v).(R))
	})
	return Matcher[T, R]{predicates: predicates}
}

// Matches reports whether all predicates accept the value. It never errors;
// a non-matching value simply yields false.
func (m Matcher[T, R]) Matches(value T) bool {
	for _, p := range m.predicates {
		if !p(value) {
			return false
		}
	}
	return true
}

// ValueMatcher is the erased form of Matcher stored in graph tables, where
// entries registered for different variants must share one element type.
type ValueMatcher[T any] interface {
	Matches(value T) bool
}

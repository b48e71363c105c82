package solution

import "encoding/json"

// Tunable is a hyperparameter holding either one value or, when the
// parameter was given as a list, a space of candidates for random search.
// Value is the first candidate in that case.
type Tunable[T any] struct {
	Value T
	Space []T
}

// Fixed returns a Tunable holding a single value.
func Fixed[T any](v T) Tunable[T] {
	return Tunable[T]{Value: v}
}

// Search returns a Tunable over the given candidates.
func Search[T any](candidates ...T) Tunable[T] {
	t := Tunable[T]{Space: candidates}
	if len(candidates) > 0 {
		t.Value = candidates[0]
	}
	return t
}

// IsSearch reports whether t holds a candidate space.
func (t Tunable[T]) IsSearch() bool { return len(t.Space) > 0 }

// MarshalJSON writes the candidate list for a search space and the bare
// value otherwise.
func (t Tunable[T]) MarshalJSON() ([]byte, error) {
	if t.IsSearch() {
		return json.Marshal(t.Space)
	}
	return json.Marshal(t.Value)
}

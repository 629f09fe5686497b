package entities

// Outcome is the result of an optional extraction: either the features or
// the reason they are unavailable. The zero value is unavailable.
type Outcome[T any] struct {
	value  *T
	reason string
}

// Available wraps successfully extracted features
func Available[T any](v *T) Outcome[T] {
	if v == nil {
		return Unavailable[T]("extractor returned no features")
	}
	return Outcome[T]{value: v}
}

// Unavailable marks a modality as absent for the given reason
func Unavailable[T any](reason string) Outcome[T] {
	return Outcome[T]{reason: reason}
}

// Get returns the features and whether they are present
func (o Outcome[T]) Get() (*T, bool) {
	return o.value, o.value != nil
}

// Ok reports whether the features are present
func (o Outcome[T]) Ok() bool {
	return o.value != nil
}

// Reason explains why the modality is absent
func (o Outcome[T]) Reason() string {
	if o.value == nil && o.reason == "" {
		return "not attempted"
	}
	return o.reason
}

// Package result provides the two-outcome value used by generated
// error-union adapters.
package result

import "fmt"

// Result holds either a success value of type T or a failure of type E.
// The zero value is a failure carrying the zero E.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Ok returns a successful result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v, ok: true}
}

// Fail returns a failed result.
func Fail[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk returns true for a successful result.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// IsFail returns true for a failed result.
func (r Result[T, E]) IsFail() bool {
	return !r.ok
}

// Value returns the success value and whether the result succeeded.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// Err returns the failure and whether the result failed.
func (r Result[T, E]) Err() (E, bool) {
	return r.err, !r.ok
}

// ValueOr returns the success value, or fallback for a failure.
func (r Result[T, E]) ValueOr(fallback T) T {
	if r.ok {
		return r.value
	}

	return fallback
}

// String returns a human-readable representation of the result.
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}

	return fmt.Sprintf("Fail(%v)", r.err)
}

// Map transforms the success value. Failures pass through unchanged.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Fail[U](r.err)
	}

	return Ok[U, E](fn(r.value))
}

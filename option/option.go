// Package option provides an optional value used by generated safe downcasts.
package option

import "fmt"

// Option holds either a value (present) or nothing (absent).
// The zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present option wrapping v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone returns true if the option is absent.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// MustGet returns the value or panics when the option is absent.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("option: MustGet on absent value")
	}

	return o.value
}

// OrElse returns the value if present, otherwise fallback.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}

	return fallback
}

// String returns a human-readable representation of the option.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.value)
}

// Map applies fn to a present value. Absent options stay absent.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}

	return Some(fn(o.value))
}

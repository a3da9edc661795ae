package gateway

// Result is the outcome of one upstream call: either a decoded payload
// or Unavailable.
type Result[T any] struct {
	value T
	ok    bool
}

// Ok wraps a successfully decoded payload.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Unavailable is the single failure outcome.
func Unavailable[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the payload and whether the call succeeded.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// IsUnavailable reports whether the call failed.
func (r Result[T]) IsUnavailable() bool {
	return !r.ok
}

// Map converts a successful payload with fn and passes Unavailable through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Unavailable[U]()
	}
	return Ok(fn(r.value))
}

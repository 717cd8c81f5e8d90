package lazy

import "sync"

// Value computes a T on first use. The result of the first call, error
// included, is returned by every later call.
type Value[T any] struct {
	once  sync.Once
	get   func() (T, error)
	value T
	err   error
}

func New[T any](get func() (T, error)) *Value[T] {
	return &Value[T]{get: get}
}

func (v *Value[T]) Get() (T, error) {
	v.once.Do(func() {
		v.value, v.err = v.get()
	})
	return v.value, v.err
}

package async

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUndefinedOperation = errors.New("undefined operation")
	ErrNilTarget          = errors.New("nil target")
	ErrPanicked           = errors.New("operation panicked")
)

// Helper runs operations of one target on their own goroutine. Each Go call
// is independent of the others; nothing is pooled or ordered.
type Helper[T any, R any] struct {
	target  T
	onDone  func(R)
	onError func(error)
}

// New binds a target and an optional completion callback.
func New[T any, R any](target T, onDone func(R)) *Helper[T, R] {
	return &Helper[T, R]{target: target, onDone: onDone}
}

// OnError registers a handler that consumes failures. With a handler set a
// failed task completes without error.
func (h *Helper[T, R]) OnError(fn func(error)) *Helper[T, R] {
	h.onError = fn
	return h
}

// Go validates op and the target on the calling goroutine, then starts op.
// Nothing is started when validation fails.
func (h *Helper[T, R]) Go(op func(T) (R, error)) (*Task[R], error) {
	if op == nil {
		return nil, ErrUndefinedOperation
	}
	if isNil(h.target) {
		return nil, ErrNilTarget
	}

	target, onDone, onError := h.target, h.onDone, h.onError
	task := newTask[R]()
	go func() {
		defer close(task.done)

		value, err := invoke(target, op)
		if err != nil {
			if onError != nil {
				task.err = guard(func() { onError(err) })
				return
			}
			task.err = err
			return
		}

		task.value = value
		if onDone != nil {
			task.err = guard(func() { onDone(value) })
		}
	}()

	return task, nil
}

// Run starts a closure that needs no target.
func Run[R any](op func() (R, error)) (*Task[R], error) {
	if op == nil {
		return nil, ErrUndefinedOperation
	}
	return New[struct{}, R](struct{}{}, nil).Go(func(struct{}) (R, error) {
		return op()
	})
}

func invoke[T any, R any](target T, op func(T) (R, error)) (value R, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, recovered)
		}
	}()
	return op(target)
}

// guard runs a callback and turns its panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, recovered)
		}
	}()
	fn()
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

package async

import "context"

// Task is the handle of one started operation. All methods are safe to call
// from any number of goroutines.
type Task[R any] struct {
	done  chan struct{}
	value R
	err   error
}

func newTask[R any]() *Task[R] {
	return &Task[R]{done: make(chan struct{})}
}

func (t *Task[R]) Running() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Done is closed once the operation and its callbacks have returned.
func (t *Task[R]) Done() <-chan struct{} {
	return t.done
}

// Wait joins the task and returns the unhandled failure, if any.
func (t *Task[R]) Wait() error {
	<-t.done
	return t.err
}

func (t *Task[R]) Value() (R, error) {
	<-t.done
	return t.value, t.err
}

// Await is Value bounded by ctx. The operation keeps running when ctx ends
// first.
func (t *Task[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

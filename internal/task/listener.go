package task

// Listener is told about changes to a task's completion state or deadline.
type Listener interface {
	TaskChanged(t *Task) error
}

type ListenerFunc func(t *Task) error

func (f ListenerFunc) TaskChanged(t *Task) error {
	return f(t)
}

// Attach registers l and returns a func that removes it again.
// Calling the returned func more than once is harmless.
func (t *Task) Attach(l Listener) (detach func()) {
	if l == nil {
		return func() {}
	}
	entry := &listenerEntry{l: l}
	t.listeners = append(t.listeners, entry)
	return func() {
		for i, e := range t.listeners {
			if e == Listener(entry) {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners reports how many listeners are attached.
func (t *Task) Listeners() int {
	return len(t.listeners)
}

// Notify calls every listener in attachment order and stops at the first error.
func (t *Task) Notify() error {
	for _, l := range t.listeners {
		if err := l.TaskChanged(t); err != nil {
			return err
		}
	}
	return nil
}

// listenerEntry gives each attachment its own identity so detach works
// for func-backed listeners, which are not comparable.
type listenerEntry struct {
	l Listener
}

func (e *listenerEntry) TaskChanged(t *Task) error {
	return e.l.TaskChanged(t)
}

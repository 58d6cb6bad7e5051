package engine

// ListenerID identifies one subscription. The zero value is never issued.
type ListenerID int

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// Event is a multi-cast event carrying one value. Listeners run in the order
// they were added, on the goroutine that calls Invoke.
type Event[T any] struct {
	lastID    ListenerID
	listeners []listener[T]
}

// AddListener subscribes fn. A nil fn is ignored and yields the zero id.
func (e *Event[T]) AddListener(fn func(T)) ListenerID {
	if fn == nil {
		return 0
	}
	e.lastID++
	e.listeners = append(e.listeners, listener[T]{id: e.lastID, fn: fn})
	return e.lastID
}

// RemoveListener drops the subscription with the given id.
func (e *Event[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *Event[T]) ListenerCount() int {
	return len(e.listeners)
}

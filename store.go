package chartsense

import "reflect"

type storeListener[S any] struct {
	id uint32
	fn func(next, prev *S)
}

// Store is a minimal observable state container. State is held behind a
// pointer and treated as immutable: updates produce a new *S, and listeners
// are notified only when the pointer changes.
//
// Store is not safe for concurrent use. Notification is synchronous and runs
// in the same call stack as SetState. A listener that updates the store
// during notification starts a nested notification with the newer state, and
// listeners not yet reached in the outer one never see the superseded state.
type Store[S any] struct {
	state     *S
	listeners []storeListener[S]
	nextID    uint32
}

// NewStore creates a store holding initial. A nil initial is replaced with
// the zero value of S.
func NewStore[S any](initial *S) *Store[S] {
	if initial == nil {
		initial = new(S)
	}
	return &Store[S]{state: initial}
}

// State returns the current state. Callers must not mutate it.
func (s *Store[S]) State() *S {
	return s.state
}

// SetState replaces the state with the result of update. The updater runs to
// completion before anything changes, so a panicking updater leaves the store
// untouched. Returning nil or the previous pointer is a no-op.
func (s *Store[S]) SetState(update func(prev *S) *S) {
	prev := s.state
	next := update(prev)
	if next == nil || next == prev {
		return
	}
	s.state = next
	s.notify(next, prev)
}

// Patch applies draft to a shallow copy of the state. If the patched copy is
// shallowly equal to the current state the store is unchanged and no listener
// runs.
func (s *Store[S]) Patch(draft func(next *S)) {
	s.SetState(func(prev *S) *S {
		next := *prev
		draft(&next)
		if shallowEqual(reflect.ValueOf(prev).Elem(), reflect.ValueOf(&next).Elem()) {
			return prev
		}
		return &next
	})
}

// Subscribe registers fn to run after every state change. The returned
// function removes the listener; calling it more than once is harmless.
func (s *Store[S]) Subscribe(fn func(next, prev *S)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, storeListener[S]{id: id, fn: fn})
	return func() {
		for i := range s.listeners {
			if s.listeners[i].id == id {
				// Copy so a notification loop holding the old slice is unaffected.
				out := make([]storeListener[S], 0, len(s.listeners)-1)
				out = append(out, s.listeners[:i]...)
				s.listeners = append(out, s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (s *Store[S]) ListenerCount() int {
	return len(s.listeners)
}

// notify stops early when a listener replaced the state: the nested SetState
// has already delivered the newer state to every listener.
func (s *Store[S]) notify(next, prev *S) {
	for _, l := range s.listeners {
		if s.state != next {
			return
		}
		l.fn(next, prev)
	}
}

// Select subscribes fn to a derived slice of the state. fn runs only when the
// selected value changes between updates according to equal. A nil equal uses
// Identical: slices, maps, pointers, and funcs compare by identity, and other
// comparable values compare by ==.
func Select[S, T any](s *Store[S], selector func(*S) T, equal func(a, b T) bool, fn func(T)) (unsubscribe func()) {
	if equal == nil {
		equal = Identical[T]
	}
	last := selector(s.State())
	return s.Subscribe(func(next, _ *S) {
		cur := selector(next)
		if equal(last, cur) {
			return
		}
		last = cur
		fn(cur)
	})
}

// Identical reports whether a and b are the same by reference for reference
// kinds, and equal by value otherwise. Structs compare field by field with the
// same rule.
func Identical[T any](a, b T) bool {
	return shallowEqual(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func shallowEqual(a, b reflect.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case reflect.Slice:
		return a.Len() == b.Len() && a.Pointer() == b.Pointer()
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !shallowEqual(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return shallowEqual(ea, eb)
	}
	if a.Comparable() && b.Comparable() {
		return a.Equal(b)
	}
	return false
}

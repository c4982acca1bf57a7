package chartsense

// EventName identifies a semantic chart event.
type EventName string

const (
	EventPointerMove  EventName = "CHART_POINTER_MOVE"
	EventPointerLeave EventName = "CHART_POINTER_LEAVE"
	EventPointerDown  EventName = "CHART_POINTER_DOWN"
	EventKeyDown      EventName = "CHART_KEY_DOWN"
)

// ChartEvent is a normalized input event.
type ChartEvent struct {
	Name      EventName
	Pointer   PointerPosition
	Key       Key
	Modifiers KeyModifiers
	// Native is whatever the host's hit test found under the pointer (a
	// drawn Element, a Target, or nil). Used by SearchExact.
	Native any
}

// Listener receives chart events.
type Listener func(ChartEvent)

type listenerEntry struct {
	id uint32
	fn Listener
}

// eventBus dispatches chart events to listeners by name.
type eventBus struct {
	listeners map[EventName][]listenerEntry
	nextID    uint32
}

func newEventBus() *eventBus {
	return &eventBus{listeners: make(map[EventName][]listenerEntry)}
}

// ListenerHandle removes a listener registered with On.
type ListenerHandle struct {
	id   uint32
	name EventName
	bus  *eventBus
}

// Remove unregisters the listener. Removing twice is harmless.
func (h ListenerHandle) Remove() {
	if h.bus == nil {
		return
	}
	h.bus.off(h)
}

func (b *eventBus) on(name EventName, fn Listener) ListenerHandle {
	b.nextID++
	id := b.nextID
	b.listeners[name] = append(b.listeners[name], listenerEntry{id: id, fn: fn})
	return ListenerHandle{id: id, name: name, bus: b}
}

func (b *eventBus) off(h ListenerHandle) {
	s := b.listeners[h.name]
	for i := range s {
		if s[i].id == h.id {
			out := make([]listenerEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			out = append(out, s[i+1:]...)
			if len(out) == 0 {
				delete(b.listeners, h.name)
			} else {
				b.listeners[h.name] = out
			}
			return
		}
	}
}

// emit calls listeners registered at the time of the call. Listeners removed
// during dispatch still receive the in-flight event.
func (b *eventBus) emit(ev ChartEvent) {
	for _, l := range b.listeners[ev.Name] {
		l.fn(ev)
	}
}

// count returns the number of registered listeners across all names.
func (b *eventBus) count() int {
	n := 0
	for _, s := range b.listeners {
		n += len(s)
	}
	return n
}

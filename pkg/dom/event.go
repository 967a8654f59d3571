package dom

// EventAnimationEnd is dispatched by the host when a CSS animation finishes.
const EventAnimationEnd = "animationend"

// Event is a dispatched element event.
type Event struct {
	Type          string
	AnimationName string
	ElapsedTime   float64 // seconds
	Target        *Element
}

// ListenerID identifies a registered listener.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn func(Event)
}

// AddEventListener registers fn for events of type typ.
func (e *Element) AddEventListener(typ string, fn func(Event)) ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]listener)
	}
	e.nextID++
	id := e.nextID
	e.listeners[typ] = append(e.listeners[typ], listener{id: id, fn: fn})
	return id
}

// RemoveEventListener unregisters a listener and reports whether it was present.
func (e *Element) RemoveEventListener(typ string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls := e.listeners[typ]
	for i, l := range ls {
		if l.id == id {
			e.listeners[typ] = append(ls[:i], ls[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[typ])
}

// DispatchEvent invokes the listeners registered for ev.Type in registration
// order and returns how many ran. Listeners removed during dispatch are skipped.
func (e *Element) DispatchEvent(ev Event) int {
	if ev.Target == nil {
		ev.Target = e
	}
	e.mu.Lock()
	snapshot := append([]listener(nil), e.listeners[ev.Type]...)
	e.mu.Unlock()

	ran := 0
	for _, l := range snapshot {
		if !e.hasListener(ev.Type, l.id) {
			continue
		}
		l.fn(ev)
		ran++
	}
	return ran
}

func (e *Element) hasListener(typ string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.listeners[typ] {
		if l.id == id {
			return true
		}
	}
	return false
}

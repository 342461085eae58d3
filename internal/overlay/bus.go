package overlay

// Bus is an in-process Signals source. The host publishes Scroll for every
// scrolling container and Resize for terminal or window size changes.
//
// A Bus is not safe for concurrent use; it lives on the event loop like the
// bindings that subscribe to it.
type Bus struct {
	next     uint64
	handlers map[Signal][]busEntry
}

type busEntry struct {
	id uint64
	fn func()
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Signal][]busEntry)}
}

// Subscribe registers fn for sig. A nil fn yields an invalid subscription.
func (b *Bus) Subscribe(sig Signal, fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	if b.handlers == nil {
		b.handlers = make(map[Signal][]busEntry)
	}
	b.next++
	b.handlers[sig] = append(b.handlers[sig], busEntry{id: b.next, fn: fn})
	return Subscription{signal: sig, id: b.next}
}

// Unsubscribe removes the handler registered by sub. Unknown or already
// removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	if !sub.Valid() {
		return
	}
	entries := b.handlers[sub.signal]
	for i, e := range entries {
		if e.id != sub.id {
			continue
		}
		// Copy so a Publish iterating the old slice is unaffected.
		next := make([]busEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.signal)
		} else {
			b.handlers[sub.signal] = next
		}
		return
	}
}

// Publish calls every handler subscribed to sig in registration order.
// Handlers removed by an earlier handler during the same Publish are skipped.
func (b *Bus) Publish(sig Signal) {
	for _, e := range b.handlers[sig] {
		if !b.subscribed(sig, e.id) {
			continue
		}
		e.fn()
	}
}

// Len returns the number of handlers subscribed to sig.
func (b *Bus) Len(sig Signal) int {
	return len(b.handlers[sig])
}

func (b *Bus) subscribed(sig Signal, id uint64) bool {
	for _, e := range b.handlers[sig] {
		if e.id == id {
			return true
		}
	}
	return false
}

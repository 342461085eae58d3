package overlay

// subscriptionManager keeps a visible overlay positioned while the viewport
// scrolls or resizes. Its subscriptions live exactly as long as the Visible
// state.
type subscriptionManager struct {
	signals Signals
	subs    []Subscription
	active  bool
}

// activate registers onChange for Scroll and Resize. A second call without
// a matching deactivate is ignored.
func (m *subscriptionManager) activate(onChange func()) {
	if m.active || m.signals == nil || onChange == nil {
		return
	}
	m.active = true
	m.subs = []Subscription{
		m.signals.Subscribe(Scroll, onChange),
		m.signals.Subscribe(Resize, onChange),
	}
}

// deactivate removes exactly the subscriptions added by activate.
func (m *subscriptionManager) deactivate() {
	if !m.active {
		return
	}
	for _, sub := range m.subs {
		m.signals.Unsubscribe(sub)
	}
	m.subs = nil
	m.active = false
}

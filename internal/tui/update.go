package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// frameDelay defers Scroll and Resize publication until the frame that
// reflects the change has been rendered and its zones scanned.
const frameDelay = time.Second / 60

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// signalMsg publishes a coalesced viewport signal on the next frame.
type signalMsg struct{ sig overlay.Signal }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(typed)
		cmds = append(cmds, m.queueSignal(overlay.Resize))

	case tea.KeyMsg:
		next, cmd := m.handleKeyMsg(typed)
		m = next
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(typed))

	case timerFiredMsg:
		m.sched.Fire(typed.id)
		m.refreshContent()

	case signalMsg:
		m.queued[typed.sig] = false
		m.bus.Publish(typed.sig)
		m.hideDetached()
	}

	cmds = append(cmds, m.sched.Flush())
	return m, batchCmd(compact(cmds))
}

func compact(cmds []tea.Cmd) []tea.Cmd {
	out := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// queueSignal schedules sig for the next frame unless one is already queued.
func (m *model) queueSignal(sig overlay.Signal) tea.Cmd {
	if m.queued[sig] {
		return nil
	}
	m.queued[sig] = true
	return tea.Tick(frameDelay, func(time.Time) tea.Msg {
		return signalMsg{sig: sig}
	})
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.screen.width, m.screen.height = msg.Width, msg.Height
	m.screen.top = headerHeight()
	rows := msg.Height - m.screen.top - footerHeight
	if rows < 1 {
		rows = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = rows
	m.refreshContent()
	m.syncScroll()
}

// syncScroll mirrors the viewport offset into the shared screen state and
// reports whether it changed.
func (m *model) syncScroll() bool {
	changed := m.screen.offset != m.viewport.YOffset
	m.screen.offset = m.viewport.YOffset
	m.screen.rows = m.viewport.Height
	return changed
}

// scrolled finishes any viewport movement: the Scroll signal goes out on the
// next frame so every visible overlay follows its anchor.
func (m *model) scrolled() tea.Cmd {
	if !m.syncScroll() {
		return nil
	}
	return m.queueSignal(overlay.Scroll)
}

// hideDetached dismisses shown overlays whose anchor has left the viewport.
func (m *model) hideDetached() {
	hidden := false
	for _, item := range m.anchors {
		if !item.binding.State().Shown() || item.anchor.visible == nil || item.anchor.visible() {
			continue
		}
		item.binding.Dismiss()
		hidden = true
	}
	if hidden {
		m.refreshContent()
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(wheelStep)
		return m.scrolled()
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(wheelStep)
		return m.scrolled()
	}

	// Only interactive overlays take the pointer; tooltips are click-through.
	handle, onOverlay := m.layer.HitTest(msg.X, msg.Y)
	if onOverlay {
		if b := m.bindingForHandle(handle); b == nil || !b.Options().Interactive {
			onOverlay = false
		}
	}
	anchor := -1
	if !onOverlay {
		handle = 0
		anchor = m.anchorAt(msg.X, msg.Y)
	}
	events := m.pointer.move(anchor, handle)
	m.dispatchPointer(events)
	if len(events) > 0 {
		m.refreshContent()
	}
	return nil
}

func (m *model) dispatchPointer(events []pointerEvent) {
	for _, ev := range events {
		switch ev.kind {
		case anchorLeave:
			m.anchors[ev.anchor].anchor.pointerLeave()
		case anchorEnter:
			m.anchors[ev.anchor].anchor.pointerEnter()
		case overlayLeave:
			if b := m.bindingForHandle(ev.handle); b != nil {
				b.OverlayLeave()
			}
		case overlayEnter:
			if b := m.bindingForHandle(ev.handle); b != nil {
				b.OverlayEnter()
			}
		}
	}
	// An overlay left under the pointer may have been unmounted meanwhile.
	if h := m.pointer.handle; h != 0 && m.bindingForHandle(h) == nil {
		m.pointer.forget(h)
	}
}

func (m *model) moveFocus(prev, cur int) {
	if prev == cur {
		return
	}
	if prev >= 0 {
		m.anchors[prev].anchor.blur()
	}
	if cur >= 0 {
		m.anchors[cur].anchor.focus()
		m.ensureVisible(cur)
	}
	m.refreshContent()
}

// ensureVisible scrolls the viewport so anchor i is on screen.
func (m *model) ensureVisible(i int) {
	line := m.anchors[i].line
	if m.viewport.Height <= 0 {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *model) dismissAll() {
	for _, item := range m.anchors {
		item.binding.Dismiss()
	}
	m.refreshContent()
}

func (m *model) toggleDisabled() {
	i := m.focus.focused()
	if i < 0 {
		m.status = StatusIndicator{Label: "Focus an anchor first (Tab)", Status: "warn"}
		return
	}
	b := m.anchors[i].binding
	disabled := !b.Options().Disabled
	b.SetDisabled(disabled)
	if !disabled {
		b.ShowIntent()
	}
	state := "enabled"
	if disabled {
		state = "disabled"
	}
	m.status = StatusIndicator{Label: m.anchors[i].spec.Label + " " + state, Status: "info"}
	m.refreshContent()
}

var placementCycle = []geometry.Placement{geometry.Top, geometry.Right, geometry.Bottom, geometry.Left}

func (m *model) cyclePlacement() {
	i := m.focus.focused()
	if i < 0 {
		m.status = StatusIndicator{Label: "Focus an anchor first (Tab)", Status: "warn"}
		return
	}
	current := m.anchors[i].binding.Options().Placement
	next := placementCycle[0]
	for j, p := range placementCycle {
		if p == current {
			next = placementCycle[(j+1)%len(placementCycle)]
			break
		}
	}
	m.rebind(i, overlay.WithPlacement(next))
	m.anchors[i].binding.ShowIntent()
	m.status = StatusIndicator{Label: m.anchors[i].spec.Label + " placed " + next.String(), Status: "info"}
}

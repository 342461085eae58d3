package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleKeyMsg(msg tea.KeyMsg) (model, tea.Cmd) {
	mPtr := &m
	for _, act := range mPtr.keys.Actions(msg) {
		if handled, cmd := mPtr.handleAction(act); handled {
			return *mPtr, cmd
		}
	}
	return *mPtr, nil
}

func (m *model) handleAction(act Action) (bool, tea.Cmd) {
	switch act {
	case ActQuit, ActInterrupt:
		for _, item := range m.anchors {
			item.binding.Unbind()
		}
		return true, tea.Quit
	case ActHelp:
		m.showHelp = !m.showHelp
		return true, nil
	case ActFocusNext:
		m.moveFocus(m.focus.next())
		return true, m.scrolled()
	case ActFocusPrev:
		m.moveFocus(m.focus.prev())
		return true, m.scrolled()
	case ActDismiss:
		if m.showHelp {
			m.showHelp = false
			return true, nil
		}
		m.dismissAll()
		if prev := m.focus.clear(); prev >= 0 {
			m.anchors[prev].anchor.blur()
			m.refreshContent()
		}
		return true, nil
	case ActCopyOverlay:
		m.copyOverlay()
		return true, nil
	case ActToggleDisabled:
		m.toggleDisabled()
		return true, nil
	case ActCyclePlacement:
		m.cyclePlacement()
		return true, nil
	case ActNavigateUp:
		m.viewport.LineUp(1)
		return true, m.scrolled()
	case ActNavigateDown:
		m.viewport.LineDown(1)
		return true, m.scrolled()
	case ActPageUp:
		m.viewport.ViewUp()
		return true, m.scrolled()
	case ActPageDown:
		m.viewport.ViewDown()
		return true, m.scrolled()
	case ActScrollTop:
		m.viewport.GotoTop()
		return true, m.scrolled()
	case ActScrollBottom:
		m.viewport.GotoBottom()
		return true, m.scrolled()
	}
	return false, nil
}

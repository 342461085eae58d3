package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Action string

const (
	ActQuit      Action = "quit"
	ActInterrupt Action = "interrupt"
	ActHelp      Action = "help"

	ActFocusNext      Action = "focus_next"
	ActFocusPrev      Action = "focus_prev"
	ActDismiss        Action = "dismiss"
	ActCopyOverlay    Action = "copy_overlay"
	ActToggleDisabled Action = "toggle_disabled"
	ActCyclePlacement Action = "cycle_placement"

	ActNavigateUp   Action = "navigate_up"
	ActNavigateDown Action = "navigate_down"
	ActPageUp       Action = "page_up"
	ActPageDown     Action = "page_down"
	ActScrollTop    Action = "scroll_top"
	ActScrollBottom Action = "scroll_bottom"
)

type KeyCombo struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (kc KeyCombo) String() string {
	parts := make([]string, 0, 4)
	if kc.Ctrl {
		parts = append(parts, "ctrl")
	}
	if kc.Alt {
		parts = append(parts, "alt")
	}
	if kc.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, strings.ToLower(kc.Key))
	return strings.Join(parts, "+")
}

func (kc KeyCombo) Display() string {
	parts := make([]string, 0, 4)
	if kc.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if kc.Alt {
		parts = append(parts, "Alt")
	}
	if kc.Shift {
		parts = append(parts, "Shift")
	}
	base := strings.ToLower(kc.Key)
	switch base {
	case "pgup":
		base = "PgUp"
	case "pgdown":
		base = "PgDn"
	case "esc":
		base = "Esc"
	case "home":
		base = "Home"
	case "end":
		base = "End"
	case "tab":
		base = "Tab"
	case "up":
		base = "↑"
	case "down":
		base = "↓"
	default:
		if len(base) == 1 {
			base = strings.ToUpper(base)
		} else if base != "" {
			base = strings.ToUpper(base[:1]) + base[1:]
		}
	}
	parts = append(parts, base)
	return strings.Join(parts, "+")
}

func (kc KeyCombo) Matches(msg tea.KeyMsg) bool {
	return strings.EqualFold(kc.String(), msg.String())
}

type KeyMap struct {
	Bindings map[Action][]KeyCombo
	labels   map[Action]string
}

type HelpEntry struct {
	Action Action
	Label  string
	Combos []KeyCombo
}

// Actions returns every action bound to msg, sorted by name.
func (km KeyMap) Actions(msg tea.KeyMsg) []Action {
	var matches []Action
	for act, combos := range km.Bindings {
		for _, combo := range combos {
			if combo.Matches(msg) {
				matches = append(matches, act)
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return string(matches[i]) < string(matches[j])
	})
	return matches
}

func (km KeyMap) Label(act Action) string {
	if label, ok := km.labels[act]; ok {
		return label
	}
	return string(act)
}

func (km KeyMap) HelpEntries() []HelpEntry {
	entries := make([]HelpEntry, 0, len(km.Bindings))
	for act, combos := range km.Bindings {
		if len(combos) == 0 {
			continue
		}
		entries = append(entries, HelpEntry{
			Action: act,
			Label:  km.Label(act),
			Combos: append([]KeyCombo(nil), combos...),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// ShortHelp renders the first combo of each action in order as a single line.
func (km KeyMap) ShortHelp(actions ...Action) string {
	parts := make([]string, 0, len(actions))
	for _, act := range actions {
		combos := km.Bindings[act]
		if len(combos) == 0 {
			continue
		}
		parts = append(parts, combos[0].Display()+" "+strings.ToLower(km.Label(act)))
	}
	return strings.Join(parts, " • ")
}

func DefaultKeyMap() KeyMap {
	ctrl := func(key string) KeyCombo {
		return KeyCombo{Key: key, Ctrl: true}
	}
	shift := func(key string) KeyCombo {
		return KeyCombo{Key: key, Shift: true}
	}
	key := func(k string) KeyCombo {
		return KeyCombo{Key: k}
	}

	bindings := map[Action][]KeyCombo{
		ActQuit:           {key("q")},
		ActInterrupt:      {ctrl("c")},
		ActHelp:           {key("?")},
		ActFocusNext:      {key("tab")},
		ActFocusPrev:      {shift("tab")},
		ActDismiss:        {key("esc")},
		ActCopyOverlay:    {key("y")},
		ActToggleDisabled: {key("d")},
		ActCyclePlacement: {key("p")},
		ActNavigateUp:     {key("up"), key("k")},
		ActNavigateDown:   {key("down"), key("j")},
		ActPageUp:         {key("pgup")},
		ActPageDown:       {key("pgdown")},
		ActScrollTop:      {key("home")},
		ActScrollBottom:   {key("end")},
	}

	labels := map[Action]string{
		ActQuit:           "Quit",
		ActInterrupt:      "Quit",
		ActHelp:           "Toggle help",
		ActFocusNext:      "Focus next anchor",
		ActFocusPrev:      "Focus previous anchor",
		ActDismiss:        "Dismiss overlays",
		ActCopyOverlay:    "Copy overlay text",
		ActToggleDisabled: "Toggle disabled",
		ActCyclePlacement: "Cycle placement",
		ActNavigateUp:     "Scroll up",
		ActNavigateDown:   "Scroll down",
		ActPageUp:         "Page up",
		ActPageDown:       "Page down",
		ActScrollTop:      "Scroll to top",
		ActScrollBottom:   "Scroll to bottom",
	}

	return KeyMap{
		Bindings: bindings,
		labels:   labels,
	}
}

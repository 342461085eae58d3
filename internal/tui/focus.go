package tui

// focusRing tracks keyboard focus across anchors. It does not call any
// handlers itself; callers receive the previous and next index and fire
// Blur and Focus in that order.
type focusRing struct {
	size    int
	current int // -1 = none
}

func newFocusRing(size int) focusRing {
	return focusRing{size: size, current: -1}
}

// next moves focus forward, wrapping at the end. From no focus it lands on
// the first anchor.
func (f *focusRing) next() (prev, cur int) {
	if f.size == 0 {
		return -1, -1
	}
	prev = f.current
	f.current = (f.current + 1) % f.size
	return prev, f.current
}

// prev moves focus backward, wrapping at the start.
func (f *focusRing) prev() (prev, cur int) {
	if f.size == 0 {
		return -1, -1
	}
	prev = f.current
	if f.current <= 0 {
		f.current = f.size - 1
	} else {
		f.current--
	}
	return prev, f.current
}

// clear removes focus and returns the index that had it, or -1.
func (f *focusRing) clear() int {
	prev := f.current
	f.current = -1
	return prev
}

func (f focusRing) focused() int { return f.current }

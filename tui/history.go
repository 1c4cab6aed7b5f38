// Package tui provides a Bubble Tea terminal front end for LoreLock stories.
package tui

// History keeps the player's recent commands in a fixed-size ring and
// supports up/down-arrow navigation through them.
type History struct {
	ring   []string
	head   int // index of the next write slot
	count  int
	offset int // 0 = not navigating, n = n entries back from the newest
}

// NewHistory creates a command history holding at most max entries.
func NewHistory(max int) *History {
	return &History{ring: make([]string, max)}
}

// at returns the entry n steps back from the newest (n >= 1).
func (h *History) at(n int) string {
	return h.ring[(h.head-n+len(h.ring)*2)%len(h.ring)]
}

// Push records a command. A repeat of the newest entry is dropped so
// holding enter on the same command doesn't flood the ring.
func (h *History) Push(cmd string) {
	if h.count > 0 && h.at(1) == cmd {
		return
	}
	h.ring[h.head] = cmd
	h.head = (h.head + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
	h.offset = 0
}

// Prev steps one entry older and returns it. At the oldest entry it
// keeps returning that entry; with no entries it returns ("", false).
func (h *History) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.offset < h.count {
		h.offset++
	}
	return h.at(h.offset), true
}

// Next steps one entry newer. Past the newest entry it returns
// ("", false), meaning the input line should go back to fresh text.
func (h *History) Next() (string, bool) {
	if h.offset <= 1 {
		h.offset = 0
		return "", false
	}
	h.offset--
	return h.at(h.offset), true
}

// ResetCursor leaves navigation mode without changing the stored entries.
func (h *History) ResetCursor() {
	h.offset = 0
}

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current room, its exits, the inventory, and the turn count.
func (m Model) renderStatusBar() string {
	w := m.engine.World

	roomName := "Nowhere"
	var dirs []string
	if room := w.PlayerRoom(); room != nil {
		roomName = room.Name
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
	}

	left := fmt.Sprintf(" %s | Exits: %s", roomName, strings.Join(dirs, ","))
	right := fmt.Sprintf("T:%d ", m.engine.Turn())

	// Show inventory item names if they fit, otherwise just the count.
	carried := w.Player().Contents
	if len(carried) > 0 {
		var names []string
		for _, id := range carried {
			if e := w.Get(id); e != nil {
				names = append(names, e.Name)
			}
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), m.engine.Turn())
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(carried), m.engine.Turn())
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

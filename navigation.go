package main

import tea "github.com/charmbracelet/bubbletea"

const panStep = 8

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.panX += dx * speed * panStep
	m.panY += dy * speed * panStep
	m.clampPan()
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return m
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 10
	default:
		return 1
	}
}

func direction(key string) (dx, dy int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func isDirectionKey(key string) bool {
	dx, dy := direction(key)
	return dx != 0 || dy != 0
}

// viewCols and viewRows are the terminal cells available for the canvas:
// one title line above it and one status line below.
func (m *model) viewCols() int {
	if m.width < 1 {
		return 1
	}
	return m.width
}

func (m *model) viewRows() int {
	if m.height-2 < 1 {
		return 1
	}
	return m.height - 2
}

// ensureCursorInBounds keeps the cursor on the canvas and scrolls the view so
// the cursor stays visible.
func (m *model) ensureCursorInBounds() {
	sc := m.session.Scene
	m.cursorX = clamp(m.cursorX, 0, sc.Width()-1)
	m.cursorY = clamp(m.cursorY, 0, sc.Height()-1)

	cols, rows := m.viewCols(), m.viewRows()*2
	if m.cursorX < m.panX {
		m.panX = m.cursorX
	} else if m.cursorX >= m.panX+cols {
		m.panX = m.cursorX - cols + 1
	}
	if m.cursorY < m.panY {
		m.panY = m.cursorY
	} else if m.cursorY >= m.panY+rows {
		m.panY = m.cursorY - rows + 1
	}
	m.clampPan()
}

func (m *model) clampPan() {
	sc := m.session.Scene
	m.panX = clamp(m.panX, 0, max(0, sc.Width()-m.viewCols()))
	m.panY = clamp(m.panY, 0, max(0, sc.Height()-m.viewRows()*2))
}

// cellToPixel maps a terminal cell to the canvas pixel shown in its top half.
func (m *model) cellToPixel(col, row int) (int, int, bool) {
	row--
	if row < 0 || row >= m.viewRows() {
		return 0, 0, false
	}
	x := col + m.panX
	y := row*2 + m.panY
	sc := m.session.Scene
	if x < 0 || y < 0 || x >= sc.Width() || y >= sc.Height() {
		return x, y, false
	}
	return x, y, true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

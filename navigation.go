package main

// handlePan scrolls the viewport. Shifted keys move four times as far.
func (m *model) handlePan(key string) {
	speed := m.getPanSpeed(key)
	if speed == 0 {
		return
	}
	dx, dy := 0, 0
	switch key {
	case "h", "H", "left", "shift+left":
		dx = -speed
	case "l", "L", "right", "shift+right":
		dx = speed
	case "k", "K", "up", "shift+up":
		dy = -speed
	case "j", "J", "down", "shift+down":
		dy = speed
	case "0":
		m.panX, m.panY = 0, 0
		return
	}
	m.panX += float64(dx) * m.config.CellWidth
	m.panY += float64(dy) * m.config.CellHeight
}

func (m *model) getPanSpeed(key string) int {
	switch key {
	case "H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return fastPanStep
	case "h", "j", "k", "l", "left", "right", "up", "down", "0":
		return panStep
	}
	return 0
}

package view

import "sync"

// Click targets reported by the page.
const (
	TargetMenu       = "menu"
	TargetMenuButton = "menu-button"
)

// Menu is the seating dropdown. It starts hidden.
type Menu struct {
	mu     sync.Mutex
	hidden bool
}

func NewMenu() *Menu {
	return &Menu{hidden: true}
}

func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden = !m.hidden
	return m.hidden
}

func (m *Menu) Close() {
	m.mu.Lock()
	m.hidden = true
	m.mu.Unlock()
}

// Click hides an open menu unless the click landed inside it or on its
// button. It returns the resulting hidden state.
func (m *Menu) Click(target string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hidden && target != TargetMenu && target != TargetMenuButton {
		m.hidden = true
	}
	return m.hidden
}

func (m *Menu) Hidden() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hidden
}

package view

import "sync"

// Modal tracks which dialog is open on a dashboard session.
type Modal struct {
	mu   sync.Mutex
	open string
}

func (m *Modal) Open(name string) {
	m.mu.Lock()
	m.open = name
	m.mu.Unlock()
}

// Current returns the open dialog name, or "" when none is open.
func (m *Modal) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Click dismisses the dialog when the click hit the backdrop itself.
func (m *Modal) Click(onBackdrop bool) {
	if onBackdrop {
		m.Close()
	}
}

func (m *Modal) Close() {
	m.mu.Lock()
	m.open = ""
	m.mu.Unlock()
}

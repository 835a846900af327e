// Package session holds login state: the login modal's open flag, the
// signed-in user's token and the sign-in providers.
package session

import "sync"

// ModalState is the process-wide open flag of the login modal. It notifies
// one subscriber, set with Subscribe, on every Open and Close call.
type ModalState struct {
	mu     sync.Mutex
	open   bool
	notify func(open bool)
}

// NewModalState returns a closed modal state.
func NewModalState() *ModalState {
	return &ModalState{}
}

// Open marks the modal open.
func (m *ModalState) Open() {
	m.set(true)
}

// Close marks the modal closed.
func (m *ModalState) Close() {
	m.set(false)
}

// IsOpen reports whether the modal is open.
func (m *ModalState) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Subscribe sets fn as the only subscriber, replacing any previous one.
// A nil fn removes the subscriber.
func (m *ModalState) Subscribe(fn func(open bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = fn
}

func (m *ModalState) set(open bool) {
	m.mu.Lock()
	m.open = open
	fn := m.notify
	m.mu.Unlock()

	if fn != nil {
		fn(open)
	}
}

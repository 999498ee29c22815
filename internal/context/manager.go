// Package context holds the conversation transcript replayed to the model
// every turn.
package context

import (
	"sync"

	"github.com/ashutoshrp06/vragent/internal/types"
)

// Manager is an append-only message log. It is never truncated; Reset is the
// only way to drop messages. The lock protects the slice, not turn ordering.
type Manager struct {
	messages []types.Message
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		messages: make([]types.Message, 0),
	}
}

func (m *Manager) Append(msg types.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
}

// Snapshot returns the messages in insertion order. The slice is a copy.
func (m *Manager) Snapshot() []types.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]types.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = make([]types.Message, 0)
}

func (m *Manager) IsEmpty() bool {
	return m.Len() == 0
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.messages)
}

package buffer

import (
	"context"
	"sync"
)

// Memory keeps guest logs in process memory. Suited to tests and
// single-instance development; session expiry is not enforced.
type Memory struct {
	mu   sync.Mutex
	logs map[string]*Log
}

func NewMemory() *Memory {
	return &Memory{logs: make(map[string]*Log)}
}

func (m *Memory) RecordView(ctx context.Context, sessionID string, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log(sessionID).addView(productID)
	return nil
}

func (m *Memory) RecordRating(ctx context.Context, sessionID string, productID int64, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log(sessionID).addRating(productID, value)
	return nil
}

func (m *Memory) Drain(ctx context.Context, sessionID string) (*Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[sessionID]
	if !ok {
		return nil, nil
	}
	delete(m.logs, sessionID)
	return l, nil
}

func (m *Memory) log(sessionID string) *Log {
	l, ok := m.logs[sessionID]
	if !ok {
		l = &Log{}
		m.logs[sessionID] = l
	}
	return l
}

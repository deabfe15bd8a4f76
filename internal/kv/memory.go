package kv

import "sync"

// Memory is an in-process Store. GetErr and SetErr, when set, are returned
// instead of touching the map.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	sets   int
	GetErr error
	SetErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	m.sets++
	return nil
}

// Sets returns how many successful writes the store has seen.
func (m *Memory) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *Memory) Close() error {
	return nil
}

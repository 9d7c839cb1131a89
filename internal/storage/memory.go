package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the blob in process memory. Useful for tests and throwaway sessions.
type MemorySlot struct {
	mu     sync.Mutex
	name   string
	data   []byte
	set    bool
	writes int
}

func NewMemorySlot(name string) *MemorySlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &MemorySlot{name: name}
}

// NewMemorySlotWith returns a slot pre-filled with data.
func NewMemorySlotWith(name string, data []byte) *MemorySlot {
	s := NewMemorySlot(name)
	s.data = append([]byte(nil), data...)
	s.set = true
	return s
}

func (s *MemorySlot) Name() string { return s.name }

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.set = true
	s.writes++
	return nil
}

// Writes returns how many times the slot was written.
func (s *MemorySlot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

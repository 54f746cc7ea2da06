package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStorage is the in-process payload store. Payload bytes are
// copied on the way in and on the way out, so callers cannot alias the
// stored state.
type MemoryStorage struct {
	ids *IDAlloc

	mu       sync.RWMutex
	payloads map[int64][]byte
}

// NewMemoryStorage returns an empty in-memory store minting ids against
// the given epoch.
func NewMemoryStorage(epoch uint8) (*MemoryStorage, error) {
	ids, err := NewIDAlloc(epoch)
	if err != nil {
		return nil, err
	}
	return &MemoryStorage{
		ids:      ids,
		payloads: map[int64][]byte{},
	}, nil
}

func (s *MemoryStorage) Insert(ctx context.Context, data []byte) (int64, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return 0, err
	}
	held := make([]byte, len(data))
	copy(held, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[id] = held
	return id, nil
}

func (s *MemoryStorage) Read(ctx context.Context, id int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	held, ok := s.payloads[id]
	if !ok {
		return nil, fmt.Errorf("%016x: %w", id, ErrPayloadNotFound)
	}
	data := make([]byte, len(held))
	copy(data, held)
	return data, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payloads[id]; !ok {
		return fmt.Errorf("%016x: %w", id, ErrPayloadNotFound)
	}
	delete(s.payloads, id)
	return nil
}

func (s *MemoryStorage) Len(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.payloads)), nil
}

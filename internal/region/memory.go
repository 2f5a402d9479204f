package region

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	mu      sync.Mutex
	token   uint64
	content string
	touched time.Time
}

func NewMemory() *Memory {
	return &Memory{touched: time.Now()}
}

func (m *Memory) Begin(_ context.Context, placeholder string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token++
	m.content = placeholder
	m.touched = time.Now()
	return m.token, nil
}

func (m *Memory) Commit(_ context.Context, token uint64, content string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.token {
		return false, nil
	}
	m.content = content
	m.touched = time.Now()
	return true, nil
}

func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content, nil
}

func (m *Memory) idleSince(now time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return now.Sub(m.touched)
}

// MemoryStore keeps regions in process. Regions idle longer than ttl are
// dropped during the next sweep.
type MemoryStore struct {
	mu        sync.Mutex
	regions   map[string]*Memory
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		regions: make(map[string]*Memory),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Region(workspaceID, name string) Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= time.Minute {
		s.sweep(now)
		s.lastSweep = now
	}

	key := workspaceID + ":" + name
	r, ok := s.regions[key]
	if !ok {
		r = NewMemory()
		s.regions[key] = r
	}
	return r
}

func (s *MemoryStore) sweep(now time.Time) {
	for key, r := range s.regions {
		if r.idleSince(now) > s.ttl {
			delete(s.regions, key)
		}
	}
}

// Len is the number of live regions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regions)
}

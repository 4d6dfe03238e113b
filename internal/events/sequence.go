package events

import "sync"

// Sequencer hands out a monotonically increasing sequence per partition
// key, starting at 1.
type Sequencer struct {
	mu   sync.Mutex
	next map[string]int64
}

func NewSequencer() *Sequencer {
	return &Sequencer{next: make(map[string]int64)}
}

func (s *Sequencer) Next(partitionKey string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[partitionKey]++
	return s.next[partitionKey]
}

// Package memory holds short-term conversational context per thread. It is
// process-local by design: the transcript is UX context, not a record of
// truth, and may be lost on restart (durable chat history lives in the
// store package).
package memory

import "sync"

// MaxEntries caps the transcript kept per thread; oldest entries are
// evicted first once the cap is exceeded.
const MaxEntries = 10

// ThreadStore is a concurrency-safe mapping from thread id to a bounded
// list of recent exchanges. A single mutex guards all reads and writes so
// concurrent appends cannot lose updates. Construct with NewThreadStore
// and inject it wherever context continuity is needed.
type ThreadStore struct {
	mu      sync.Mutex
	threads map[string][]string
}

// NewThreadStore returns an empty store.
func NewThreadStore() *ThreadStore {
	return &ThreadStore{threads: make(map[string][]string)}
}

// Get returns a copy of the entries for the thread, oldest first. An
// unknown thread yields an empty slice.
func (s *ThreadStore) Get(threadID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.threads[threadID]
	cp := make([]string, len(entries))
	copy(cp, entries)
	return cp
}

// Append records one exchange for the thread, enforcing MaxEntries
// atomically with the insert (FIFO eviction).
func (s *ThreadStore) Append(threadID, entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append(s.threads[threadID], entry)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	s.threads[threadID] = entries
}

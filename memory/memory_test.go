package memory

import (
	"fmt"
	"sync"
	"testing"
)

func TestGet_UnknownThread(t *testing.T) {
	s := NewThreadStore()
	if got := s.Get("missing"); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestAppend_EvictsOldestBeyondCap(t *testing.T) {
	s := NewThreadStore()
	for i := 0; i < MaxEntries+1; i++ {
		s.Append("t1", fmt.Sprintf("entry-%d", i))
	}

	got := s.Get("t1")
	if len(got) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(got))
	}
	// entry-0 is gone, order of the survivors is preserved.
	for i, e := range got {
		want := fmt.Sprintf("entry-%d", i+1)
		if e != want {
			t.Errorf("entry %d: got %q, want %q", i, e, want)
		}
	}
}

func TestThreadsAreIsolated(t *testing.T) {
	s := NewThreadStore()
	s.Append("a", "for a")
	s.Append("b", "for b")

	if got := s.Get("a"); len(got) != 1 || got[0] != "for a" {
		t.Fatalf("thread a: got %v", got)
	}
	if got := s.Get("b"); len(got) != 1 || got[0] != "for b" {
		t.Fatalf("thread b: got %v", got)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewThreadStore()
	s.Append("t", "original")

	got := s.Get("t")
	got[0] = "mutated"

	if again := s.Get("t"); again[0] != "original" {
		t.Fatalf("store entry mutated through returned slice: %v", again)
	}
}

func TestAppend_ConcurrentWritersNeverExceedCap(t *testing.T) {
	s := NewThreadStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Append("shared", fmt.Sprintf("w%d-%d", w, i))
				s.Get("shared")
			}
		}(w)
	}
	wg.Wait()

	if got := s.Get("shared"); len(got) != MaxEntries {
		t.Fatalf("expected exactly %d entries after concurrent appends, got %d", MaxEntries, len(got))
	}
}

package main

import (
	"sync"
	"testing"
)

// TestAdmissionInvariant covers spec.md §8's admission invariant: under
// concurrent TryAdmit/Release, every admitted caller observes
// 0 <= current_players <= max_players, the count returns to 0 once every
// admitted slot is released, and at least one admission succeeds.
func TestAdmissionInvariant(t *testing.T) {
	const maxPlayers = 10
	const attempts = 1000

	srv := NewServer(&Config{MaxPlayers: maxPlayers})

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if srv.TryAdmit() {
				mu.Lock()
				admitted++
				mu.Unlock()

				if online := srv.Online(); online < 0 || online > maxPlayers {
					t.Errorf("online=%d out of bounds [0,%d]", online, maxPlayers)
				}
				srv.Release()
			}
		}()
	}
	wg.Wait()

	if online := srv.Online(); online != 0 {
		t.Errorf("after all releases, online=%d, want 0", online)
	}
	if admitted == 0 {
		t.Error("expected at least one successful admission")
	}
}

// TestAdmissionDenial mirrors scenario 3 from spec.md §8: with max_players=1,
// a second concurrent admission attempt is refused while the first holds its
// slot.
func TestAdmissionDenial(t *testing.T) {
	srv := NewServer(&Config{MaxPlayers: 1})

	if !srv.TryAdmit() {
		t.Fatal("first TryAdmit should succeed")
	}
	if srv.TryAdmit() {
		t.Fatal("second TryAdmit should fail while the server is full")
	}
	if online := srv.Online(); online != 1 {
		t.Errorf("online=%d, want 1", online)
	}

	srv.Release()
	if online := srv.Online(); online != 0 {
		t.Errorf("after release, online=%d, want 0", online)
	}
	if !srv.TryAdmit() {
		t.Fatal("TryAdmit should succeed again after a release frees a slot")
	}
}

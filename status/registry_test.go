package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricPointerIsStable(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(RouteHits)
	b := r.Ints.Get(RouteHits)
	if a != b {
		t.Fatal("Expected cached pointer for same key")
	}
	a.Add(3)
	if r.Snapshot()[RouteHits] != 3 {
		t.Errorf("Expected snapshot 3, got %d", r.Snapshot()[RouteHits])
	}
}

func TestRangeSortedKeys(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(RouteSelf)
	r.Ints.Get(Overflows)
	r.Ints.Get(Ticks)

	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) { keys = append(keys, key) })
	want := []string{Ticks, Overflows, RouteSelf}
	if len(keys) != len(want) {
		t.Fatalf("Expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, keys)
		}
	}
}

func TestGaugeSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Gauges.Get(PourSpeed("left")).Store(2.5)
	r.Gauges.Get(PourSpeed("right"))

	got := r.GaugeSnapshot()
	if got["pour.left"] != 2.5 {
		t.Errorf("Expected pour.left 2.5, got %v", got["pour.left"])
	}
	if v, ok := got["pour.right"]; !ok || v != 0 {
		t.Errorf("Expected pour.right 0, got %v (present %v)", v, ok)
	}
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get(RouteContacts).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Snapshot()[RouteContacts]; got != 800 {
		t.Errorf("Expected 800, got %d", got)
	}
	if r.Ints.Len() != 1 {
		t.Errorf("Expected 1 counter, got %d", r.Ints.Len())
	}
}

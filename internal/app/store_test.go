package app

import (
	"testing"

	"github.com/ItsNotGoodName/x-splitmon/internal/region"
)

func TestStateStoreSet(t *testing.T) {
	s := NewStateStore()

	if !s.Set(region.LeftHalf, true) {
		t.Error("first enable: got no change, want change")
	}
	if s.Set(region.LeftHalf, true) {
		t.Error("second enable: got change, want no change")
	}
	if !s.Enabled(region.LeftHalf) {
		t.Error("got disabled, want enabled")
	}

	if !s.Set(region.LeftHalf, false) {
		t.Error("disable: got no change, want change")
	}
	if s.Set(region.LeftHalf, false) {
		t.Error("second disable: got change, want no change")
	}
	if s.Enabled(region.LeftHalf) {
		t.Error("got enabled, want disabled")
	}
}

func TestStateStoreSnapshot(t *testing.T) {
	s := NewStateStore()
	s.Set(region.FullScreen, true)
	s.Set(region.TopLeftQuarter, true)

	snapshot := s.Snapshot()

	if got, want := len(snapshot), len(region.All()); got != want {
		t.Fatalf("got %d regions, want %d", got, want)
	}

	for _, r := range region.All() {
		want := r == region.FullScreen || r == region.TopLeftQuarter
		if got := snapshot[r]; got != want {
			t.Errorf("%s: got %v, want %v", r, got, want)
		}
	}
}

package app

import "github.com/ItsNotGoodName/x-splitmon/internal/region"

// StateStore tracks which regions are enabled. It prevents redundant toggles
// from reaching xrandr.
type StateStore struct {
	enabled map[region.Region]bool
}

func NewStateStore() *StateStore {
	return &StateStore{enabled: make(map[region.Region]bool)}
}

// Set records the new state and reports whether it changed.
func (s *StateStore) Set(r region.Region, enabled bool) bool {
	if s.enabled[r] == enabled {
		return false
	}

	s.enabled[r] = enabled
	return true
}

func (s *StateStore) Enabled(r region.Region) bool {
	return s.enabled[r]
}

// Snapshot returns the state of every region, including the ones that were
// never toggled.
func (s *StateStore) Snapshot() map[region.Region]bool {
	snapshot := make(map[region.Region]bool, len(region.All()))
	for _, r := range region.All() {
		snapshot[r] = s.enabled[r]
	}

	return snapshot
}

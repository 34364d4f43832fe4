package bulk

import "sync"

// Selection is an ordered set of candidate ids picked for a bulk action.
// The zero value is an empty selection.
type Selection struct {
	mu  sync.Mutex
	ids []string
	set map[string]struct{}
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Toggle adds id when absent and removes it when present
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[id]; ok {
		s.remove(id)
		return
	}
	s.add(id)
}

// SelectAll selects every id in all, or clears the selection when it already
// holds as many ids as all does.
func (s *Selection) SelectAll(all []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) == len(all) {
		s.reset()
		return
	}
	s.reset()
	for _, id := range all {
		if _, ok := s.set[id]; !ok {
			s.add(id)
		}
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Prune drops ids that are not in valid and reports how many were dropped
func (s *Selection) Prune(valid []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}

	dropped := 0
	ids := s.ids[:0]
	for _, id := range s.ids {
		if _, ok := keep[id]; ok {
			ids = append(ids, id)
			continue
		}
		delete(s.set, id)
		dropped++
	}
	s.ids = ids
	return dropped
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[id]
	return ok
}

// IDs returns the selected ids in selection order
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) add(id string) {
	if s.set == nil {
		s.set = make(map[string]struct{})
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection) remove(id string) {
	delete(s.set, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

func (s *Selection) reset() {
	s.ids = nil
	s.set = make(map[string]struct{})
}

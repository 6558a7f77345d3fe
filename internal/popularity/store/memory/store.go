package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"nameorigin/internal/popularity"
)

// InMemoryStore keeps records in an append-only slice. Suitable for a
// single instance; counts reset on restart.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []popularity.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, rec popularity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type tally struct {
	name  string
	count int
	first int
}

func (s *InMemoryStore) TopByCountry(_ context.Context, country string, since time.Time, limit int) ([]popularity.PopularName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byKey := make(map[string]*tally)
	for i, rec := range s.records {
		if rec.CountryCode != country || rec.Timestamp.Before(since) {
			continue
		}
		key := popularity.NameKey(rec.Name)
		t, ok := byKey[key]
		if !ok {
			t = &tally{name: rec.Name, first: i}
			byKey[key] = t
		}
		t.count++
	}

	tallies := make([]*tally, 0, len(byKey))
	for _, t := range byKey {
		tallies = append(tallies, t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].first < tallies[j].first
	})
	if limit > 0 && len(tallies) > limit {
		tallies = tallies[:limit]
	}

	out := make([]popularity.PopularName, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, popularity.PopularName{Name: t.name, Count: t.count})
	}
	return out, nil
}

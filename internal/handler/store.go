package handler

import (
	"slices"
	"sync"

	"github.com/paarthsiloiya/SIH25011/pkg/timetable"
	"github.com/samber/lo"
)

// Store keeps the most recent results in memory, evicting the oldest one past its capacity
type Store struct {
	mu       sync.RWMutex
	capacity int
	results  map[string]*timetable.Result
	order    []string // Run ids, oldest first
}

func NewStore(capacity int) *Store {
	return &Store{
		capacity: max(capacity, 1),
		results:  make(map[string]*timetable.Result),
	}
}

func (store *Store) Put(result *timetable.Result) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.results[result.RunID()]; !ok {
		store.order = append(store.order, result.RunID())
	}
	store.results[result.RunID()] = result

	for len(store.order) > store.capacity {
		delete(store.results, store.order[0])
		store.order = store.order[1:]
	}
}

func (store *Store) Get(id string) (*timetable.Result, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	result, ok := store.results[id]
	return result, ok
}

// Summaries lists the stored results, newest first
func (store *Store) Summaries() []timetable.Summary {
	store.mu.RLock()
	defer store.mu.RUnlock()

	summaries := lo.Map(store.order, func(id string, _ int) timetable.Summary {
		summary := store.results[id].Summary()
		summary.History = nil
		return summary
	})
	slices.Reverse(summaries)
	return summaries
}

package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"solar-savings/internal/savings"
)

// storedResult keeps one finished analysis so follow-up requests (summary
// CSV, reports, profile) can be served without re-running the pipeline.
type storedResult struct {
	ID       string
	Result   *savings.Result
	Report   *savings.ParseReport
	Currency string
	Created  time.Time
}

// ResultStore is an in-memory, bounded store of recent analysis results.
// Oldest entries are evicted once the cap is reached.
type ResultStore struct {
	mu      sync.Mutex
	results map[string]*storedResult
	order   []string
	max     int
}

func NewResultStore(max int) *ResultStore {
	if max <= 0 {
		max = 50
	}
	return &ResultStore{
		results: make(map[string]*storedResult),
		max:     max,
	}
}

func (s *ResultStore) Put(res *savings.Result, report *savings.ParseReport, currency string) *storedResult {
	stored := &storedResult{
		ID:       uuid.NewString(),
		Result:   res,
		Report:   report,
		Currency: currency,
		Created:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
	s.results[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored
}

func (s *ResultStore) Get(id string) (*storedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[id]
	return r, ok
}

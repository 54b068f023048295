// Package snapshots holds the latest derived summaries between refresh
// cycles. The store is an explicitly constructed instance with an explicit
// lifecycle, created at application start and reset on teardown; readers
// always see the last complete snapshot while a refresh is in flight.
package snapshots

import (
	"sync"
	"time"

	"panorama/internal/report"
)

// Store is a concurrency-safe holder for the latest report and per-system
// detail summaries. A refresh replaces entries wholesale; nothing is merged
// across cycles.
type Store struct {
	mu          sync.RWMutex
	report      *report.Report
	systems     map[string]*report.SystemSummary
	systemErrs  map[string]error
	refreshedAt time.Time
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{
		systems:    make(map[string]*report.SystemSummary),
		systemErrs: make(map[string]error),
	}
}

// SetReport publishes a new general report snapshot.
func (s *Store) SetReport(rep *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = rep
	s.refreshedAt = time.Now().UTC()
}

// Report returns the latest report snapshot, or false when no refresh has
// completed yet.
func (s *Store) Report() (*report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, false
	}
	return s.report, true
}

// SetSystem publishes a fresh detail summary and clears any error state.
func (s *Store) SetSystem(key string, summary *report.SystemSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems[key] = summary
	delete(s.systemErrs, key)
}

// SetSystemError marks a system's last refresh as failed. The previous
// summary is dropped: detail views must not present stale data as current.
func (s *Store) SetSystemError(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.systems, key)
	s.systemErrs[key] = err
}

// System returns the detail summary for a system, or the error its last
// refresh produced. Both nil means no refresh has covered the system yet.
func (s *Store) System(key string) (*report.SystemSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err, ok := s.systemErrs[key]; ok {
		return nil, err
	}
	return s.systems[key], nil
}

// RefreshedAt returns when the last report snapshot was published.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// Reset clears all snapshots; intended for teardown and tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = nil
	s.systems = make(map[string]*report.SystemSummary)
	s.systemErrs = make(map[string]error)
	s.refreshedAt = time.Time{}
}

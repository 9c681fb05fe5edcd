package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SaiyamJain468/Paylockr/internal/jobs"
)

// Store keeps job state in memory. It is safe for concurrent use; data
// is lost on restart.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.NormalizeJob
}

// NewStore creates a new in-memory job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.NormalizeJob),
	}
}

// Save implements the Store interface. Jobs are copied on write so
// callers cannot mutate stored state.
func (s *Store) Save(ctx context.Context, job *jobs.NormalizeJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy

	return nil
}

// Get implements the Store interface.
func (s *Store) Get(ctx context.Context, jobID string) (*jobs.NormalizeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// List implements the Store interface.
func (s *Store) List(ctx context.Context, filter jobs.Filter) ([]*jobs.NormalizeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*jobs.NormalizeJob

	for _, job := range s.jobs {
		if filter.DocumentID != "" && job.DocumentID != filter.DocumentID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}

		jobCopy := *job
		result = append(result, &jobCopy)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.NormalizeJob{}, nil
		}
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

var _ jobs.Store = (*Store)(nil)

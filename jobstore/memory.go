package jobstore

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MemoryStore is an in-process Store backed by a guarded map. It is the
// default store for tests and single-process deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]Job)}
}

func (s *MemoryStore) Has(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.jobs[name]
	return ok, nil
}

func (s *MemoryStore) Get(_ context.Context, name string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[name]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (s *MemoryStore) Add(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.Name]; ok {
		return ErrExists
	}
	if job.ID == "" {
		job.ID = newJobID()
	}
	s.jobs[job.Name] = job
	return nil
}

func (s *MemoryStore) Update(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.Name]; !ok {
		return ErrNotFound
	}
	s.jobs[job.Name] = job
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; !ok {
		return ErrNotFound
	}
	delete(s.jobs, name)
	return nil
}

func (s *MemoryStore) All(_ context.Context) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Log writes to the package-level zerolog logger, tagged with the job
// name. MemoryStore keeps no log history of its own.
func (s *MemoryStore) Log(_ context.Context, job Job, message string, level Level) error {
	var evt *zerolog.Event
	switch level {
	case LevelSuccess, LevelInfo:
		evt = log.Info()
	case LevelWarning:
		evt = log.Warn()
	case LevelError:
		evt = log.Error()
	case LevelCritical:
		evt = log.Error()
	default:
		evt = log.Info()
	}
	evt.Str("job", job.Name).Str("level", string(level)).Msg(message)
	return nil
}

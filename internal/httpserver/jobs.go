// ABOUTME: In-memory narration job store
// ABOUTME: Tracks upload-to-production lifecycle for the web API

package httpserver

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus describes where a narration job is in its lifecycle
type JobStatus string

const (
	// JobQueued means the upload is stored and the job is waiting to run
	JobQueued JobStatus = "queued"
	// JobRunning means the production pipeline is working
	JobRunning JobStatus = "running"
	// JobReady means the production finished
	JobReady JobStatus = "ready"
	// JobFailed means the production stopped with an error
	JobFailed JobStatus = "failed"
)

// Job is one narration request from upload to finished production
type Job struct {
	ID        string
	Name      string // original upload filename
	Video     string // stored upload path
	Status    JobStatus
	Stage     string
	Genre     string
	Narration string
	Analysis  string
	Error     string
	WAV       []byte // encoded narration audio, set when ready
	Created   time.Time
	Updated   time.Time
}

// JobStore holds jobs in memory behind a mutex
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty job store
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
	}
}

// Create registers a new queued job for a stored upload
func (s *JobStore) Create(name, video string) Job {
	now := time.Now()
	job := &Job{
		ID:      uuid.New().String(),
		Name:    name,
		Video:   video,
		Status:  JobQueued,
		Created: now,
		Updated: now,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return *job
}

// Get returns a snapshot of the job with the given id
func (s *JobStore) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Update applies fn to the stored job under the lock
func (s *JobStore) Update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.Updated = time.Now()
}

// Len reports the number of stored jobs
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

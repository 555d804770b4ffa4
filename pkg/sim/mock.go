package sim

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fake is an in-memory Client for tests. Uploads are recorded and
// acknowledged immediately; job results are whatever the test seeds.
type Fake struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]*Job
	uploads []FakeUpload

	// UploadErr, when set, fails the next upload.
	UploadErr error
}

// FakeUpload records one UploadSimulation call.
type FakeUpload struct {
	Definition  JobDefinition
	ArchiveSize int64
}

// NewFake creates an empty fake client.
func NewFake() *Fake {
	return &Fake{jobs: make(map[uuid.UUID]*Job)}
}

// Compile-time interface check.
var _ Client = (*Fake)(nil)

// SeedJob registers a job result to be returned by GetJob.
func (f *Fake) SeedJob(job *Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
}

// Uploads returns the recorded upload calls.
func (f *Fake) Uploads() []FakeUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeUpload(nil), f.uploads...)
}

func (f *Fake) UploadSimulation(_ context.Context, zipPath string, def JobDefinition) (*PreJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UploadErr != nil {
		return nil, f.UploadErr
	}

	st, err := os.Stat(zipPath)
	if err != nil {
		return nil, fmt.Errorf("sim: fake upload: %w", err)
	}
	f.uploads = append(f.uploads, FakeUpload{Definition: def, ArchiveSize: st.Size()})

	return &PreJob{
		ID:        uuid.New(),
		Name:      def.Name,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

func (f *Fake) GetJob(_ context.Context, id uuid.UUID) (*Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("sim: job %s not found", id)
	}
	return job, nil
}

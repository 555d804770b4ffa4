package sim

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server is an in-process job service used for offline testing of the
// upload and status flow. Uploaded jobs complete immediately with exit
// code 0 and an output size equal to the uploaded archive size.
type Server struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
	log  *zap.Logger
}

// NewServer creates an empty mock job service. A nil logger disables
// logging.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{jobs: make(map[uuid.UUID]*Job), log: log}
}

// Router returns the chi routes of the mock service.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/simulations", s.handleUpload)
	r.Get("/v1/jobs/{id}", s.handleGetJob)
	return r
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	var def JobDefinition
	if raw := r.FormValue("job"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &def); err != nil {
			http.Error(w, "bad job definition: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file part: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()
	size, err := io.Copy(io.Discard, f)
	if err != nil {
		http.Error(w, "reading upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	started := now
	finished := now.Add(time.Second)
	job := &Job{
		ID:                uuid.New(),
		Name:              def.Name,
		Status:            StatusSucceeded,
		ExitCode:          0,
		StartedAt:         &started,
		FinishedAt:        &finished,
		RequestedCPU:      def.RequestedCPU,
		RequestedMemoryMB: def.RequestedMemoryMB,
		OutputSizeBytes:   size,
		DownloadURLs: map[string]string{
			"result.zip": "/v1/jobs/placeholder/result.zip",
		},
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.log.Info("mock job accepted",
		zap.String("job", def.Name),
		zap.Int64("upload_bytes", size))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PreJob{
		ID:        job.ID,
		Name:      job.Name,
		Status:    StatusPending,
		CreatedAt: now,
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad job id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	job, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

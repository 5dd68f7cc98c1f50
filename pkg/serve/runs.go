package serve

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"

	"github.com/qcserestipy/sumbench/pkg/bench"
)

type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one asynchronous benchmark invocation tracked by the server.
type Run struct {
	ID        int            `json:"id"`
	Status    RunStatus      `json:"status"`
	Config    bench.Config   `json:"config"`
	Results   []bench.Result `json:"results,omitempty"`
	Error     string         `json:"error,omitempty"`
	Submitted time.Time      `json:"submitted"`
	Finished  *time.Time     `json:"finished,omitempty"`
}

// runRegistry keeps run state in memory only. A mutex guards it because
// the background goroutine finishing a run races HTTP reads.
type runRegistry struct {
	mu     sync.Mutex
	nextID int
	runs   []Run
}

func newRunRegistry() *runRegistry {
	return &runRegistry{nextID: 1}
}

func (g *runRegistry) create(cfg bench.Config) Run {
	g.mu.Lock()
	defer g.mu.Unlock()
	run := Run{
		ID:        g.nextID,
		Status:    StatusPending,
		Config:    cfg,
		Submitted: time.Now().UTC(),
	}
	g.nextID++
	g.runs = append(g.runs, run)
	return run
}

func (g *runRegistry) list() []Run {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Run, len(g.runs))
	copy(out, g.runs)
	return out
}

func (g *runRegistry) get(id int) (Run, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.runs {
		if r.ID == id {
			return r, true
		}
	}
	return Run{}, false
}

func (g *runRegistry) update(id int, fn func(*Run)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.runs {
		if g.runs[i].ID == id {
			fn(&g.runs[i])
			return
		}
	}
}

// ----------------------------------------------------------------
// HTTP routes
// ----------------------------------------------------------------

// registerRunRoutes wires up the asynchronous run API on /runs.
// Schema validation is strict (DisallowUnknownFields); accepted runs
// execute in a background goroutine and are polled via GET.
func (s *Server) registerRunRoutes(r chi.Router) {
	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, s.runs.list())
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		idParam := chi.URLParam(req, "id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			http.Error(w,
				fmt.Sprintf("invalid run ID '%s': %v", idParam, err),
				http.StatusBadRequest,
			)
			return
		}

		run, ok := s.runs.get(id)
		if !ok {
			http.Error(w,
				fmt.Sprintf("run not found with ID %d", id),
				http.StatusNotFound,
			)
			return
		}
		writeJSON(w, run)
	})

	r.Post("/runs", func(w http.ResponseWriter, req *http.Request) {
		var br BenchmarkRequest
		decoder := json.NewDecoder(req.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&br); err != nil {
			http.Error(w, "invalid JSON or schema mismatch: "+err.Error(), http.StatusBadRequest)
			return
		}

		cfg, err := s.configFor(br)
		if err != nil {
			http.Error(w, "validation error: "+err.Error(), http.StatusBadRequest)
			return
		}

		run := s.runs.create(cfg)
		go s.execute(run.ID, cfg)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(run); err != nil {
			http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		}
	})
}

// execute runs one accepted benchmark in the background and records its
// outcome in the registry.
func (s *Server) execute(id int, cfg bench.Config) {
	s.runs.update(id, func(r *Run) { r.Status = StatusRunning })

	results, err := bench.Run(cfg)
	now := time.Now().UTC()
	s.runs.update(id, func(r *Run) {
		r.Finished = &now
		if err != nil {
			r.Status = StatusFailed
			r.Error = err.Error()
			return
		}
		r.Status = StatusCompleted
		r.Results = results
	})

	if err != nil {
		log.WithFields(log.Fields{"run_id": id}).Errorf("Benchmark run failed: %v", err)
		return
	}
	log.WithFields(log.Fields{
		"run_id":    id,
		"data_size": cfg.DataSize,
		"workers":   cfg.Workers,
	}).Info("Benchmark run completed")
}

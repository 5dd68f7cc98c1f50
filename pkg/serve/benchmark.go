package serve

import (
	"fmt"
	"net/http"

	"github.com/qcserestipy/sumbench/pkg/bench"
)

// BenchmarkRequest is the request schema shared by POST /benchmark and
// POST /runs. Zero workers selects the server default; zero repeats
// means a single sample.
type BenchmarkRequest struct {
	DataSize int `json:"data_size"`
	Workers  int `json:"workers,omitempty"`
	Repeats  int `json:"repeats,omitempty"`
}

// BenchmarkResponse is the synchronous /benchmark reply.
type BenchmarkResponse struct {
	Config  bench.Config   `json:"config"`
	Results []bench.Result `json:"results"`
}

// configFor validates req and resolves it into a runnable Config.
func (s *Server) configFor(req BenchmarkRequest) (bench.Config, error) {
	if req.DataSize < 0 {
		return bench.Config{}, fmt.Errorf("data_size must be >= 0, got %d", req.DataSize)
	}
	if req.DataSize > bench.MaxDataSize {
		return bench.Config{}, fmt.Errorf("data_size must be <= %d, got %d", bench.MaxDataSize, req.DataSize)
	}
	if req.Workers < 0 {
		return bench.Config{}, fmt.Errorf("workers must be >= 0, got %d", req.Workers)
	}
	if req.Repeats < 0 {
		return bench.Config{}, fmt.Errorf("repeats must be >= 0, got %d", req.Repeats)
	}
	workers := req.Workers
	if workers == 0 {
		workers = s.Workers
	}
	return bench.Config{
		DataSize: req.DataSize,
		Workers:  workers,
		Repeats:  req.Repeats,
	}, nil
}

func (s *Server) runBenchmark(req BenchmarkRequest) (BenchmarkResponse, error) {
	cfg, err := s.configFor(req)
	if err != nil {
		return BenchmarkResponse{}, &StatusError{Code: http.StatusBadRequest, Err: err}
	}
	results, err := bench.Run(cfg)
	if err != nil {
		return BenchmarkResponse{}, err
	}
	return BenchmarkResponse{Config: cfg, Results: results}, nil
}

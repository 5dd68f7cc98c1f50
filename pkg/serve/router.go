package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/qcserestipy/sumbench/pkg/workerpool"
)

// Server exposes the benchmark suite over HTTP: a synchronous
// /benchmark route plus an asynchronous run registry under /runs.
type Server struct {
	Workers int
	Router  *chi.Mux

	runs *runRegistry
}

// New builds a Server. An optional positive worker count overrides the
// hardware default applied when a request leaves workers unset.
func New(workers ...int) *Server {
	numWorkers := workerpool.DefaultWorkers()
	if len(workers) > 0 && workers[0] > 0 {
		numWorkers = workers[0]
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Logger("router", log.StandardLogger()))
	r.Use(middleware.Recoverer)

	s := &Server{
		Workers: numWorkers,
		Router:  r,
		runs:    newRunRegistry(),
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	PostJSON(r, "/benchmark", s.runBenchmark)
	s.registerRunRoutes(r)
	return s
}

func Launch(s *Server, targetPort int) {
	addr := fmt.Sprintf(":%d", targetPort)
	log.Infof("▶️  Starting server on %s", addr)
	// ListenAndServe blocks until an error occurs (e.g. port already in use).
	if err := http.ListenAndServe(addr, s.Router); err != nil {
		log.Fatalf("❌  Server failed: %v", err)
	}
}

// StatusError carries an HTTP status code with an error so generic
// routes can map validation failures to 4xx responses.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// PostJSON registers a POST route decoding the request body into T,
// invoking fn, and encoding its R result as JSON. Handler errors map to
// 500 unless they carry a StatusError code.
func PostJSON[T any, R any](
	r *chi.Mux,
	path string,
	fn func(T) (R, error),
) {
	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		res, err := fn(req)
		if err != nil {
			code := http.StatusInternalServerError
			var se *StatusError
			if errors.As(err, &se) {
				code = se.Code
			}
			http.Error(w, "processing error: "+err.Error(), code)
			return
		}

		writeJSON(w, res)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
	}
}

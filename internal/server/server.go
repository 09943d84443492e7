package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"cellmachine/internal/core"
	"cellmachine/internal/render"
	"cellmachine/internal/seed"
	"cellmachine/internal/sim"
	"cellmachine/internal/store"

	"github.com/charmbracelet/log"
)

// MaxRequestBytes bounds the size of a /generate request body.
const MaxRequestBytes = 1 << 20

// Response is returned by POST /generate.
type Response struct {
	FileName         string   `json:"file_name"`
	MediaType        string   `json:"media_type"`
	StepsRequested   int      `json:"steps_requested"`
	StepsSimulated   int      `json:"steps_simulated"`
	FinalAlive       int      `json:"final_alive"`
	Rule             string   `json:"rule"`
	GridWidth        int      `json:"grid_width"`
	GridHeight       int      `json:"grid_height"`
	Scale            int      `json:"scale"`
	Wrap             bool     `json:"wrap"`
	DelayCS          int      `json:"delay_cs"`
	RequestedDensity *float64 `json:"requested_density"`
	EffectiveDensity *float64 `json:"effective_density"`
	InitMask         *string  `json:"init_mask"`
	SeedCellCount    *int     `json:"seed_cell_count"`
	RandomSeed       uint64   `json:"random_seed"`
	Summary          string   `json:"summary"`
	Message          string   `json:"message"`
	LastPath         string   `json:"last_path"`
}

// Server exposes simulation runs over HTTP.
type Server struct {
	runner *sim.Runner
	store  *store.Store
	logger *log.Logger
	mux    *http.ServeMux
}

// New wires the routes. A nil logger discards output.
func New(runner *sim.Runner, st *store.Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = &sim.Runner{}
	}
	if st == nil {
		st = store.New(store.DefaultDir)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runner: runner, store: st, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	for _, f := range core.Formats() {
		s.mux.HandleFunc("GET /last."+f.Extension, s.handleLast(f))
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req sim.Request
	body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.fail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	opts, err := req.Options()
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.runner.Run(opts)
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, err.Error())
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(res.FileName), ".")
	path, err := s.store.Save(ext, res.Bytes)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	message := res.Summary
	if caption := strings.TrimSpace(req.Caption); caption != "" {
		message += "\n\n" + caption
	}
	s.logger.Info("generated", "file", res.FileName, "steps", res.StepsSimulated, "alive", res.FinalAlive)
	writeJSON(w, http.StatusOK, newResponse(res, message, path))
}

func (s *Server) handleLast(f core.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.store.Last(f.Extension)
		if errors.Is(err, store.ErrNotFound) {
			s.fail(w, http.StatusNotFound, "no "+f.Name+" has been generated yet")
			return
		}
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", f.MediaType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	if status >= 500 {
		s.logger.Error("request failed", "status", status, "err", msg)
	} else {
		s.logger.Warn("rejected request", "status", status, "err", msg)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newResponse(res *sim.Result, message, path string) Response {
	out := Response{
		FileName:         res.FileName,
		MediaType:        res.MediaType,
		StepsRequested:   res.StepsRequested,
		StepsSimulated:   res.StepsSimulated,
		FinalAlive:       res.FinalAlive,
		Rule:             res.RuleLabel,
		GridWidth:        res.Dimensions.Width,
		GridHeight:       res.Dimensions.Height,
		Scale:            res.Dimensions.Scale,
		Wrap:             res.Wrap,
		DelayCS:          res.Delay,
		RequestedDensity: res.RequestedDensity,
		EffectiveDensity: res.EffectiveDensity,
		RandomSeed:       res.RNGSeed,
		Summary:          res.Summary,
		Message:          message,
		LastPath:         path,
	}
	if res.MaskLabel != "" {
		m := res.MaskLabel
		out.InitMask = &m
	}
	if res.SeedCellCount > 0 {
		n := res.SeedCellCount
		out.SeedCellCount = &n
	}
	return out
}

var inputErrors = []error{
	seed.ErrOutOfBounds,
	seed.ErrGridTooSmall,
	seed.ErrEmptyMask,
	seed.ErrDensityRange,
	seed.ErrGridSize,
	render.ErrDimensionOverflow,
	render.ErrInvalidScale,
	render.ErrInvalidSize,
	render.ErrInvalidDelay,
}

func isInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

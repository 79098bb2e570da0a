package analysis

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"Flexura/internal/beam/model"
	"Flexura/internal/metrics"
)

type Handler struct{}

type errorBody struct {
	Error     bool      `json:"error"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, message string, problems []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{
		Error: true, Message: message, Errors: problems, Timestamp: time.Now(),
	})
}

// statusFor maps the engine's error taxonomy to transport status codes:
// ConfigError means the caller can fix the input (400); solver and
// numerical failures are deterministic properties of the configuration
// (422, not retryable).
func statusFor(err error) (int, string, []string) {
	var cfg *model.ConfigError
	if errors.As(err, &cfg) {
		return http.StatusBadRequest, "Invalid input data", cfg.Problems
	}
	var solver *model.SolverError
	if errors.As(err, &solver) {
		return http.StatusUnprocessableEntity, solver.Error(), nil
	}
	var numerical *model.NumericalError
	if errors.As(err, &numerical) {
		return http.StatusUnprocessableEntity, numerical.Error(), nil
	}
	return http.StatusInternalServerError, "Internal calculation error", nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, new(*model.ConfigError)):
		return "config_error"
	case errors.As(err, new(*model.SolverError)):
		return "solver_error"
	case errors.As(err, new(*model.NumericalError)):
		return "numerical_error"
	default:
		return "internal_error"
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", nil)
		return
	}
	started := time.Now()
	res, err := Analyze(req)
	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	metrics.AnalysesTotal.WithLabelValues(outcomeFor(err)).Inc()
	if err != nil {
		log.Printf("analysis %s failed: %v", req.ID, err)
		status, msg, problems := statusFor(err)
		writeError(w, status, msg, problems)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Validate(req))
}

type beamTypeInfo struct {
	ID               model.BeamType `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	SupportsRequired int            `json:"supports_required"`
}

// BeamTypes lists the supported boundary-condition classes.
func (h *Handler) BeamTypes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]beamTypeInfo{
		"beam_types": {
			{ID: model.SimplySupported, Name: "Simply Supported Beam", Description: "Pin-roller span", SupportsRequired: 2},
			{ID: model.Cantilever, Name: "Cantilever Beam", Description: "Fixed-free", SupportsRequired: 1},
			{ID: model.FixedFixed, Name: "Fixed-Fixed Beam", Description: "Both ends fixed", SupportsRequired: 2},
			{ID: model.FixedPinned, Name: "Fixed-Pinned Beam", Description: "One end fixed, one pinned", SupportsRequired: 2},
			{ID: model.Continuous, Name: "Continuous Beam", Description: "Three or more supports", SupportsRequired: 3},
		},
	})
}

type materialInfo struct {
	Name           string  `json:"name"`
	ElasticModulus float64 `json:"elastic_modulus"` // Pa
	Density        float64 `json:"density"`         // kg/m³
	YieldStrength  float64 `json:"yield_strength"`  // Pa
}

// Materials lists common material presets.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]materialInfo{
		"materials": {
			{Name: "Steel (A36)", ElasticModulus: 200e9, Density: 7850, YieldStrength: 250e6},
			{Name: "Concrete (C25/30)", ElasticModulus: 31e9, Density: 2400, YieldStrength: 25e6},
			{Name: "Aluminum (6061-T6)", ElasticModulus: 69e9, Density: 2700, YieldStrength: 276e6},
			{Name: "Wood (Douglas Fir)", ElasticModulus: 13e9, Density: 500, YieldStrength: 40e6},
		},
	})
}

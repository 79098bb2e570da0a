// Package analysis orchestrates the beam-analysis pipeline: validation,
// boundary resolution, reaction solving, force profiling, deflection
// integration, stress mapping and the safety assessment. Every stage
// consumes only the outputs of stages before it; all values are
// request-scoped and immutable once produced.
package analysis

import (
	"math"
	"time"

	"Flexura/internal/beam/boundary"
	"Flexura/internal/beam/deflect"
	"Flexura/internal/beam/model"
	"Flexura/internal/beam/profile"
	"Flexura/internal/beam/safety"
	"Flexura/internal/beam/statics"
	"Flexura/internal/beam/stress"
)

// Analyze runs the full pipeline on a request. It fails with a ConfigError
// before any numeric stage runs, and with SolverError/NumericalError from
// the solving stages; all failures are deterministic in the input.
func Analyze(req model.AnalysisRequest) (model.AnalysisResults, error) {
	started := time.Now()

	if err := boundary.ValidateRequest(req); err != nil {
		return model.AnalysisResults{}, err
	}
	rc, err := boundary.Resolve(req.Beam.Length, req.Supports)
	if err != nil {
		return model.AnalysisResults{}, err
	}

	sol, err := statics.Solve(req.Beam, rc, req.Loads.Loads)
	if err != nil {
		return model.AnalysisResults{}, err
	}

	// Shear and moment are always computed: deflection and stress derive
	// from the moment profile. The include flags only gate the output.
	xs, shear, moments := profile.Sample(req.Beam.Length, req.Loads.Loads, sol.Reactions, req.Options.NumberOfPoints)

	var deflections []float64
	if req.Options.IncludeDeflection {
		deflections, err = deflect.Integrate(req.Beam, xs, moments, rc.Supports)
		if err != nil {
			return model.AnalysisResults{}, err
		}
	}
	var stresses []float64
	if req.Options.IncludeStress {
		stresses, err = stress.Map(req.Beam, moments)
		if err != nil {
			return model.AnalysisResults{}, err
		}
	}

	check := safety.Assess(req.Beam, safety.Input{
		Positions:    xs,
		Stresses:     stresses,
		Deflections:  deflections,
		SafetyFactor: req.Options.SafetyFactor,
	})

	res := model.AnalysisResults{
		ID:          "result-" + req.ID,
		RequestID:   req.ID,
		Timestamp:   time.Now(),
		Beam:        req.Beam,
		Supports:    req.Supports,
		Loads:       req.Loads,
		Reactions:   sol.Reactions,
		SafetyCheck: check,
		Method:      sol.Method,
		Convergence: true,
	}
	if req.Options.IncludeMoment {
		res.Moments = dataPoints(xs, moments, model.UnitNewtonM)
		res.MaxMoment = maxOf(xs, moments)
	}
	if req.Options.IncludeShear {
		res.ShearForces = dataPoints(xs, shear, model.UnitNewtons)
		res.MaxShear = maxOf(xs, shear)
	}
	if req.Options.IncludeDeflection {
		res.Deflections = dataPoints(xs, deflections, model.UnitMeters)
		res.MaxDeflection = maxOf(xs, deflections)
	}
	if req.Options.IncludeStress {
		res.Stresses = dataPoints(xs, stresses, model.UnitPascals)
		res.MaxStress = maxOf(xs, stresses)
	}
	res.CalculationTime = float64(time.Since(started)) / float64(time.Millisecond)
	return res, nil
}

// Validate runs only the structural-invariant checks, without any numeric
// solve. Warnings and suggestions are advisory; only Errors make the
// request invalid.
func Validate(req model.AnalysisRequest) model.ValidationResult {
	out := model.ValidationResult{
		IsValid:     true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
	if err := boundary.ValidateRequest(req); err != nil {
		if cfg, ok := err.(*model.ConfigError); ok {
			out.Errors = cfg.Problems
		} else {
			out.Errors = []string{err.Error()}
		}
		out.IsValid = false
	}

	var fy float64
	for _, l := range req.Loads.Loads {
		switch ld := l.(type) {
		case model.PointLoad:
			fy += ld.VerticalComponent()
		case model.DistributedLoad:
			fy += ld.ResultantTo(ld.EndPosition)
		}
	}
	if len(req.Loads.Loads) > 0 && fy == 0 {
		out.Warnings = append(out.Warnings, "loads have no net vertical component; bending results may be trivial")
	}
	if req.Options.SafetyFactor >= 1.0 && req.Options.SafetyFactor < 1.25 {
		out.Warnings = append(out.Warnings, "safety factor below 1.25 leaves little margin for load uncertainty")
	}
	if req.Options.NumberOfPoints >= 10 && req.Options.NumberOfPoints < 50 {
		out.Suggestions = append(out.Suggestions, "increase number_of_points to 50 or more for smoother profiles")
	}
	return out
}

func dataPoints(xs, values []float64, unit string) []model.DataPoint {
	out := make([]model.DataPoint, len(xs))
	for i := range xs {
		out[i] = model.DataPoint{Position: xs[i], Value: values[i], Unit: unit}
	}
	return out
}

// maxOf reports the signed value of largest magnitude and its position.
func maxOf(xs, values []float64) model.MaxValues {
	if len(values) == 0 {
		return model.MaxValues{}
	}
	idx := 0
	for i, v := range values {
		if math.Abs(v) > math.Abs(values[idx]) {
			idx = i
		}
	}
	return model.MaxValues{Value: values[idx], Position: xs[idx]}
}

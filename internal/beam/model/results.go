package model

import (
	"encoding/json"
	"time"
)

// Fixed unit strings, preserved verbatim in every DataPoint.
const (
	UnitMeters  = "m"
	UnitNewtons = "N"
	UnitNewtonM = "N·m"
	UnitPascals = "Pa"
)

// AnalysisOptions selects which profiles to compute and at what density.
type AnalysisOptions struct {
	IncludeDeflection bool    `json:"include_deflection"`
	IncludeMoment     bool    `json:"include_moment"`
	IncludeShear      bool    `json:"include_shear"`
	IncludeStress     bool    `json:"include_stress"`
	NumberOfPoints    int     `json:"number_of_points"` // 10..1000
	SafetyFactor      float64 `json:"safety_factor"`    // ≥ 1.0
}

// DefaultOptions mirrors the API defaults: everything enabled, 100 sample
// points, safety factor 1.5.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		IncludeDeflection: true,
		IncludeMoment:     true,
		IncludeShear:      true,
		IncludeStress:     true,
		NumberOfPoints:    100,
		SafetyFactor:      1.5,
	}
}

func (o *AnalysisOptions) UnmarshalJSON(data []byte) error {
	type alias AnalysisOptions
	a := alias(DefaultOptions())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = AnalysisOptions(a)
	return nil
}

// AnalysisRequest is the single input aggregate of an analysis run.
type AnalysisRequest struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Beam      BeamProperties    `json:"beam"`
	Supports  SupportConditions `json:"supports"`
	Loads     LoadConditions    `json:"loads"`
	Options   AnalysisOptions   `json:"analysis_options"`
}

// UnmarshalJSON pre-fills the options so a request that omits the
// analysis_options object entirely still gets the API defaults.
func (r *AnalysisRequest) UnmarshalJSON(data []byte) error {
	type alias AnalysisRequest
	a := alias{Options: DefaultOptions()}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = AnalysisRequest(a)
	return nil
}

// DataPoint is one sample of a profile along the span.
type DataPoint struct {
	Position float64 `json:"position"` // m
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
}

// MaxValues records the extreme absolute value of a profile and where it
// occurs.
type MaxValues struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
}

type Quantity string

const (
	QuantityMoment     Quantity = "moment"
	QuantityShear      Quantity = "shear"
	QuantityDeflection Quantity = "deflection"
	QuantityStress     Quantity = "stress"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// CriticalPoint is a governing sample compared against its allowable value.
type CriticalPoint struct {
	Position         float64  `json:"position"`
	Type             Quantity `json:"type"`
	ActualValue      float64  `json:"actual_value"`
	AllowableValue   float64  `json:"allowable_value"`
	UtilizationRatio float64  `json:"utilization_ratio"` // clamped to [0,1]
	Severity         Severity `json:"severity"`
}

type SafetyAnalysis struct {
	IsStructurallySafe bool            `json:"is_structurally_safe"`
	SafetyFactor       float64         `json:"safety_factor"`
	CriticalPoints     []CriticalPoint `json:"critical_points"`
	Warnings           []string        `json:"warnings"`
	Recommendations    []string        `json:"recommendations"`
}

// AnalysisResults aggregates everything a single analysis run produced.
type AnalysisResults struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	Beam     BeamProperties    `json:"beam"`
	Supports SupportConditions `json:"supports"`
	Loads    LoadConditions    `json:"loads"`

	Reactions   []Reaction  `json:"reactions"`
	Moments     []DataPoint `json:"moments"`
	ShearForces []DataPoint `json:"shear_forces"`
	Deflections []DataPoint `json:"deflections"`
	Stresses    []DataPoint `json:"stresses"`

	MaxMoment     MaxValues `json:"max_moment"`
	MaxShear      MaxValues `json:"max_shear"`
	MaxDeflection MaxValues `json:"max_deflection"`
	MaxStress     MaxValues `json:"max_stress"`

	SafetyCheck SafetyAnalysis `json:"safety_check"`

	CalculationTime float64 `json:"calculation_time"` // ms
	Method          string  `json:"method"`
	Convergence     bool    `json:"convergence"`
}

// ValidationResult is the outcome of the cheap structural-invariant check.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Package safety compares the computed stress and deflection profiles
// against allowable limits and produces the structured safety assessment.
package safety

import (
	"fmt"
	"math"

	"Flexura/internal/beam/model"
)

// Severity thresholds on the utilization ratio. Fixed constants, not
// derived from input.
const (
	ThresholdMedium   = 0.5
	ThresholdHigh     = 0.75
	ThresholdCritical = 0.9
)

// DeflectionLimitRatio caps the allowable deflection at span/250.
const DeflectionLimitRatio = 250.0

// Bucket maps a utilization ratio to its severity band.
func Bucket(ratio float64) model.Severity {
	switch {
	case ratio < ThresholdMedium:
		return model.SeverityLow
	case ratio < ThresholdHigh:
		return model.SeverityMedium
	case ratio < ThresholdCritical:
		return model.SeverityHigh
	default:
		return model.SeverityCritical
	}
}

// Input bundles the profiles the assessor inspects. Either profile may be
// empty when the corresponding analysis option is disabled.
type Input struct {
	Positions    []float64
	Stresses     []float64 // Pa
	Deflections  []float64 // m
	SafetyFactor float64
}

// Assess evaluates every sample against the allowable values and reports
// whether the beam is structurally safe. A beam is unsafe as soon as any
// raw (unclamped) utilization ratio reaches 1.0.
func Assess(beam model.BeamProperties, in Input) model.SafetyAnalysis {
	sa := model.SafetyAnalysis{
		IsStructurallySafe: true,
		SafetyFactor:       in.SafetyFactor,
		CriticalPoints:     []model.CriticalPoint{},
		Warnings:           []string{},
		Recommendations:    []string{},
	}

	allowableStress := beam.Material.YieldStrength / in.SafetyFactor
	allowableDeflection := beam.Length / DeflectionLimitRatio

	stressPoint, stressRatio := govern(in.Positions, in.Stresses, allowableStress, model.QuantityStress)
	deflPoint, deflRatio := govern(in.Positions, in.Deflections, allowableDeflection, model.QuantityDeflection)

	if stressPoint != nil {
		sa.CriticalPoints = append(sa.CriticalPoints, *stressPoint)
		if stressRatio >= 1.0 {
			sa.IsStructurallySafe = false
		}
		switch stressPoint.Severity {
		case model.SeverityCritical:
			sa.Warnings = append(sa.Warnings, fmt.Sprintf(
				"bending stress at x=%.3g m reaches %.0f%% of the allowable %.3g Pa",
				stressPoint.Position, stressRatio*100, allowableStress))
		case model.SeverityHigh:
			sa.Warnings = append(sa.Warnings, fmt.Sprintf(
				"bending stress at x=%.3g m is high (%.0f%% of allowable)",
				stressPoint.Position, stressRatio*100))
		}
	}
	if deflPoint != nil {
		sa.CriticalPoints = append(sa.CriticalPoints, *deflPoint)
		if deflRatio >= 1.0 {
			sa.IsStructurallySafe = false
		}
		switch deflPoint.Severity {
		case model.SeverityCritical:
			sa.Warnings = append(sa.Warnings, fmt.Sprintf(
				"deflection at x=%.3g m reaches %.0f%% of the span/%d limit",
				deflPoint.Position, deflRatio*100, int(DeflectionLimitRatio)))
		case model.SeverityHigh:
			sa.Warnings = append(sa.Warnings, fmt.Sprintf(
				"deflection at x=%.3g m is high (%.0f%% of the span/%d limit)",
				deflPoint.Position, deflRatio*100, int(DeflectionLimitRatio)))
		}
	}

	sa.Recommendations = recommend(stressRatio, deflRatio)
	return sa
}

// govern finds the sample of maximum utilization for one quantity and
// returns its critical point together with the raw (unclamped) ratio.
func govern(xs, values []float64, allowable float64, q model.Quantity) (*model.CriticalPoint, float64) {
	if len(values) == 0 || allowable <= 0 {
		return nil, 0
	}
	idx := 0
	for i, v := range values {
		if math.Abs(v) > math.Abs(values[idx]) {
			idx = i
		}
	}
	ratio := math.Abs(values[idx]) / allowable
	cp := &model.CriticalPoint{
		Position:         xs[idx],
		Type:             q,
		ActualValue:      values[idx],
		AllowableValue:   allowable,
		UtilizationRatio: math.Min(ratio, 1.0),
		Severity:         Bucket(ratio),
	}
	return cp, ratio
}

func recommend(stressRatio, deflRatio float64) []string {
	recs := []string{}
	switch {
	case stressRatio >= 1.0 && stressRatio >= deflRatio:
		recs = append(recs,
			"Overstress governs: increase the section modulus (deeper section) or use a higher-grade material.")
	case deflRatio >= 1.0:
		recs = append(recs,
			"Excessive deflection governs: increase the moment of inertia or reduce the span.")
	case stressRatio >= ThresholdCritical || deflRatio >= ThresholdCritical:
		recs = append(recs,
			"The design is near its limit; consider a larger section before adding load.")
	}
	return recs
}

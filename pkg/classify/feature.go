// ABOUTME: Feature vector type and distance measures
// ABOUTME: Euclidean and mahalanobis distance over acoustic features
package classify

import (
	"math"

	"github.com/meowtalk-labs/meowtalk-go/pkg/dsp"
)

// Vector is the acoustic feature vector used for matching
type Vector struct {
	ZeroCrossRate    float64 `json:"zeroCrossRate"`
	Energy           float64 `json:"energy"`
	RootMeanSquare   float64 `json:"rootMeanSquare"`
	Pitch            float64 `json:"pitch"`
	PeakFreq         float64 `json:"peakFreq"`
	SpectralCentroid float64 `json:"spectralCentroid"`
	SpectralRolloff  float64 `json:"spectralRolloff"`
	Duration         float64 `json:"duration"`
}

// VectorFromFeatures converts dsp features to a matchable vector
func VectorFromFeatures(f dsp.Features) Vector {
	return Vector{
		ZeroCrossRate:    f.ZeroCrossRate,
		Energy:           f.Energy,
		RootMeanSquare:   f.RootMeanSquare,
		Pitch:            f.Pitch,
		PeakFreq:         f.PeakFreq,
		SpectralCentroid: f.SpectralCentroid,
		SpectralRolloff:  f.SpectralRolloff,
		Duration:         f.Duration,
	}
}

// Map returns the vector components keyed by their JSON names
func (v Vector) Map() map[string]float64 {
	return map[string]float64{
		"zeroCrossRate":    v.ZeroCrossRate,
		"energy":           v.Energy,
		"rootMeanSquare":   v.RootMeanSquare,
		"pitch":            v.Pitch,
		"peakFreq":         v.PeakFreq,
		"spectralCentroid": v.SpectralCentroid,
		"spectralRolloff":  v.SpectralRolloff,
		"duration":         v.Duration,
	}
}

// vectorDim is the number of components in a Vector
const vectorDim = 8

// values returns the vector components in a fixed order
func (v Vector) values() [vectorDim]float64 {
	return [vectorDim]float64{
		v.ZeroCrossRate,
		v.Energy,
		v.RootMeanSquare,
		v.Pitch,
		v.PeakFreq,
		v.SpectralCentroid,
		v.SpectralRolloff,
		v.Duration,
	}
}

// vectorFromValues rebuilds a Vector from ordered components
func vectorFromValues(vals [vectorDim]float64) Vector {
	return Vector{
		ZeroCrossRate:    vals[0],
		Energy:           vals[1],
		RootMeanSquare:   vals[2],
		Pitch:            vals[3],
		PeakFreq:         vals[4],
		SpectralCentroid: vals[5],
		SpectralRolloff:  vals[6],
		Duration:         vals[7],
	}
}

// EuclideanDistance computes straight-line distance between two vectors
func EuclideanDistance(a, b Vector) float64 {
	av, bv := a.values(), b.values()
	var sum float64
	for i := 0; i < vectorDim; i++ {
		d := av[i] - bv[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// distance degenerates when a component never varies
const stdDevEpsilon = 1e-10

// MahalanobisDistance computes distance from a distribution described by
// per-component mean and standard deviation
func MahalanobisDistance(v, mean, stdDev Vector) float64 {
	vv, mv, sv := v.values(), mean.values(), stdDev.values()
	var sum float64
	for i := 0; i < vectorDim; i++ {
		d := (vv[i] - mv[i]) / (sv[i] + stdDevEpsilon)
		sum += d * d
	}
	return math.Sqrt(sum)
}

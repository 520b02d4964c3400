// ABOUTME: Tests for feature vector distances
// ABOUTME: Verifies euclidean and mahalanobis math
package classify

import (
	"math"
	"testing"
)

func TestEuclideanDistanceIdentity(t *testing.T) {
	v := Vector{Pitch: 220, Energy: 0.5, ZeroCrossRate: 0.1}
	if d := EuclideanDistance(v, v); d != 0 {
		t.Errorf("expected zero distance to self, got %f", d)
	}
}

func TestEuclideanDistanceKnown(t *testing.T) {
	a := Vector{Pitch: 3}
	b := Vector{Energy: 4}
	if d := EuclideanDistance(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestEuclideanDistanceSymmetric(t *testing.T) {
	a := Vector{Pitch: 220, Energy: 0.5}
	b := Vector{Pitch: 440, Energy: 0.2}
	if EuclideanDistance(a, b) != EuclideanDistance(b, a) {
		t.Error("distance not symmetric")
	}
}

func TestMahalanobisDistance(t *testing.T) {
	mean := Vector{Pitch: 200}
	stdDev := Vector{Pitch: 50}

	// One standard deviation out on a single axis
	v := Vector{Pitch: 250}
	if d := MahalanobisDistance(v, mean, stdDev); math.Abs(d-1.0) > 1e-6 {
		t.Errorf("expected distance 1.0, got %f", d)
	}
}

func TestMahalanobisZeroStdDev(t *testing.T) {
	mean := Vector{Pitch: 200}
	var stdDev Vector // all zero

	// Epsilon keeps this finite
	d := MahalanobisDistance(Vector{Pitch: 200}, mean, stdDev)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Errorf("expected finite distance, got %f", d)
	}
}

// ABOUTME: Classification package with the emotion sample library
// ABOUTME: Template matching over acoustic feature vectors
// Package classify matches acoustic feature vectors against a library of
// labelled samples. Each emotion keeps its raw sample vectors plus running
// mean and standard deviation; matching blends nearest-sample euclidean
// distance with mahalanobis distance from the emotion's distribution.
//
// Libraries persist as JSON and can be built incrementally with AddSample.
package classify

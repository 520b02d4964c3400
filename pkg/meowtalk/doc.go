// ABOUTME: High-level MeowTalk SDK API
// ABOUTME: One-shot detection, streaming sessions and result smoothing
// Package meowtalk provides the high-level classification API.
//
// Two usage modes are supported:
//   - Detector.ProcessAudio: one-shot classification of a complete buffer.
//     The input is copied before processing and never retained, the
//     classifier is invoked exactly once, and the result is returned as a
//     struct with a JSON text form.
//   - Session: streaming classification. Feed PCM incrementally; the session
//     buffers samples, classifies each full analysis window and delivers
//     results on a channel. Sessions are independent and safe to drive from
//     different goroutines.
//
// Example:
//
//	detector, err := meowtalk.NewDetector(meowtalk.Config{
//	    LibraryPath: "meows.json",
//	})
//	result, err := detector.ProcessAudio(samples)
//	fmt.Println(result.Emotion, result.Confidence)
package meowtalk

// ABOUTME: Sentinel errors for the SDK surface
// ABOUTME: Validation and session lifecycle failures
package meowtalk

import "errors"

var (
	// ErrEmptyAudio is returned when a buffer contains no samples
	ErrEmptyAudio = errors.New("empty audio buffer")

	// ErrInvalidData is returned for PCM data that is not sample aligned
	ErrInvalidData = errors.New("audio data not sample aligned")

	// ErrSampleOutOfRange is returned for non-finite samples
	ErrSampleOutOfRange = errors.New("sample out of range")

	// ErrBufferOverflow is returned when a session's backlog exceeds its limit
	ErrBufferOverflow = errors.New("session buffer overflow")

	// ErrSessionClosed is returned when feeding a closed session
	ErrSessionClosed = errors.New("session closed")

	// ErrSessionExists is returned when starting a duplicate stream ID
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionNotFound is returned for unknown stream IDs
	ErrSessionNotFound = errors.New("session not found")
)

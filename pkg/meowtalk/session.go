// ABOUTME: Streaming classification sessions
// ABOUTME: Buffers PCM, classifies per analysis window, delivers on a channel
package meowtalk

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
	"github.com/meowtalk-labs/meowtalk-go/pkg/dsp"
)

const (
	// maxBufferWindows bounds a session's backlog in analysis windows
	maxBufferWindows = 16

	// resultBuffer is the result channel depth; slow consumers lose results
	// rather than stalling the audio path
	resultBuffer = 10
)

// Session is one independent audio stream being classified
type Session struct {
	id       string
	detector *Detector
	window   []float64 // Hamming coefficients, length == WindowSize

	mu      sync.Mutex
	buffer  []float32
	closed  bool
	results chan Result

	smoother *Smoother
}

// NewSession starts a streaming session. An empty id gets a generated UUID.
func (d *Detector) NewSession(id string) *Session {
	if id == "" {
		id = uuid.New().String()
	}

	return &Session{
		id:       id,
		detector: d,
		window:   dsp.HammingWindow(d.config.WindowSize),
		buffer:   make([]float32, 0, d.config.WindowSize),
		results:  make(chan Result, resultBuffer),
		smoother: NewSmoother(DefaultSmoothingRate),
	}
}

// ID returns the stream identifier
func (s *Session) ID() string {
	return s.id
}

// Results delivers one Result per classified window. Results are dropped,
// not queued indefinitely, when the consumer falls behind.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Feed appends samples to the session. Every time a full analysis window
// accumulates it is classified and the window's samples are consumed.
func (s *Session) Feed(samples []float32) error {
	if len(samples) == 0 {
		return ErrEmptyAudio
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	windowSize := s.detector.config.WindowSize
	if len(s.buffer)+len(samples) > windowSize*maxBufferWindows {
		return ErrBufferOverflow
	}

	s.buffer = append(s.buffer, samples...)

	for len(s.buffer) >= windowSize {
		s.classifyWindow(s.buffer[:windowSize])
		remaining := copy(s.buffer, s.buffer[windowSize:])
		s.buffer = s.buffer[:remaining]
	}

	return nil
}

// FeedPCM16 appends 16-bit little-endian PCM bytes
func (s *Session) FeedPCM16(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyAudio
	}
	if len(data)%2 != 0 {
		return ErrInvalidData
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	return s.Feed(samples)
}

// classifyWindow runs one analysis window through the classifier.
// Caller holds the session lock.
func (s *Session) classifyWindow(samples []float32) {
	windowed := dsp.ApplyWindow(dsp.FromFloat32(samples), s.window)

	features := s.detector.extractor.Extract(windowed)
	vector := classify.VectorFromFeatures(features)
	emotion, confidence := s.detector.classifier.Match(vector)

	emotion, confidence = s.smoother.Observe(emotion, confidence)

	result := Result{
		StreamID:   s.id,
		Timestamp:  time.Now().Unix(),
		Emotion:    emotion,
		Confidence: confidence,
		Metadata: Meta{
			AudioLength: len(samples),
			Features:    vector,
		},
	}

	select {
	case s.results <- result:
	default:
		// Consumer is behind, drop this window's result
	}
}

// Pending returns the number of buffered samples awaiting a full window
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// Close ends the session and closes the result channel
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.results)
}

// SessionManager tracks active sessions by stream ID
type SessionManager struct {
	mu       sync.RWMutex
	detector *Detector
	sessions map[string]*Session
}

// NewSessionManager creates a manager for the detector's sessions
func NewSessionManager(d *Detector) *SessionManager {
	return &SessionManager{
		detector: d,
		sessions: make(map[string]*Session),
	}
}

// Start creates and registers a session for a stream ID
func (m *SessionManager) Start(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if _, exists := m.sessions[id]; exists {
			return nil, ErrSessionExists
		}
	}

	session := m.detector.NewSession(id)
	m.sessions[session.ID()] = session
	return session, nil
}

// Get looks up an active session
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Stop closes and removes a session
func (m *SessionManager) Stop(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}

	session.Close()
	delete(m.sessions, id)
	return nil
}

// StopAll closes every active session
func (m *SessionManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		session.Close()
		delete(m.sessions, id)
	}
}

// Count returns the number of active sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ABOUTME: Bubbletea model for the client monitor TUI
// ABOUTME: Shows connection, stream state and recent detections
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// maxRecent is how many detections the TUI keeps on screen
const maxRecent = 8

// Detection is one classified window for display
type Detection struct {
	Emotion    string
	Confidence float64
}

// Model represents the TUI state
type Model struct {
	// Connection
	connected  bool
	serverName string

	// Negotiated upload format
	codec      string
	sampleRate int
	channels   int

	// Stream
	streamID string

	// Recent detections, newest first
	recent []Detection

	// Stats
	chunksSent      int64
	resultsReceived int64
	errors          int64

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a TUI model
func NewModel() Model {
	return Model{}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderDetections()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders connection status
func (m Model) renderHeader() string {
	connStatus := "Disconnected"
	if m.connected {
		connStatus = fmt.Sprintf("Connected to %s", m.serverName)
	}

	return fmt.Sprintf(`┌─ MeowTalk Client ────────────────────────────────────┐
│ Status: %-45s │
├──────────────────────────────────────────────────────┤
`, truncate(connStatus, 45))
}

// renderStreamInfo renders the negotiated format and active stream
func (m Model) renderStreamInfo() string {
	if !m.connected || m.codec == "" {
		return "│ No stream                                            │\n"
	}

	s := fmt.Sprintf("│ Format: %s %dHz %s%-29s │\n",
		m.codec, m.sampleRate, channelName(m.channels), "")
	s += fmt.Sprintf("│ Stream: %-45s │\n", truncate(m.streamID, 45))

	return s
}

// renderDetections renders the recent detection list
func (m Model) renderDetections() string {
	s := "│                                                      │\n"
	s += "│ Detections:                                          │\n"

	if len(m.recent) == 0 {
		s += "│   (listening...)                                     │\n"
		return s
	}

	for _, d := range m.recent {
		line := fmt.Sprintf("%s [%s] %.0f%%",
			d.Emotion, renderBar(int(d.Confidence*100), 100, 10), d.Confidence*100)
		s += fmt.Sprintf("│   %-51s │\n", truncate(line, 51))
	}

	return s
}

// renderStats renders upload and result statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  Sent: %d  Results: %d  Errors: %d%-8s │
`, m.chunksSent, m.resultsReceived, m.errors, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Window: %dx%d                                      │
`, m.width, m.height)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from a status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Connected != nil {
		m.connected = *msg.Connected
	}
	if msg.ServerName != "" {
		m.serverName = msg.ServerName
	}
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
	}
	if msg.StreamID != "" {
		m.streamID = msg.StreamID
	}
	if msg.Detection != nil {
		m.recent = append([]Detection{*msg.Detection}, m.recent...)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[:maxRecent]
		}
	}
	if msg.ChunksSent != 0 {
		m.chunksSent = msg.ChunksSent
	}
	if msg.ResultsReceived != 0 {
		m.resultsReceived = msg.ResultsReceived
	}
	if msg.Errors != 0 {
		m.errors = msg.Errors
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Connected       *bool
	ServerName      string
	Codec           string
	SampleRate      int
	Channels        int
	StreamID        string
	Detection       *Detection
	ChunksSent      int64
	ResultsReceived int64
	Errors          int64
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}

// ABOUTME: WebSocket client for the MeowTalk streaming protocol
// ABOUTME: Handles connection, handshake, audio upload and result routing
package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 5 * time.Second

// Config holds client configuration
type Config struct {
	ServerAddr       string
	ClientID         string
	Name             string
	Version          int
	DeviceInfo       DeviceInfo
	SupportedFormats []AudioFormat
}

// Client is a WebSocket client that uploads audio and receives results
type Client struct {
	config Config
	conn   *websocket.Conn
	mu     sync.RWMutex

	// Message channels
	Results chan DetectionResult
	Errors  chan ServerError
	Started chan StreamStarted

	serverHello ServerHello
	connected   bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewClient creates a client for one server connection
func NewClient(config Config) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config:  config,
		Results: make(chan DetectionResult, 100),
		Errors:  make(chan ServerError, 10),
		Started: make(chan StreamStarted, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Connect establishes the WebSocket connection and performs the handshake
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: "/meowtalk"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	if err := c.handshake(); err != nil {
		c.Close()
		return fmt.Errorf("handshake failed: %w", err)
	}

	go c.readMessages()

	return nil
}

// handshake sends client/hello and waits for server/hello
func (c *Client) handshake() error {
	hello := ClientHello{
		ClientID:         c.config.ClientID,
		Name:             c.config.Name,
		Version:          c.config.Version,
		DeviceInfo:       &c.config.DeviceInfo,
		SupportedFormats: c.config.SupportedFormats,
	}

	if err := c.sendJSON(Message{Type: TypeClientHello, Payload: hello}); err != nil {
		return fmt.Errorf("failed to send client/hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read server/hello: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to parse server/hello: %w", err)
	}
	if msg.Type != TypeServerHello {
		return fmt.Errorf("expected %s, got %s", TypeServerHello, msg.Type)
	}

	payloadBytes, _ := json.Marshal(msg.Payload)
	var serverHello ServerHello
	if err := json.Unmarshal(payloadBytes, &serverHello); err != nil {
		return fmt.Errorf("failed to parse server/hello payload: %w", err)
	}

	c.mu.Lock()
	c.serverHello = serverHello
	c.mu.Unlock()

	return nil
}

// ServerHello returns the handshake response. Valid after Connect.
func (c *Client) ServerHello() ServerHello {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverHello
}

// StartStream opens a classification stream. An empty streamID asks the
// server to assign one; the assigned ID arrives on Started.
func (c *Client) StartStream(streamID string) error {
	return c.sendJSON(Message{
		Type:    TypeStreamStart,
		Payload: StreamStart{StreamID: streamID},
	})
}

// EndStream closes a classification stream
func (c *Client) EndStream(streamID string) error {
	return c.sendJSON(Message{
		Type:    TypeStreamEnd,
		Payload: StreamEnd{StreamID: streamID},
	})
}

// SendAudio uploads one encoded audio frame
func (c *Client) SendAudio(timestamp int64, data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return fmt.Errorf("not connected")
	}

	return c.conn.WriteMessage(websocket.BinaryMessage, CreateAudioChunk(timestamp, data))
}

// sendJSON sends a JSON message
func (c *Client) sendJSON(msg Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return fmt.Errorf("not connected")
	}

	return c.conn.WriteJSON(msg)
}

// readMessages reads and routes incoming messages
func (c *Client) readMessages() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if messageType != websocket.TextMessage {
			log.Printf("Unexpected WebSocket message type: %d", messageType)
			continue
		}

		c.handleJSONMessage(data)
	}
}

// handleJSONMessage routes server messages to the client's channels
func (c *Client) handleJSONMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Failed to parse JSON message: %v", err)
		return
	}

	payloadBytes, _ := json.Marshal(msg.Payload)

	switch msg.Type {
	case TypeResult:
		var result DetectionResult
		if err := json.Unmarshal(payloadBytes, &result); err != nil {
			log.Printf("Failed to parse detection/result: %v", err)
			return
		}
		select {
		case c.Results <- result:
		case <-c.ctx.Done():
		}

	case TypeStreamStart:
		var started StreamStarted
		if err := json.Unmarshal(payloadBytes, &started); err != nil {
			log.Printf("Failed to parse stream/start ack: %v", err)
			return
		}
		select {
		case c.Started <- started:
		case <-c.ctx.Done():
		}

	case TypeError:
		var serverErr ServerError
		if err := json.Unmarshal(payloadBytes, &serverErr); err != nil {
			log.Printf("Failed to parse server/error: %v", err)
			return
		}
		select {
		case c.Errors <- serverErr:
		case <-time.After(100 * time.Millisecond):
			log.Printf("Error channel full, dropping: %s", serverErr.Message)
		}

	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

// Close closes the connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		c.connected = false
		c.cancel()
		c.conn.Close()
	}
}

// IsConnected returns connection status
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

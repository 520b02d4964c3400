// ABOUTME: MeowTalk classification server
// ABOUTME: Manages WebSocket connections, per-client streams and result push
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/meowtalk-labs/meowtalk-go/internal/discovery"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/decode"
	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
	"github.com/meowtalk-labs/meowtalk-go/pkg/meowtalk"
	"github.com/meowtalk-labs/meowtalk-go/pkg/protocol"
)

// ProtocolVersion is the protocol version this server speaks
const ProtocolVersion = 1

// Server is the MeowTalk classification server
type Server struct {
	config   Config
	serverID string

	library  *classify.Library
	detector *meowtalk.Detector

	upgrader websocket.Upgrader

	httpServer *http.Server
	mux        *http.ServeMux

	clients   map[string]*Client
	clientsMu sync.RWMutex

	mdnsManager *discovery.Manager

	tui       *ServerTUI
	startTime time.Time

	stopChan   chan struct{}
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	wg         sync.WaitGroup
}

// Client is one connected client
type Client struct {
	ID   string
	Name string
	Conn *websocket.Conn

	// Negotiated upload format and its decoder
	Format  protocol.AudioFormat
	decoder decode.Decoder

	manager *meowtalk.SessionManager

	// The stream binary audio chunks feed into
	activeStream *meowtalk.Session

	lastEmotion    string
	lastConfidence float64

	sendChan chan interface{}

	// Result-pump goroutines that send on sendChan; waited on before
	// sendChan is closed
	pumps sync.WaitGroup

	mu sync.RWMutex
}

// New creates a server and loads its sample library
func New(config Config) (*Server, error) {
	library, err := classify.LoadFile(config.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample library: %w", err)
	}
	if library.SampleCount() == 0 {
		return nil, fmt.Errorf("sample library %s is empty", config.LibraryPath)
	}

	detector, err := meowtalk.NewDetectorWithClassifier(library, meowtalk.Config{
		SampleRate: config.SampleRate,
		WindowSize: config.WindowSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}

	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		library:  library,
		detector: detector,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local-network deployment, non-browser clients have no Origin
				return true
			},
		},
		clients:   make(map[string]*Client),
		startTime: time.Now(),
		stopChan:  make(chan struct{}),
	}

	s.mux.HandleFunc("/meowtalk", s.handleWebSocket)

	return s, nil
}

// Start runs the server until Stop is called or the listener fails
func (s *Server) Start() error {
	if s.config.UseTUI {
		s.tui = NewServerTUI()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.tui.Start(s.config.Name, s.config.Port)
		}()

		// Give the TUI time to take over the terminal
		time.Sleep(100 * time.Millisecond)
	}

	log.Printf("Server starting: %s (ID: %s)", s.config.Name, s.serverID)
	log.Printf("Library: %d samples, emotions: %v", s.library.SampleCount(), s.library.Emotions())

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		}
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("WebSocket server listening on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	var tuiQuitChan <-chan struct{}
	if s.tui != nil {
		tuiQuitChan = s.tui.QuitChan()
	}

	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case <-tuiQuitChan:
		log.Printf("TUI quit requested, shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	s.shutdownMu.Lock()
	s.isShutdown = true
	s.shutdownMu.Unlock()

	if s.tui != nil {
		s.tui.Stop()
	}

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	s.wg.Wait()
	log.Printf("Server stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// handleWebSocket upgrades and hands off the connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.handleConnection(conn)
}

// handleConnection manages one client connection
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.shutdownMu.RLock()
	if s.isShutdown {
		s.shutdownMu.RUnlock()
		return
	}
	s.shutdownMu.RUnlock()

	client, err := s.handshake(conn)
	if err != nil {
		log.Printf("Handshake failed: %v", err)
		return
	}

	s.clientsMu.Lock()
	if existing, exists := s.clients[client.ID]; exists {
		s.clientsMu.Unlock()
		log.Printf("Client ID %s already connected (name: %s), rejecting duplicate",
			client.ID, existing.Name)
		s.writeError(conn, protocol.ServerError{
			Code:    protocol.CodeBadMessage,
			Message: "client ID already connected",
		})
		return
	}
	s.clients[client.ID] = client
	s.clientsMu.Unlock()

	s.updateTUI()

	defer func() {
		// Closing the sessions ends their result channels; the pumps must
		// drain before sendChan can be closed safely
		client.manager.StopAll()
		client.pumps.Wait()
		if client.decoder != nil {
			client.decoder.Close()
		}

		s.clientsMu.Lock()
		delete(s.clients, client.ID)
		s.clientsMu.Unlock()
		close(client.sendChan)
		log.Printf("Client disconnected: %s", client.Name)

		s.updateTUI()
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clientWriter(client)
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			s.handleAudioChunk(client, data)
		case websocket.TextMessage:
			s.handleClientMessage(client, data)
		}
	}
}

// handshake reads client/hello, negotiates a format and answers server/hello
func (s *Server) handshake(conn *websocket.Conn) (*Client, error) {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read hello: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse hello: %w", err)
	}
	if msg.Type != protocol.TypeClientHello {
		return nil, fmt.Errorf("expected %s, got %s", protocol.TypeClientHello, msg.Type)
	}

	payloadBytes, _ := json.Marshal(msg.Payload)
	var hello protocol.ClientHello
	if err := json.Unmarshal(payloadBytes, &hello); err != nil {
		return nil, fmt.Errorf("failed to parse hello payload: %w", err)
	}
	if hello.ClientID == "" {
		return nil, fmt.Errorf("client hello missing client_id")
	}

	format, decoder, err := s.negotiateFormat(hello.SupportedFormats)
	if err != nil {
		s.writeError(conn, protocol.ServerError{
			Code:    protocol.CodeBadMessage,
			Message: err.Error(),
		})
		return nil, err
	}

	log.Printf("Client hello: %s (ID: %s, codec: %s)", hello.Name, hello.ClientID, format.Codec)

	client := &Client{
		ID:       hello.ClientID,
		Name:     hello.Name,
		Conn:     conn,
		Format:   format,
		decoder:  decoder,
		manager:  meowtalk.NewSessionManager(s.detector),
		sendChan: make(chan interface{}, 100),
	}

	serverHello := protocol.ServerHello{
		ServerID: s.serverID,
		Name:     s.config.Name,
		Version:  ProtocolVersion,
		Format:   format,
		Emotions: s.library.Emotions(),
	}

	helloMsg, err := json.Marshal(protocol.Message{
		Type:    protocol.TypeServerHello,
		Payload: serverHello,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server hello: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, helloMsg); err != nil {
		return nil, fmt.Errorf("failed to send server hello: %w", err)
	}

	return client, nil
}

// negotiateFormat picks the first client format the server can decode
func (s *Server) negotiateFormat(formats []protocol.AudioFormat) (protocol.AudioFormat, decode.Decoder, error) {
	for _, f := range formats {
		af := audio.Format{
			Codec:      f.Codec,
			Channels:   f.Channels,
			SampleRate: f.SampleRate,
			BitDepth:   f.BitDepth,
		}

		var decoder decode.Decoder
		var err error
		switch f.Codec {
		case "pcm":
			decoder, err = decode.NewPCM(af)
		case "opus":
			decoder, err = decode.NewOpus(af)
		default:
			continue
		}
		if err != nil {
			log.Printf("Rejecting format %+v: %v", f, err)
			continue
		}
		return f, decoder, nil
	}

	return protocol.AudioFormat{}, nil, fmt.Errorf("no supported audio format offered")
}

// clientWriter drains the client's send channel onto the socket
func (s *Server) clientWriter(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	const writeDeadline = 10 * time.Second

	for {
		select {
		case msg, ok := <-client.sendChan:
			if !ok {
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling message: %v", err)
				continue
			}
			client.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}

		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}

// handleClientMessage processes JSON control messages
func (s *Server) handleClientMessage(client *Client, data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(client, protocol.ServerError{
			Code:    protocol.CodeBadMessage,
			Message: "unparseable message",
		})
		return
	}

	payloadBytes, _ := json.Marshal(msg.Payload)

	switch msg.Type {
	case protocol.TypeStreamStart:
		var start protocol.StreamStart
		if err := json.Unmarshal(payloadBytes, &start); err != nil {
			s.sendError(client, protocol.ServerError{
				Code:    protocol.CodeBadMessage,
				Message: "bad stream/start payload",
			})
			return
		}
		s.startStream(client, start.StreamID)

	case protocol.TypeStreamEnd:
		var end protocol.StreamEnd
		if err := json.Unmarshal(payloadBytes, &end); err != nil {
			s.sendError(client, protocol.ServerError{
				Code:    protocol.CodeBadMessage,
				Message: "bad stream/end payload",
			})
			return
		}
		s.endStream(client, end.StreamID)

	default:
		log.Printf("Unknown message type from %s: %s", client.Name, msg.Type)
	}

	if s.config.Debug {
		log.Printf("[DEBUG] %s from %s", msg.Type, client.Name)
	}
}

// startStream opens a session and pumps its results to the client
func (s *Server) startStream(client *Client, streamID string) {
	session, err := client.manager.Start(streamID)
	if err != nil {
		s.sendError(client, protocol.ServerError{
			StreamID: streamID,
			Code:     protocol.CodeStreamExists,
			Message:  err.Error(),
		})
		return
	}

	client.mu.Lock()
	client.activeStream = session
	client.mu.Unlock()

	s.sendMessage(client, protocol.TypeStreamStart, protocol.StreamStarted{
		StreamID: session.ID(),
	})

	s.wg.Add(1)
	client.pumps.Add(1)
	go func() {
		defer s.wg.Done()
		defer client.pumps.Done()
		for result := range session.Results() {
			client.mu.Lock()
			client.lastEmotion = result.Emotion
			client.lastConfidence = result.Confidence
			client.mu.Unlock()
			s.updateTUI()

			s.sendMessage(client, protocol.TypeResult, protocol.DetectionResult{
				StreamID:   result.StreamID,
				Timestamp:  result.Timestamp,
				Emotion:    result.Emotion,
				Confidence: result.Confidence,
				Metadata: &protocol.ResultDetail{
					AudioLength: result.Metadata.AudioLength,
					Features:    result.Metadata.Features.Map(),
				},
			})
		}
	}()

	s.updateTUI()
}

// endStream closes a session
func (s *Server) endStream(client *Client, streamID string) {
	client.mu.Lock()
	if client.activeStream != nil && client.activeStream.ID() == streamID {
		client.activeStream = nil
	}
	client.mu.Unlock()

	if err := client.manager.Stop(streamID); err != nil {
		s.sendError(client, protocol.ServerError{
			StreamID: streamID,
			Code:     protocol.CodeUnknownStream,
			Message:  err.Error(),
		})
		return
	}

	s.updateTUI()
}

// handleAudioChunk decodes an upload frame and feeds the active stream
func (s *Server) handleAudioChunk(client *Client, data []byte) {
	chunk, err := protocol.ParseAudioChunk(data)
	if err != nil {
		s.sendError(client, protocol.ServerError{
			Code:    protocol.CodeBadMessage,
			Message: err.Error(),
		})
		return
	}

	client.mu.RLock()
	session := client.activeStream
	client.mu.RUnlock()

	if session == nil {
		s.sendError(client, protocol.ServerError{
			Code:    protocol.CodeUnknownStream,
			Message: "no active stream",
		})
		return
	}

	samples, err := client.decoder.Decode(chunk.Data)
	if err != nil {
		s.sendError(client, protocol.ServerError{
			StreamID: session.ID(),
			Code:     protocol.CodeDecodeFailed,
			Message:  err.Error(),
		})
		return
	}
	if len(samples) == 0 {
		return
	}

	if s.config.Debug {
		log.Printf("[DEBUG] Audio chunk from %s: %d bytes, %d samples, ts=%d",
			client.Name, len(chunk.Data), len(samples), chunk.Timestamp)
	}

	if err := session.Feed(samples); err != nil {
		s.sendError(client, protocol.ServerError{
			StreamID: session.ID(),
			Code:     protocol.CodeBufferOverflow,
			Message:  err.Error(),
		})
	}
}

// sendMessage queues a JSON message for a client
func (s *Server) sendMessage(client *Client, msgType string, payload interface{}) {
	msg := protocol.Message{
		Type:    msgType,
		Payload: payload,
	}

	select {
	case client.sendChan <- msg:
	default:
		log.Printf("Client %s send buffer full, dropping %s", client.Name, msgType)
	}
}

// sendError queues a server/error for a client
func (s *Server) sendError(client *Client, serverErr protocol.ServerError) {
	s.sendMessage(client, protocol.TypeError, serverErr)
}

// writeError writes an error directly, for connections without a writer yet
func (s *Server) writeError(conn *websocket.Conn, serverErr protocol.ServerError) {
	data, err := json.Marshal(protocol.Message{
		Type:    protocol.TypeError,
		Payload: serverErr,
	})
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, data)
}

// ABOUTME: MeowTalk streaming protocol message definitions
// ABOUTME: JSON control messages plus the binary audio chunk framing
package protocol

import (
	"encoding/binary"
	"fmt"
)

// Message is the top-level wrapper for all JSON protocol messages
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Message type strings
const (
	TypeClientHello = "client/hello"
	TypeServerHello = "server/hello"
	TypeStreamStart = "stream/start"
	TypeStreamEnd   = "stream/end"
	TypeResult      = "detection/result"
	TypeError       = "server/error"
)

// ClientHello is sent by clients to initiate the handshake
type ClientHello struct {
	ClientID   string      `json:"client_id"`
	Name       string      `json:"name"`
	Version    int         `json:"version"`
	DeviceInfo *DeviceInfo `json:"device_info,omitempty"`
	// Formats the client can upload, in preference order
	SupportedFormats []AudioFormat `json:"supported_formats"`
}

// DeviceInfo contains device identification
type DeviceInfo struct {
	ProductName     string `json:"product_name"`
	Manufacturer    string `json:"manufacturer"`
	SoftwareVersion string `json:"software_version"`
}

// AudioFormat describes an upload audio format
type AudioFormat struct {
	Codec      string `json:"codec"` // "pcm" or "opus"
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate"`
	BitDepth   int    `json:"bit_depth"`
}

// ServerHello is the server's response to client/hello
type ServerHello struct {
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
	// Format selected from the client's supported list
	Format AudioFormat `json:"format"`
	// Emotions the server's library can recognize
	Emotions []string `json:"emotions"`
}

// StreamStart opens a classification stream. An empty StreamID asks the
// server to assign one, echoed back in every result.
type StreamStart struct {
	StreamID string `json:"stream_id,omitempty"`
}

// StreamStarted confirms a stream and carries the assigned ID
type StreamStarted struct {
	StreamID string `json:"stream_id"`
}

// StreamEnd closes a classification stream
type StreamEnd struct {
	StreamID string `json:"stream_id"`
}

// DetectionResult is pushed by the server for every classified window
type DetectionResult struct {
	StreamID   string        `json:"streamId"`
	Timestamp  int64         `json:"timestamp"`
	Emotion    string        `json:"emotion"`
	Confidence float64       `json:"confidence"`
	Metadata   *ResultDetail `json:"metadata,omitempty"`
}

// ResultDetail carries the evidence behind a result
type ResultDetail struct {
	AudioLength int                `json:"audioLength"`
	Features    map[string]float64 `json:"features,omitempty"`
}

// ServerError reports a protocol or processing failure
type ServerError struct {
	StreamID string `json:"stream_id,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// Error codes carried by ServerError
const (
	CodeBadMessage     = "bad_message"
	CodeUnknownStream  = "unknown_stream"
	CodeStreamExists   = "stream_exists"
	CodeDecodeFailed   = "decode_failed"
	CodeBufferOverflow = "buffer_overflow"
)

// Binary framing: [type:1][timestamp_us:8 big-endian][payload]
const (
	// BinaryHeaderSize is the fixed binary message header length
	BinaryHeaderSize = 1 + 8

	// AudioChunkType is the binary message type ID for audio uploads
	AudioChunkType = 4
)

// AudioChunk is one timestamped frame of encoded audio
type AudioChunk struct {
	Timestamp int64 // Microseconds, sender clock
	Data      []byte
}

// CreateAudioChunk frames encoded audio for the wire
func CreateAudioChunk(timestamp int64, data []byte) []byte {
	buf := make([]byte, BinaryHeaderSize+len(data))
	buf[0] = AudioChunkType
	binary.BigEndian.PutUint64(buf[1:BinaryHeaderSize], uint64(timestamp))
	copy(buf[BinaryHeaderSize:], data)
	return buf
}

// ParseAudioChunk decodes a framed audio message
func ParseAudioChunk(data []byte) (AudioChunk, error) {
	if len(data) < BinaryHeaderSize {
		return AudioChunk{}, fmt.Errorf("binary message too short: %d bytes", len(data))
	}
	if data[0] != AudioChunkType {
		return AudioChunk{}, fmt.Errorf("unknown binary message type: %d", data[0])
	}
	return AudioChunk{
		Timestamp: int64(binary.BigEndian.Uint64(data[1:BinaryHeaderSize])),
		Data:      data[BinaryHeaderSize:],
	}, nil
}

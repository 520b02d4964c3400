// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio chunk decoders
package decode

// Decoder decodes audio chunks in various formats to normalized float32 samples
type Decoder interface {
	// Decode converts encoded audio data to mono float32 samples
	Decode(data []byte) ([]float32, error)

	// Close releases decoder resources
	Close() error
}

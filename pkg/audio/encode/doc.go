// ABOUTME: Audio encoding package for the streaming client path
// ABOUTME: Encodes float32 PCM to PCM16 or Opus wire formats
// Package encode converts normalized float32 PCM into wire formats
// accepted by classification servers: 16-bit little-endian PCM or Opus.
package encode

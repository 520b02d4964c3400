// ABOUTME: Audio decoding package for chunk decoders and file loaders
// ABOUTME: Supports PCM16 and Opus chunks plus WAV, MP3 and FLAC files
// Package decode converts encoded audio into normalized float32 PCM.
//
// Two kinds of entry points are provided:
//   - Chunk decoders behind the Decoder interface (PCM16, Opus), used on the
//     streaming path where audio arrives frame by frame.
//   - File loaders (LoadWAV, LoadMP3, LoadFLAC, LoadFile) that read a whole
//     recording into an audio.Clip, used when building sample libraries or
//     analyzing files offline.
//
// All output is mono; stereo input is downmixed.
package decode

// ABOUTME: Package documentation for the streaming protocol
// ABOUTME: Wire format overview and message flow
// Package protocol implements the MeowTalk streaming protocol.
//
// Control messages are JSON text frames wrapped in a Message envelope with
// a type string and payload. Audio uploads are binary frames with a 9-byte
// header: one type byte followed by a big-endian microsecond timestamp.
//
// Flow: the client sends client/hello, the server answers server/hello with
// the negotiated upload format and the emotions it can recognize. The client
// opens streams with stream/start, uploads audio chunks, and receives one
// detection/result per classified window.
package protocol

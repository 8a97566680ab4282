// Package opusbridge is a thin bridge between Go and the native libopus
// codec, covering encoder lifecycle, per-frame encode, and per-packet
// decode.
//
// Key pieces include:
//   - Encoder: an exclusively-owned wrapper around one native Opus encoder
//   - DecodePacket: per-call ephemeral decoding of a single Opus packet
//   - Handle-based sentinel API (CreateEncoder/Encode/Decode/DestroyEncoder)
//     for embedders that cannot hold Go pointers across a boundary
//   - PCM frame helpers and Opus packet inspection
//   - An RTP payloader/depacketizer for encoded packets
//
// # Native Library
//
// Bindings load the system libopus. On Linux with CGO_ENABLED=0 the
// package uses purego and resolves the library at runtime; set
// OPUS_LIB_PATH to override the search. With CGO enabled it links against
// libopus directly for lower call overhead. Darwin requires CGO: the
// codec's variadic control call needs the cgo variant's fixed-arity shim.
//
// # Errors
//
// The Encoder/DecodePacket API reports failures as Go errors. The
// handle-based API collapses every failure to a sentinel (0 for handles,
// nil for slices) and emits diagnostics to the log channel only.
//
// # Concurrency
//
// Every call is synchronous and blocking. A single Encoder must not be
// used from multiple goroutines at once; distinct encoders and concurrent
// DecodePacket calls are independent.
package opusbridge

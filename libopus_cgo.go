//go:build (darwin || linux) && cgo

// Opus bindings via libopus using CGO.
//
// This implementation links against libopus at build time, avoiding the
// runtime dlopen of the purego variant and lowering per-call overhead.
// It is the only variant on darwin, where the variadic opus_encoder_ctl
// cannot be bound without the fixed-arity C shim below.

package opusbridge

/*
#cgo pkg-config: opus

#include <opus/opus.h>

// opus_encoder_ctl is variadic; every OPUS_SET_* request used by this
// bridge takes a single opus_int32, so a fixed-arity shim suffices.
static int bridge_encoder_ctl(OpusEncoder *st, int request, opus_int32 value) {
	return opus_encoder_ctl(st, request, value);
}
*/
import "C"

import "unsafe"

// Available checks if libopus is usable. With CGO it links at compile
// time, so this is always true.
func Available() bool {
	return true
}

func loadLibopus() error {
	return nil
}

// Version returns the libopus version string.
func Version() string {
	return C.GoString(C.opus_get_version_string())
}

func opusStrerror(code int32) string {
	return C.GoString(C.opus_strerror(C.int(code)))
}

func opusEncoderCreate(sampleRate, channels, application int32) (uintptr, int32) {
	var cerr C.int
	enc := C.opus_encoder_create(C.opus_int32(sampleRate), C.int(channels), C.int(application), &cerr)
	if cerr != C.OPUS_OK {
		return 0, int32(cerr)
	}
	if enc == nil {
		return 0, opusAllocFail
	}
	return uintptr(unsafe.Pointer(enc)), opusOK
}

func opusEncoderCtl(encoder uintptr, request, value int32) int32 {
	return int32(C.bridge_encoder_ctl((*C.OpusEncoder)(unsafe.Pointer(encoder)), C.int(request), C.opus_int32(value)))
}

func opusEncode(encoder uintptr, pcm []int16, frameSize int32, out []byte) int32 {
	return int32(C.opus_encode(
		(*C.OpusEncoder)(unsafe.Pointer(encoder)),
		(*C.opus_int16)(unsafe.Pointer(&pcm[0])),
		C.int(frameSize),
		(*C.uchar)(unsafe.Pointer(&out[0])),
		C.opus_int32(len(out)),
	))
}

func opusEncoderDestroy(encoder uintptr) {
	C.opus_encoder_destroy((*C.OpusEncoder)(unsafe.Pointer(encoder)))
}

func opusDecoderCreate(sampleRate, channels int32) (uintptr, int32) {
	var cerr C.int
	dec := C.opus_decoder_create(C.opus_int32(sampleRate), C.int(channels), &cerr)
	if cerr != C.OPUS_OK {
		return 0, int32(cerr)
	}
	if dec == nil {
		return 0, opusAllocFail
	}
	return uintptr(unsafe.Pointer(dec)), opusOK
}

func opusDecode(decoder uintptr, packet []byte, pcm []int16, maxSamples int32) int32 {
	return int32(C.opus_decode(
		(*C.OpusDecoder)(unsafe.Pointer(decoder)),
		(*C.uchar)(unsafe.Pointer(&packet[0])),
		C.opus_int32(len(packet)),
		(*C.opus_int16)(unsafe.Pointer(&pcm[0])),
		C.int(maxSamples),
		0,
	))
}

func opusDecoderDestroy(decoder uintptr) {
	C.opus_decoder_destroy((*C.OpusDecoder)(unsafe.Pointer(decoder)))
}

func opusPacketNbSamples(packet []byte, sampleRate int32) int32 {
	return int32(C.opus_packet_get_nb_samples(
		(*C.uchar)(unsafe.Pointer(&packet[0])),
		C.opus_int32(len(packet)),
		C.opus_int32(sampleRate),
	))
}

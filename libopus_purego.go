//go:build linux && !cgo

// Opus bindings via the system libopus using purego.
//
// This implementation loads libopus dynamically at runtime, so the package
// builds and runs with CGO_ENABLED=0. Callers that need the native codec
// should check Available() before relying on it.
//
// Linux only: opus_encoder_ctl is variadic, and the fixed-arity
// registration below is sound solely because the Linux System V and
// AAPCS64 conventions pass a single trailing opus_int32 in the same
// register as a fixed third parameter. Apple's ARM64 ABI passes variadic
// arguments on the stack instead, so darwin builds go through the cgo
// variant and its fixed-arity C shim.

package opusbridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libopusOnce    sync.Once
	libopusHandle  uintptr
	libopusInitErr error
)

// libopus function pointers
var (
	libopusEncoderCreate  func(sampleRate, channels, application int32, errPtr uintptr) uintptr
	libopusEncoderCtl     func(encoder uintptr, request, value int32) int32
	libopusEncode         func(encoder uintptr, pcm uintptr, frameSize int32, data uintptr, maxDataBytes int32) int32
	libopusEncoderDestroy func(encoder uintptr)

	libopusDecoderCreate  func(sampleRate, channels int32, errPtr uintptr) uintptr
	libopusDecode         func(decoder uintptr, data uintptr, dataLen int32, pcm uintptr, frameSize, decodeFEC int32) int32
	libopusDecoderDestroy func(decoder uintptr)

	libopusPacketNbSamples func(data uintptr, dataLen, sampleRate int32) int32
	libopusStrerror        func(code int32) uintptr
	libopusVersionString   func() uintptr
)

// loadLibopus loads the system libopus shared library exactly once.
func loadLibopus() error {
	libopusOnce.Do(func() {
		libopusInitErr = loadLibopusLib()
	})
	return libopusInitErr
}

func loadLibopusLib() error {
	paths := libopusSearchPaths()

	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			libopusHandle = handle
			loadLibopusSymbols()
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to load libopus: %w", lastErr)
	}
	return errors.New("libopus not found in any standard location")
}

func libopusSearchPaths() []string {
	var paths []string

	const libName = "libopus.so.0"

	// Environment variable overrides
	if envPath := os.Getenv("OPUS_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}

	// Next to the executable (bundled deployments)
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, libName),
			filepath.Join(exeDir, "..", "lib", libName),
		)
	}

	// System paths
	paths = append(paths,
		"libopus.so.0",
		"libopus.so",
		"/usr/lib/libopus.so.0",
		"/usr/local/lib/libopus.so",
		"/usr/lib/x86_64-linux-gnu/libopus.so.0",
		"/usr/lib/aarch64-linux-gnu/libopus.so.0",
	)

	return paths
}

func loadLibopusSymbols() {
	// Encoder functions. opus_encoder_ctl is variadic in C; every
	// OPUS_SET_* request used here takes exactly one opus_int32, which the
	// Linux calling conventions pass in the fixed third parameter's
	// register (see the build constraint note above).
	purego.RegisterLibFunc(&libopusEncoderCreate, libopusHandle, "opus_encoder_create")
	purego.RegisterLibFunc(&libopusEncoderCtl, libopusHandle, "opus_encoder_ctl")
	purego.RegisterLibFunc(&libopusEncode, libopusHandle, "opus_encode")
	purego.RegisterLibFunc(&libopusEncoderDestroy, libopusHandle, "opus_encoder_destroy")

	// Decoder functions
	purego.RegisterLibFunc(&libopusDecoderCreate, libopusHandle, "opus_decoder_create")
	purego.RegisterLibFunc(&libopusDecode, libopusHandle, "opus_decode")
	purego.RegisterLibFunc(&libopusDecoderDestroy, libopusHandle, "opus_decoder_destroy")

	// Utility functions
	purego.RegisterLibFunc(&libopusPacketNbSamples, libopusHandle, "opus_packet_get_nb_samples")
	purego.RegisterLibFunc(&libopusStrerror, libopusHandle, "opus_strerror")
	purego.RegisterLibFunc(&libopusVersionString, libopusHandle, "opus_get_version_string")
}

// Available checks if libopus can be loaded.
func Available() bool {
	return loadLibopus() == nil
}

// Version returns the libopus version string, or "" when the library is
// unavailable.
func Version() string {
	if !Available() {
		return ""
	}
	return goStringFromPtr(libopusVersionString())
}

func opusStrerror(code int32) string {
	if loadLibopus() != nil {
		return "opus error"
	}
	return goStringFromPtr(libopusStrerror(code))
}

func opusEncoderCreate(sampleRate, channels, application int32) (uintptr, int32) {
	var errCode int32
	enc := libopusEncoderCreate(sampleRate, channels, application, uintptr(unsafe.Pointer(&errCode)))
	if errCode != opusOK {
		return 0, errCode
	}
	if enc == 0 {
		return 0, opusAllocFail
	}
	return enc, opusOK
}

func opusEncoderCtl(encoder uintptr, request, value int32) int32 {
	return libopusEncoderCtl(encoder, request, value)
}

func opusEncode(encoder uintptr, pcm []int16, frameSize int32, out []byte) int32 {
	return libopusEncode(
		encoder,
		uintptr(unsafe.Pointer(&pcm[0])),
		frameSize,
		uintptr(unsafe.Pointer(&out[0])),
		int32(len(out)),
	)
}

func opusEncoderDestroy(encoder uintptr) {
	libopusEncoderDestroy(encoder)
}

func opusDecoderCreate(sampleRate, channels int32) (uintptr, int32) {
	var errCode int32
	dec := libopusDecoderCreate(sampleRate, channels, uintptr(unsafe.Pointer(&errCode)))
	if errCode != opusOK {
		return 0, errCode
	}
	if dec == 0 {
		return 0, opusAllocFail
	}
	return dec, opusOK
}

func opusDecode(decoder uintptr, packet []byte, pcm []int16, maxSamples int32) int32 {
	return libopusDecode(
		decoder,
		uintptr(unsafe.Pointer(&packet[0])),
		int32(len(packet)),
		uintptr(unsafe.Pointer(&pcm[0])),
		maxSamples,
		0,
	)
}

func opusDecoderDestroy(decoder uintptr) {
	libopusDecoderDestroy(decoder)
}

func opusPacketNbSamples(packet []byte, sampleRate int32) int32 {
	return libopusPacketNbSamples(
		uintptr(unsafe.Pointer(&packet[0])),
		int32(len(packet)),
		sampleRate,
	)
}

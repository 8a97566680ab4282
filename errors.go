package opusbridge

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEncoderClosed         = errors.New("encoder closed")
	ErrEmptyFrame            = errors.New("empty PCM frame")
	ErrEmptyPacket           = errors.New("empty packet")
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	ErrUnsupportedChannels   = errors.New("unsupported channel count")
)

// CodecError carries a non-OK libopus result code together with the native
// call that produced it.
type CodecError struct {
	Op   string
	Code int32
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Op, opusStrerror(e.Code), e.Code)
}

func newCodecError(op string, code int32) *CodecError {
	return &CodecError{Op: op, Code: code}
}

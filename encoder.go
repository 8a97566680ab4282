package opusbridge

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// EncoderConfig configures an Opus encoder. All attributes are fixed at
// creation; the application profile is always VOIP and the encoder runs
// with voice signal hint, VBR and DTX disabled, and mid-range complexity.
type EncoderConfig struct {
	SampleRate int // 8000, 12000, 16000, 24000 or 48000
	Channels   int // 1 or 2
	Bitrate    int // bits per second; <= 0 selects the codec default
}

// DefaultEncoderConfig returns a 48kHz mono configuration with the codec
// default bitrate.
func DefaultEncoderConfig() EncoderConfig {
	return EncoderConfig{
		SampleRate: 48000,
		Channels:   1,
	}
}

// Encoder wraps one native Opus encoder instance. It is exclusively owned
// by its creator: use it from one goroutine at a time and Close it exactly
// once when done.
type Encoder struct {
	cfg    EncoderConfig
	handle uintptr
	outBuf []byte
	mu     sync.Mutex
}

// NewEncoder creates a configured Opus encoder. A requested positive
// bitrate that cannot be applied is fatal: the partially-configured native
// state is destroyed and an error returned, never a misconfigured encoder.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	if !SupportedSampleRate(cfg.SampleRate) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, cfg.SampleRate)
	}
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, cfg.Channels)
	}
	if err := loadLibopus(); err != nil {
		return nil, fmt.Errorf("Opus encoder not available: %w", err)
	}

	handle, code := opusEncoderCreate(int32(cfg.SampleRate), int32(cfg.Channels), opusApplicationVOIP)
	if code != opusOK {
		return nil, newCodecError("opus_encoder_create", code)
	}

	if cfg.Bitrate > 0 {
		if code := opusEncoderCtl(handle, opusSetBitrate, int32(cfg.Bitrate)); code != opusOK {
			opusEncoderDestroy(handle)
			return nil, fmt.Errorf("apply bitrate %d: %w", cfg.Bitrate, newCodecError("opus_encoder_ctl", code))
		}
	}

	// Best-effort tuning, in fixed order; a failed setting leaves the
	// encoder usable. VBR off keeps packet sizes predictable, DTX off
	// keeps silence from producing near-empty packets.
	settings := []struct {
		name    string
		request int32
		value   int32
	}{
		{"signal", opusSetSignal, opusSignalVoice},
		{"vbr", opusSetVBR, 0},
		{"dtx", opusSetDTX, 0},
		{"complexity", opusSetComplexity, defaultComplexity},
	}
	for _, s := range settings {
		if code := opusEncoderCtl(handle, s.request, s.value); code != opusOK {
			logrus.WithFields(logrus.Fields{
				"function": "NewEncoder",
				"setting":  s.name,
				"value":    s.value,
				"code":     code,
			}).Warn("Opus encoder setting not applied")
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewEncoder",
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.Channels,
		"bitrate":     cfg.Bitrate,
	}).Debug("Opus encoder created")

	return &Encoder{
		cfg:    cfg,
		handle: handle,
		outBuf: make([]byte, MaxPacketSize),
	}, nil
}

// Encode encodes one PCM frame (interleaved S16 samples) into one Opus
// packet. The codec frame size is the per-channel sample count,
// len(pcm)/channels, so a 20ms stereo frame at 48kHz is 1920 interleaved
// samples. A per-channel count that is not a legal Opus frame duration
// for the configured sample rate is rejected by libopus, not corrected
// here. The result is exactly the encoded length, at most MaxPacketSize
// bytes.
func (e *Encoder) Encode(pcm []int16) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle == 0 {
		return nil, ErrEncoderClosed
	}
	if len(pcm) == 0 {
		return nil, ErrEmptyFrame
	}

	frameSize := len(pcm) / e.cfg.Channels

	result := opusEncode(e.handle, pcm, int32(frameSize), e.outBuf)
	if result <= 0 {
		logrus.WithFields(logrus.Fields{
			"function":   "Encoder.Encode",
			"frame_size": frameSize,
			"code":       result,
		}).Debug("Opus encode failed")
		return nil, newCodecError("opus_encode", result)
	}

	packet := make([]byte, result)
	copy(packet, e.outBuf[:result])

	logrus.WithFields(logrus.Fields{
		"function":     "Encoder.Encode",
		"sample_count": len(pcm),
		"packet_bytes": result,
	}).Debug("Encoded PCM frame")

	return packet, nil
}

// Config returns the encoder configuration.
func (e *Encoder) Config() EncoderConfig {
	return e.cfg
}

// Close releases the native encoder state. It is safe to call more than
// once; only the first call destroys the resource.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle != 0 {
		opusEncoderDestroy(e.handle)
		e.handle = 0
	}
	return nil
}

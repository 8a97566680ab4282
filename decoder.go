package opusbridge

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DecodePacket decodes one Opus packet into interleaved S16 PCM samples.
//
// A fresh native decoder is created for the call and destroyed before
// returning, on success and failure alike; no decoder state survives
// between packets, so each packet is decoded independently and the codec's
// loss-concealment continuity across packets is forfeited.
//
// sampleRate and channels must match what the encoder that produced the
// packet used; a mismatch yields a failure or corrupted audio and is the
// caller's responsibility to avoid. The result holds exactly
// decodedSamples x channels values.
func DecodePacket(packet []byte, sampleRate, channels int) ([]int16, error) {
	if len(packet) == 0 {
		return nil, ErrEmptyPacket
	}
	if !SupportedSampleRate(sampleRate) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, sampleRate)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	if err := loadLibopus(); err != nil {
		return nil, fmt.Errorf("Opus decoder not available: %w", err)
	}

	decoder, code := opusDecoderCreate(int32(sampleRate), int32(channels))
	if code != opusOK {
		return nil, newCodecError("opus_decoder_create", code)
	}
	defer opusDecoderDestroy(decoder)

	scratch := make([]int16, maxDecodeSamples*channels)

	result := opusDecode(decoder, packet, scratch, maxDecodeSamples)
	if result <= 0 {
		logrus.WithFields(logrus.Fields{
			"function":     "DecodePacket",
			"packet_bytes": len(packet),
			"code":         result,
		}).Debug("Opus decode failed")
		return nil, newCodecError("opus_decode", result)
	}

	total := int(result) * channels
	pcm := make([]int16, total)
	copy(pcm, scratch[:total])

	logrus.WithFields(logrus.Fields{
		"function":     "DecodePacket",
		"packet_bytes": len(packet),
		"sample_count": total,
	}).Debug("Decoded Opus packet")

	return pcm, nil
}

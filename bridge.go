package opusbridge

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Handle is an opaque token referencing one encoder owned by the bridge.
// It is an index into an internal registry, never a pointer, so it can be
// passed by value across any boundary. The zero Handle is the universal
// failure sentinel and never refers to a live encoder.
type Handle uint64

var (
	registryMu sync.Mutex
	registry   = make(map[Handle]*Encoder)
	lastHandle Handle
)

// CreateEncoder allocates a configured Opus encoder and returns its
// handle, or 0 on any allocation or configuration failure. A bitrate <= 0
// selects the codec default. Each non-zero handle must be released with
// exactly one DestroyEncoder call.
func CreateEncoder(sampleRate, channels, bitrate int) Handle {
	enc, err := NewEncoder(EncoderConfig{
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrate,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "CreateEncoder",
			"sample_rate": sampleRate,
			"channels":    channels,
			"bitrate":     bitrate,
			"error":       err.Error(),
		}).Error("Encoder creation failed")
		return 0
	}

	registryMu.Lock()
	lastHandle++
	h := lastHandle
	registry[h] = enc
	registryMu.Unlock()

	return h
}

func lookupEncoder(h Handle) *Encoder {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[h]
}

// Encode encodes one PCM frame on the encoder referenced by h. It returns
// nil on any failure: unknown or destroyed handle, empty frame, or a
// codec-reported error. Either a well-formed packet or nil, never partial
// output.
func Encode(h Handle, pcm []int16) []byte {
	enc := lookupEncoder(h)
	if enc == nil {
		logrus.WithFields(logrus.Fields{
			"function": "Encode",
			"handle":   h,
		}).Debug("Encode on invalid handle")
		return nil
	}

	packet, err := enc.Encode(pcm)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "Encode",
			"handle":       h,
			"sample_count": len(pcm),
			"error":        err.Error(),
		}).Debug("Encode failed")
		return nil
	}
	return packet
}

// Decode decodes one Opus packet with an ephemeral decoder. It returns
// the interleaved PCM samples, or nil on any failure.
func Decode(packet []byte, sampleRate, channels int) []int16 {
	pcm, err := DecodePacket(packet, sampleRate, channels)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "Decode",
			"packet_bytes": len(packet),
			"sample_rate":  sampleRate,
			"channels":     channels,
			"error":        err.Error(),
		}).Debug("Decode failed")
		return nil
	}
	return pcm
}

// DestroyEncoder releases the encoder referenced by h. A zero or unknown
// handle is a no-op, so destroying an already-destroyed handle through the
// bridge is safe.
func DestroyEncoder(h Handle) {
	if h == 0 {
		return
	}

	registryMu.Lock()
	enc := registry[h]
	delete(registry, h)
	registryMu.Unlock()

	if enc == nil {
		return
	}
	_ = enc.Close()
}

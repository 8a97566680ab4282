package opusbridge

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDecodeEmptyPacket(t *testing.T) {
	// Input validation precedes the native library, so this runs
	// everywhere.
	if _, err := DecodePacket(nil, 48000, 1); !errors.Is(err, ErrEmptyPacket) {
		t.Errorf("DecodePacket(nil): err = %v, want ErrEmptyPacket", err)
	}
	if _, err := DecodePacket([]byte{}, 48000, 1); !errors.Is(err, ErrEmptyPacket) {
		t.Errorf("DecodePacket(empty): err = %v, want ErrEmptyPacket", err)
	}
}

func TestDecodeBadParams(t *testing.T) {
	packet := []byte{0xfc, 0x01, 0x02}
	if _, err := DecodePacket(packet, 44100, 1); !errors.Is(err, ErrUnsupportedSampleRate) {
		t.Errorf("44.1kHz: err = %v, want ErrUnsupportedSampleRate", err)
	}
	if _, err := DecodePacket(packet, 48000, 5); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("5 channels: err = %v, want ErrUnsupportedChannels", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if !Available() {
		t.Skip("libopus not available")
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		packet := make([]byte, 1+rng.Intn(MaxPacketSize))
		rng.Read(packet)

		// Garbage either fails cleanly or decodes to a valid-shaped frame.
		pcm, err := DecodePacket(packet, 48000, 2)
		if err != nil {
			continue
		}
		if len(pcm) == 0 || len(pcm)%2 != 0 {
			t.Fatalf("garbage decode returned %d samples", len(pcm))
		}
		if len(pcm) > maxDecodeSamples*2 {
			t.Fatalf("garbage decode returned %d samples, above scratch bound", len(pcm))
		}
	}
}

func TestDecodeRepeated(t *testing.T) {
	if !Available() {
		t.Skip("libopus not available")
	}

	enc, err := NewEncoder(EncoderConfig{SampleRate: 16000, Channels: 1, Bitrate: 24000})
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	defer enc.Close()

	packet, err := enc.Encode(makeTestFrame(16000, 1, 20))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Each call creates and destroys its own decoder; repeated decodes of
	// the same packet must agree since no state carries over.
	first, err := DecodePacket(packet, 16000, 1)
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		pcm, err := DecodePacket(packet, 16000, 1)
		if err != nil {
			t.Fatalf("decode %d failed: %v", i, err)
		}
		if len(pcm) != len(first) {
			t.Fatalf("decode %d returned %d samples, want %d", i, len(pcm), len(first))
		}
	}
}

func TestDecodeSampleRates(t *testing.T) {
	if !Available() {
		t.Skip("libopus not available")
	}

	for _, rate := range []int{8000, 12000, 16000, 24000, 48000} {
		enc, err := NewEncoder(EncoderConfig{SampleRate: rate, Channels: 1})
		if err != nil {
			t.Fatalf("NewEncoder(%d) failed: %v", rate, err)
		}

		frame := makeTestFrame(rate, 1, 20)
		packet, err := enc.Encode(frame)
		if err != nil {
			enc.Close()
			t.Fatalf("Encode at %dHz failed: %v", rate, err)
		}

		pcm, err := DecodePacket(packet, rate, 1)
		if err != nil {
			enc.Close()
			t.Fatalf("DecodePacket at %dHz failed: %v", rate, err)
		}
		if len(pcm) != len(frame) {
			t.Errorf("%dHz: decoded %d samples, want %d", rate, len(pcm), len(frame))
		}
		enc.Close()
	}
}

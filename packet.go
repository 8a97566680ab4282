package opusbridge

import (
	"github.com/pion/opus"
)

// PacketSamples returns the number of per-channel samples an Opus packet
// will decode to at sampleRate, or 0 for an empty or invalid packet or
// when libopus is unavailable.
func PacketSamples(packet []byte, sampleRate int) int {
	if len(packet) == 0 || !Available() {
		return 0
	}
	n := opusPacketNbSamples(packet, int32(sampleRate))
	if n < 0 {
		return 0
	}
	return int(n)
}

// PacketBandwidth returns the audio bandwidth encoded in a packet's TOC
// byte. The mapping follows the RFC 6716 configuration table: SILK
// configs 0-11, hybrid 12-15, CELT 16-31.
func PacketBandwidth(packet []byte) (opus.Bandwidth, error) {
	if len(packet) == 0 {
		return 0, ErrEmptyPacket
	}

	config := packet[0] >> 3
	switch {
	case config <= 3:
		return opus.BandwidthNarrowband, nil
	case config <= 7:
		return opus.BandwidthMediumband, nil
	case config <= 11:
		return opus.BandwidthWideband, nil
	case config <= 13:
		return opus.BandwidthSuperwideband, nil
	case config <= 15:
		return opus.BandwidthFullband, nil
	case config <= 19:
		return opus.BandwidthNarrowband, nil
	case config <= 23:
		return opus.BandwidthWideband, nil
	case config <= 27:
		return opus.BandwidthSuperwideband, nil
	default:
		return opus.BandwidthFullband, nil
	}
}

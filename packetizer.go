package opusbridge

import (
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/rtp/codecs"
)

// DefaultMTU is the default maximum RTP packet size.
const DefaultMTU = 1200

// Packetizer wraps encoded Opus packets in RTP using pion's codecs. It
// formats payloads only; moving the packets anywhere is the caller's
// concern.
type Packetizer struct {
	ssrc        uint32
	payloadType uint8
	mtu         int
	timestamp   uint32
	sequencer   rtp.Sequencer
	payloader   *codecs.OpusPayloader
	mu          sync.Mutex
}

// NewPacketizer creates an Opus RTP packetizer. An mtu <= 0 selects
// DefaultMTU.
func NewPacketizer(ssrc uint32, payloadType uint8, mtu int) *Packetizer {
	if mtu <= 0 {
		mtu = DefaultMTU
	}
	return &Packetizer{
		ssrc:        ssrc,
		payloadType: payloadType,
		mtu:         mtu,
		sequencer:   rtp.NewRandomSequencer(),
		payloader:   &codecs.OpusPayloader{},
	}
}

// Packetize converts one encoded Opus packet to RTP packets, advancing
// the RTP timestamp by samples (per-channel sample count at the 48kHz
// Opus RTP clock).
func (p *Packetizer) Packetize(packet []byte, samples uint32) []*rtp.Packet {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(packet) == 0 {
		return nil
	}

	payloads := p.payloader.Payload(uint16(p.mtu-12), packet)
	if len(payloads) == 0 {
		return nil
	}

	packets := make([]*rtp.Packet, len(payloads))
	for i, payload := range payloads {
		packets[i] = &rtp.Packet{
			Header: rtp.Header{
				Version:        2,
				Marker:         true, // Audio typically sets marker
				PayloadType:    p.payloadType,
				SequenceNumber: p.sequencer.NextSequenceNumber(),
				Timestamp:      p.timestamp,
				SSRC:           p.ssrc,
			},
			Payload: payload,
		}
	}
	p.timestamp += samples
	return packets
}

// SSRC returns the packetizer's SSRC.
func (p *Packetizer) SSRC() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ssrc
}

// PayloadType returns the packetizer's RTP payload type.
func (p *Packetizer) PayloadType() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payloadType
}

// Depacketize extracts the Opus packet carried by raw RTP packet bytes.
func Depacketize(data []byte) ([]byte, error) {
	var pkt rtp.Packet
	if err := pkt.Unmarshal(data); err != nil {
		return nil, err
	}
	if len(pkt.Payload) == 0 {
		return nil, ErrEmptyPacket
	}

	var depacketizer codecs.OpusPacket
	return depacketizer.Unmarshal(pkt.Payload)
}

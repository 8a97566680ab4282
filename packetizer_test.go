package opusbridge

import (
	"bytes"
	"testing"
)

func TestPacketizerBasic(t *testing.T) {
	p := NewPacketizer(0x12345678, 111, DefaultMTU)

	payload := []byte{0xfc, 0x01, 0x02, 0x03}
	packets := p.Packetize(payload, 960)
	if len(packets) != 1 {
		t.Fatalf("Packetize returned %d packets, want 1", len(packets))
	}

	pkt := packets[0]
	if pkt.SSRC != 0x12345678 {
		t.Errorf("SSRC = %#x, want 0x12345678", pkt.SSRC)
	}
	if pkt.PayloadType != 111 {
		t.Errorf("PayloadType = %d, want 111", pkt.PayloadType)
	}
	if !pkt.Marker {
		t.Error("Marker not set")
	}
	if !bytes.Equal(pkt.Payload, payload) {
		t.Errorf("Payload = %v, want %v", pkt.Payload, payload)
	}
}

func TestPacketizerTimestampAdvance(t *testing.T) {
	p := NewPacketizer(1, 111, 0)

	payload := []byte{0xfc, 0x01}
	first := p.Packetize(payload, 960)
	second := p.Packetize(payload, 960)
	if len(first) != 1 || len(second) != 1 {
		t.Fatal("expected one packet per frame")
	}

	if second[0].Timestamp-first[0].Timestamp != 960 {
		t.Errorf("timestamp delta = %d, want 960",
			second[0].Timestamp-first[0].Timestamp)
	}
	if second[0].SequenceNumber != first[0].SequenceNumber+1 {
		t.Errorf("sequence delta = %d, want 1",
			second[0].SequenceNumber-first[0].SequenceNumber)
	}
}

func TestPacketizerEmptyPayload(t *testing.T) {
	p := NewPacketizer(1, 111, DefaultMTU)
	if packets := p.Packetize(nil, 960); packets != nil {
		t.Errorf("Packetize(nil) = %d packets, want none", len(packets))
	}
}

func TestDepacketizeRoundTrip(t *testing.T) {
	p := NewPacketizer(7, 111, DefaultMTU)

	payload := []byte{0xfc, 0xaa, 0xbb, 0xcc}
	packets := p.Packetize(payload, 960)
	if len(packets) != 1 {
		t.Fatalf("Packetize returned %d packets, want 1", len(packets))
	}

	raw, err := packets[0].Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := Depacketize(raw)
	if err != nil {
		t.Fatalf("Depacketize failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Depacketize = %v, want %v", got, payload)
	}
}

func TestDepacketizeInvalid(t *testing.T) {
	if _, err := Depacketize([]byte{0x01}); err == nil {
		t.Error("Depacketize of truncated data succeeded, want error")
	}
}

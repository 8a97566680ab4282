package opusbridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPCMByteConversion(t *testing.T) {
	pcm := []int16{0, 1, -1, 32767, -32768, 256}
	data := PCMToBytes(pcm)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0xff, 0xff, 0x7f, 0x00, 0x80, 0x00, 0x01}, data)
	assert.Equal(t, pcm, BytesToPCM(data))
}

func TestBytesToPCMOddTail(t *testing.T) {
	// A trailing odd byte is ignored.
	pcm := BytesToPCM([]byte{0x01, 0x00, 0xff})
	assert.Equal(t, []int16{1}, pcm)
}

func TestValidFrameSize(t *testing.T) {
	cases := []struct {
		samples    int
		sampleRate int
		channels   int
		want       bool
	}{
		{120, 48000, 1, true},  // 2.5ms
		{240, 48000, 1, true},  // 5ms
		{480, 48000, 1, true},  // 10ms
		{960, 48000, 1, true},  // 20ms
		{1920, 48000, 1, true}, // 40ms
		{2880, 48000, 1, true}, // 60ms
		{1920, 48000, 2, true}, // 20ms stereo
		{160, 8000, 1, true},   // 20ms narrowband
		{960, 48000, 2, true},  // 10ms stereo
		{336, 48000, 1, false}, // 7ms
		{0, 48000, 1, false},
		{961, 48000, 2, false}, // not divisible by channels
		{960, 0, 1, false},
	}
	for _, c := range cases {
		got := ValidFrameSize(c.samples, c.sampleRate, c.channels)
		assert.Equal(t, c.want, got, "samples=%d rate=%d channels=%d", c.samples, c.sampleRate, c.channels)
	}
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, 20*time.Millisecond, FrameDuration(960, 48000, 1))
	assert.Equal(t, 20*time.Millisecond, FrameDuration(1920, 48000, 2))
	assert.Equal(t, 20*time.Millisecond, FrameDuration(160, 8000, 1))
	assert.Equal(t, time.Duration(0), FrameDuration(0, 48000, 1))
	assert.Equal(t, time.Duration(0), FrameDuration(960, 0, 1))
}

package opusbridge

import (
	"encoding/binary"
	"time"
)

// legalFrameMicros are the Opus frame durations, in microseconds:
// 2.5, 5, 10, 20, 40 and 60 ms.
var legalFrameMicros = []int{2500, 5000, 10000, 20000, 40000, 60000}

// PCMToBytes converts interleaved S16 samples to little-endian bytes.
func PCMToBytes(pcm []int16) []byte {
	data := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

// BytesToPCM converts little-endian S16LE bytes to interleaved samples.
// A trailing odd byte is ignored.
func BytesToPCM(data []byte) []int16 {
	n := len(data) / 2
	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		pcm[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return pcm
}

// ValidFrameSize reports whether a frame of the given total interleaved
// sample count is a legal Opus frame duration at sampleRate.
func ValidFrameSize(samples, sampleRate, channels int) bool {
	if samples <= 0 || sampleRate <= 0 || channels <= 0 || samples%channels != 0 {
		return false
	}
	perChannel := samples / channels
	for _, micros := range legalFrameMicros {
		if perChannel*1000000 == micros*sampleRate {
			return true
		}
	}
	return false
}

// FrameDuration returns the audio duration of a frame of the given total
// interleaved sample count, or 0 for degenerate inputs.
func FrameDuration(samples, sampleRate, channels int) time.Duration {
	if samples <= 0 || sampleRate <= 0 || channels <= 0 {
		return 0
	}
	perChannel := samples / channels
	return time.Duration(perChannel) * time.Second / time.Duration(sampleRate)
}

package opusbridge

// Constants from opus_defines.h.
const (
	opusOK             = 0
	opusBadArg         = -1
	opusBufferTooSmall = -2
	opusInternalError  = -3
	opusInvalidPacket  = -4
	opusUnimplemented  = -5
	opusInvalidState   = -6
	opusAllocFail      = -7

	opusApplicationVOIP     = 2048
	opusApplicationAudio    = 2049
	opusApplicationLowDelay = 2051

	opusSetBitrate    = 4002
	opusSetVBR        = 4006
	opusSetComplexity = 4010
	opusSetDTX        = 4016
	opusSetSignal     = 4024

	opusSignalVoice = 3001
	opusSignalMusic = 3002

	opusAuto = -1000
)

const (
	// MaxPacketSize is the largest encoded packet this bridge produces or
	// accepts, per the RFC 6716 ceiling of 1275 payload bytes plus the TOC.
	MaxPacketSize = 1276

	// maxDecodeSamples bounds the per-channel scratch buffer for one decode
	// call: 6 x 20ms at 48kHz, enough for the largest legal multi-frame
	// packet (120ms) at the highest sample rate.
	maxDecodeSamples = 5760

	// defaultComplexity is the fixed mid-range encoder complexity,
	// trading CPU for quality.
	defaultComplexity = 5
)

// supportedSampleRates are the rates libopus accepts for both encoder and
// decoder creation.
var supportedSampleRates = []int{8000, 12000, 16000, 24000, 48000}

// SupportedSampleRate reports whether rate is a legal Opus sample rate.
func SupportedSampleRate(rate int) bool {
	for _, r := range supportedSampleRates {
		if r == rate {
			return true
		}
	}
	return false
}

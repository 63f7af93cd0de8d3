// Package wav builds minimal PCM WAV payloads for the test-mode tone engine.
package wav

import (
	"encoding/binary"
	"math"
)

// Default parameters for generated tones.
const (
	HeaderSize = 44
	formatPCM  = 1

	DefaultSampleRate = 22050
	DefaultChannels   = 1
	DefaultBitDepth   = 16
)

// WrapPCM prepends a standard 44-byte RIFF header to raw PCM data.
func WrapPCM(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	dataSize := len(pcm)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	header := make([]byte, HeaderSize)
	le := binary.LittleEndian

	copy(header[0:4], "RIFF")
	le.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	le.PutUint32(header[16:20], 16)
	le.PutUint16(header[20:22], formatPCM)
	le.PutUint16(header[22:24], uint16(channels))
	le.PutUint32(header[24:28], uint32(sampleRate))
	le.PutUint32(header[28:32], uint32(byteRate))
	le.PutUint16(header[32:34], uint16(blockAlign))
	le.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	le.PutUint32(header[40:44], uint32(dataSize))

	return append(header, pcm...)
}

// SinePCM generates 16-bit mono PCM samples of a sine wave at the given
// frequency. The sample count is derived from the duration, so equal inputs
// produce byte-identical output.
func SinePCM(frequency, duration float64, sampleRate int) []byte {
	numSamples := int(float64(sampleRate) * duration)
	pcm := make([]byte, numSamples*2)

	const amplitude = 32767.0
	for i := 0; i < numSamples; i++ {
		s := int16(amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}

	return pcm
}

// SineWAV is a convenience wrapper producing a complete mono 16-bit WAV file.
func SineWAV(frequency, duration float64, sampleRate int) []byte {
	return WrapPCM(SinePCM(frequency, duration, sampleRate), sampleRate, DefaultChannels, DefaultBitDepth)
}

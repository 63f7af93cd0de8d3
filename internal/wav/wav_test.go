package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWrapPCMHeader(t *testing.T) {
	pcm := make([]byte, 1000)
	data := WrapPCM(pcm, 22050, 1, 16)

	if len(data) != HeaderSize+len(pcm) {
		t.Fatalf("Expected %d bytes, got %d", HeaderSize+len(pcm), len(data))
	}

	if !bytes.Equal(data[0:4], []byte("RIFF")) {
		t.Errorf("Missing RIFF marker: %q", data[0:4])
	}
	if !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Errorf("Missing WAVE marker: %q", data[8:12])
	}

	le := binary.LittleEndian
	if got := le.Uint32(data[24:28]); got != 22050 {
		t.Errorf("Sample rate = %d, want 22050", got)
	}
	if got := le.Uint16(data[22:24]); got != 1 {
		t.Errorf("Channels = %d, want 1", got)
	}
	if got := le.Uint16(data[34:36]); got != 16 {
		t.Errorf("Bit depth = %d, want 16", got)
	}
	if got := le.Uint32(data[40:44]); got != uint32(len(pcm)) {
		t.Errorf("Data size = %d, want %d", got, len(pcm))
	}
}

func TestSinePCMLength(t *testing.T) {
	pcm := SinePCM(440, 2.0, 22050)

	// 2 seconds at 22050 Hz, 2 bytes per sample.
	want := 2 * 22050 * 2
	if len(pcm) != want {
		t.Errorf("PCM length = %d, want %d", len(pcm), want)
	}
}

func TestSinePCMDeterministic(t *testing.T) {
	a := SinePCM(440, 0.5, 22050)
	b := SinePCM(440, 0.5, 22050)

	if !bytes.Equal(a, b) {
		t.Error("SinePCM is not deterministic for identical inputs")
	}
}

func TestSineWAVIsNotSilent(t *testing.T) {
	data := SineWAV(440, 0.1, 22050)

	allZero := true
	for _, b := range data[HeaderSize:] {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("Generated tone contains only silence")
	}
}

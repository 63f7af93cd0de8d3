package tts

import (
	"math/rand"
	"time"
)

// VoicePicker draws a voice uniformly at random from a fixed set. The rand
// source is injected so tests can seed it; runs without a seed get per-run
// variety.
//
// Pick is not safe for concurrent use; the pipeline draws voices while
// submitting work, before the workers fan out.
type VoicePicker struct {
	voices []string
	r      *rand.Rand
}

// NewVoicePicker creates a picker over the given voices. A nil source gets a
// time-seeded one.
func NewVoicePicker(voices []string, r *rand.Rand) *VoicePicker {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &VoicePicker{voices: voices, r: r}
}

// Pick returns one voice from the set.
func (p *VoicePicker) Pick() string {
	return p.voices[p.r.Intn(len(p.voices))]
}

package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

func scenarioUtterances(t *testing.T) []Utterance {
	t.Helper()
	input := "[Me]: I want to practice my English speaking skills.\n" +
		"[Teacher]: That's great!\n" +
		"[Me]: How should I begin practicing?\n"

	utterances, err := Parse(context.Background(), strings.NewReader(input), logger.Nop())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return utterances
}

func TestSelectSpeakerAndLength(t *testing.T) {
	utterances := scenarioUtterances(t)

	// Teacher line excluded by speaker; any [Me] line under 20 chars would be
	// excluded by length. Expect original indices {0, 2}.
	selected := Select(utterances, "[Me]", 20)

	if len(selected) != 2 {
		t.Fatalf("Expected 2 selected, got %d", len(selected))
	}
	if selected[0].Index != 0 || selected[1].Index != 2 {
		t.Errorf("Selected indices = {%d, %d}, want {0, 2}", selected[0].Index, selected[1].Index)
	}
}

func TestSelectDropsShortUtterances(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Me", Text: "short", Index: 0},
		{Speaker: "Me", Text: "this one is long enough to keep", Index: 1},
	}

	selected := Select(utterances, "Me", 10)
	if len(selected) != 1 {
		t.Fatalf("Expected 1 selected, got %d", len(selected))
	}
	if selected[0].Index != 1 {
		t.Errorf("Selected index = %d, want 1", selected[0].Index)
	}
}

func TestSelectEmptyResultIsNotError(t *testing.T) {
	utterances := scenarioUtterances(t)

	selected := Select(utterances, "[Nobody]", 0)
	if len(selected) != 0 {
		t.Errorf("Expected empty selection, got %d", len(selected))
	}
}

func TestSelectIdempotent(t *testing.T) {
	utterances := scenarioUtterances(t)

	once := Select(utterances, "[Me]", 20)
	twice := Select(once, "[Me]", 20)

	if len(once) != len(twice) {
		t.Fatalf("Selection not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Element %d differs after reselection: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestNormalizeSpeaker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[Me]", "Me"},
		{"Me", "Me"},
		{"  [Teacher]  ", "Teacher"},
		{"[ Spaced ]", "Spaced"},
	}

	for _, tt := range tests {
		if got := NormalizeSpeaker(tt.in); got != tt.want {
			t.Errorf("NormalizeSpeaker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package conversation

import (
	"errors"
	"strings"
)

// ErrNoUtterances is returned by callers when selection produced nothing to
// process. Select itself returns an empty slice, not an error, so the caller
// decides how fatal that is.
var ErrNoUtterances = errors.New("no utterances matched the selection criterion")

// Select keeps the utterances spoken by speaker whose text is at least
// minLen characters long. Order and original Index values are preserved:
// the result is a subsequence of the input, never a renumbering.
func Select(utterances []Utterance, speaker string, minLen int) []Utterance {
	want := NormalizeSpeaker(speaker)

	var selected []Utterance
	for _, u := range utterances {
		if NormalizeSpeaker(u.Speaker) != want {
			continue
		}
		if len(u.Text) < minLen {
			continue
		}
		selected = append(selected, u)
	}
	return selected
}

// NormalizeSpeaker strips surrounding brackets and whitespace so that the
// configured "[Me]" and the parsed tag content "Me" compare equal.
func NormalizeSpeaker(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.TrimSpace(s)
}

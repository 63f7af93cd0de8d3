package conversation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

// Utterance is one parsed speaker-tagged line of the conversation.
//
// Index is the running count over all recognized utterances, assigned at
// parse time and never renumbered: output file names stay aligned with the
// original line positions even after filtering.
type Utterance struct {
	Speaker string
	Text    string
	Index   int
}

// linePattern matches one transcript line: [<speaker>]: <text>
var linePattern = regexp.MustCompile(`^\[([^\[\]]+)\]:\s*(.*)$`)

// Parse reads a speaker-tagged transcript, one utterance per line.
//
// Blank lines are skipped silently. Lines that do not match the
// [<speaker>]: <text> pattern are skipped with a warning; a malformed line
// never aborts the run.
func Parse(ctx context.Context, r io.Reader, log logger.Logger) ([]Utterance, error) {
	var utterances []Utterance

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			log.Warn(ctx, "line %d: malformed, expected \"[<speaker>]: <text>\", skipping: %.50s", lineNo, line)
			continue
		}

		utterances = append(utterances, Utterance{
			Speaker: strings.TrimSpace(m[1]),
			Text:    strings.TrimSpace(m[2]),
			Index:   len(utterances),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	return utterances, nil
}

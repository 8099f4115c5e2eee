// File path: internal/insight/confidence.go
package insight

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultConfidence is assumed when the model omits a parseable tag.
const DefaultConfidence = 0.7

// confidenceTag matches the machine-parseable trailing tag the prompt asks
// the model to emit, e.g. "[CONFIDENCE: 0.85]".
var confidenceTag = regexp.MustCompile(`(?i)\[CONFIDENCE:\s*([0-9]*\.?[0-9]+)\s*\]\s*$`)

// extractConfidence splits the model's raw reply into the insight text and a
// confidence score in [0, 1]. The tag is stripped from the returned text;
// when no tag parses, the text is returned unchanged with the default score.
func extractConfidence(raw string) (string, float64) {
	trimmed := strings.TrimSpace(raw)
	match := confidenceTag.FindStringSubmatchIndex(trimmed)
	if match == nil {
		return raw, DefaultConfidence
	}
	value, err := strconv.ParseFloat(trimmed[match[2]:match[3]], 64)
	if err != nil {
		return raw, DefaultConfidence
	}
	text := strings.TrimSpace(trimmed[:match[0]])
	return text, clampConfidence(value)
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

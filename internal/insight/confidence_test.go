// File path: internal/insight/confidence_test.go
package insight

import "testing"

func TestExtractConfidence(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantText   string
		wantScore  float64
	}{
		{
			name:      "trailing tag stripped",
			raw:       "Strong tempo effort today. [CONFIDENCE: 0.85]",
			wantText:  "Strong tempo effort today.",
			wantScore: 0.85,
		},
		{
			name:      "no tag uses default",
			raw:       "Strong tempo effort today.",
			wantText:  "Strong tempo effort today.",
			wantScore: DefaultConfidence,
		},
		{
			name:      "no tag leaves surrounding whitespace",
			raw:       "  Strong tempo effort today.\n",
			wantText:  "  Strong tempo effort today.\n",
			wantScore: DefaultConfidence,
		},
		{
			name:      "tag above one clamps",
			raw:       "Great run. [CONFIDENCE: 1.8]",
			wantText:  "Great run.",
			wantScore: 1,
		},
		{
			name:      "lower case tag accepted",
			raw:       "Great run. [confidence: 0.4]",
			wantText:  "Great run.",
			wantScore: 0.4,
		},
		{
			name:      "mid-text tag left alone",
			raw:       "Great [CONFIDENCE: 0.9] run.",
			wantText:  "Great [CONFIDENCE: 0.9] run.",
			wantScore: DefaultConfidence,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, score := extractConfidence(tc.raw)
			if text != tc.wantText {
				t.Fatalf("text = %q, want %q", text, tc.wantText)
			}
			if score != tc.wantScore {
				t.Fatalf("score = %v, want %v", score, tc.wantScore)
			}
		})
	}
}

// Package analyzer turns photographs into structured records. A
// Provider does the vision work; this package owns prompt-side
// plumbing: response parsing, schema validation, and the rate-limited
// batch runner with its content-hash cache short circuit.
package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// ParseResponse decodes a provider response into analysis results.
// Providers are inconsistent about framing: the payload may be a bare
// object, an array of objects, or either wrapped in a Markdown code
// fence. All four shapes are accepted.
func ParseResponse(raw string) ([]domain.AnalysisResult, error) {
	payload := strings.TrimSpace(stripCodeFence(raw))
	if payload == "" {
		return nil, domain.ErrNoResponse
	}

	switch payload[0] {
	case '[':
		var results []domain.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &results); err != nil {
			return nil, fmt.Errorf("decoding analysis array: %w", err)
		}
		return results, nil
	case '{':
		var result domain.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("decoding analysis object: %w", err)
		}
		return []domain.AnalysisResult{result}, nil
	default:
		return nil, fmt.Errorf("%w: response is not JSON", domain.ErrInvalidInput)
	}
}

// stripCodeFence removes a surrounding Markdown code fence, with or
// without a language tag, leaving other text untouched.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || strings.EqualFold(first, "json") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

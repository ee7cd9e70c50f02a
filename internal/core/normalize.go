package core

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models routinely wrap their JSON answers in markdown code fences.
var fenceRegexp = regexp.MustCompile("```json\n?|```\n?")

// StripFences removes ```json / ``` delimiters so the remainder can be parsed.
func StripFences(text string) string {
	return strings.TrimSpace(fenceRegexp.ReplaceAllString(text, ""))
}

// Top-level section names the instruction template asks the model for. Used
// only to flag drift in logs; the payload itself is passed through unchecked.
var expectedSections = []string{
	"RelationshipStatusAndHistory",
	"OnAgainOffAgainPattern",
	"CommunicationPatterns",
	"ProblemSolvingStyle",
	"EmotionalLandscape",
	"UnderlyingConnection",
	"PowerDynamicsAndControl",
	"TrustDynamics",
}

// NormalizeAnalysis turns raw model text into an analysis payload. If the
// fence-stripped text is valid JSON it is passed through verbatim; otherwise
// the fixed fallback payload is substituted and degraded is true. A malformed
// model answer never fails the request.
func NormalizeAnalysis(rawText string) (analysis any, degraded bool) {
	cleaned := StripFences(rawText)

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return NewFallbackAnalysis(rawText), true
	}

	// RawMessage keeps the decoded object byte-for-byte identical on re-encode.
	return json.RawMessage(cleaned), false
}

// MissingSections reports which expected top-level sections are absent from a
// successfully parsed payload. Non-object payloads report all sections missing.
func MissingSections(analysis any) []string {
	raw, ok := analysis.(json.RawMessage)
	if !ok {
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return expectedSections
	}

	var missing []string
	for _, section := range expectedSections {
		if _, present := obj[section]; !present {
			missing = append(missing, section)
		}
	}
	return missing
}

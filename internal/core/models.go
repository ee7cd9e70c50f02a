package core

// AnalysisEnvelope is the fixed wrapper returned to the browser for every
// analysis request. Exactly one of Data/Error is populated.
type AnalysisEnvelope struct {
	Success bool          `json:"success"`
	Data    *AnalysisData `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type AnalysisData struct {
	// Analysis is either the JSON object decoded verbatim from the model's
	// output (json.RawMessage) or a *FallbackAnalysis when decoding failed.
	Analysis any              `json:"analysis"`
	Degraded bool             `json:"degraded,omitempty"`
	Metadata AnalysisMetadata `json:"metadata"`
}

type AnalysisMetadata struct {
	FileNames  []string `json:"fileNames"`
	AnalyzedAt string   `json:"analyzedAt"`
	FileCount  int      `json:"fileCount"`
}

// FallbackAnalysis is the fixed placeholder payload substituted when the
// model's output cannot be parsed as JSON. The raw model text is preserved
// under RawAnalysis so the presentation layer can still display something.
type FallbackAnalysis struct {
	Participants          []string              `json:"participants"`
	Summary               string                `json:"summary"`
	RelationshipType      string                `json:"relationshipType"`
	RawAnalysis           string                `json:"rawAnalysis"`
	Timeline              []TimelineEvent       `json:"timeline"`
	RelationshipStatus    RelationshipStatus    `json:"relationshipStatus"`
	CommunicationPatterns CommunicationPatterns `json:"communicationPatterns"`
	EmotionalAnalysis     EmotionalAnalysis     `json:"emotionalAnalysis"`
	Insights              Insights              `json:"insights"`
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type RelationshipStatus struct {
	Current  string   `json:"current"`
	Patterns []string `json:"patterns"`
}

type CommunicationPatterns struct {
	Frequency    string `json:"frequency"`
	ResponseTime string `json:"responseTime"`
	Tone         string `json:"tone"`
}

type EmotionalAnalysis struct {
	OverallTone  string              `json:"overallTone"`
	Participant1 ParticipantEmotions `json:"participant1"`
	Participant2 ParticipantEmotions `json:"participant2"`
}

type ParticipantEmotions struct {
	Name     string   `json:"name"`
	Emotions []string `json:"emotions"`
	Patterns []string `json:"patterns"`
}

type Insights struct {
	KeyFindings     []string `json:"keyFindings"`
	Recommendations []string `json:"recommendations"`
	WarningSignals  []string `json:"warningSignals"`
}

// NewFallbackAnalysis builds the placeholder payload around the raw
// (unparseable) model text.
func NewFallbackAnalysis(rawText string) *FallbackAnalysis {
	return &FallbackAnalysis{
		Participants:     []string{"Person A", "Person B"},
		Summary:          "Analysis completed successfully",
		RelationshipType: "Digital Relationship",
		RawAnalysis:      rawText,
		Timeline:         []TimelineEvent{},
		RelationshipStatus: RelationshipStatus{
			Current:  "Unable to parse detailed status",
			Patterns: []string{},
		},
		CommunicationPatterns: CommunicationPatterns{
			Frequency:    "Analysis available in raw text",
			ResponseTime: "Analysis available in raw text",
			Tone:         "Analysis available in raw text",
		},
		EmotionalAnalysis: EmotionalAnalysis{
			OverallTone:  "Analysis available in raw text",
			Participant1: ParticipantEmotions{Name: "Person A", Emotions: []string{}, Patterns: []string{}},
			Participant2: ParticipantEmotions{Name: "Person B", Emotions: []string{}, Patterns: []string{}},
		},
		Insights: Insights{
			KeyFindings:     []string{"Analysis completed - see raw analysis for details"},
			Recommendations: []string{},
			WarningSignals:  []string{},
		},
	}
}

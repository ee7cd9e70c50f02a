package core

import (
	"context"
	"log"
	"strings"
	"time"
)

// AnalysisService is the stateless bridge between an inbound analysis request
// and the external generative-language API. Every invocation is independent;
// the service holds no mutable state across requests.
type AnalysisService struct {
	gemini *GeminiClient
}

func NewAnalysisService(gemini *GeminiClient) *AnalysisService {
	return &AnalysisService{gemini: gemini}
}

// Analyze makes a single upstream call with the caller's prompt and
// credential, then normalizes the model's text into the envelope data block.
// requestID ties the server-side log lines for one request together.
func (s *AnalysisService) Analyze(ctx context.Context, requestID, chatData string, fileNames []string, apiKey string) (*AnalysisData, error) {
	log.Printf("[%s] Sending analysis request to Gemini API, files: %s", requestID, strings.Join(fileNames, ", "))

	generatedText, err := s.gemini.GenerateContent(ctx, apiKey, chatData)
	if err != nil {
		return nil, err
	}

	analysis, degraded := NormalizeAnalysis(generatedText)
	if degraded {
		log.Printf("[%s] JSON parsing of model output failed, substituting fallback payload. Raw response: %s", requestID, generatedText)
	} else if missing := MissingSections(analysis); len(missing) > 0 {
		log.Printf("[%s] Model payload is missing expected sections: %s", requestID, strings.Join(missing, ", "))
	}

	if fileNames == nil {
		fileNames = []string{}
	}

	return &AnalysisData{
		Analysis: analysis,
		Degraded: degraded,
		Metadata: AnalysisMetadata{
			FileNames:  fileNames,
			AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
			FileCount:  len(fileNames),
		},
	}, nil
}

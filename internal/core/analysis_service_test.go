package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubService(t *testing.T, upstreamBody string) (*AnalysisService, *int) {
	t.Helper()
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(upstream.Close)

	return NewAnalysisService(NewGeminiClient(upstream.URL, "gemini-1.5-flash")), &calls
}

func TestAnalysisService_ParsedPayloadRoundTrips(t *testing.T) {
	svc, calls := newStubService(t, `{"candidates":[{"content":{"parts":[{"text":"{\"x\":1}"}]}}]}`)

	before := time.Now().UTC().Truncate(time.Second)
	data, err := svc.Analyze(context.Background(), "req-1", "--- Chat from a.txt ---\nhi", []string{"a.txt"}, "VALID")
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	raw, ok := data.Analysis.(json.RawMessage)
	require.True(t, ok)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, map[string]any{"x": float64(1)}, parsed)

	assert.False(t, data.Degraded)
	assert.Equal(t, []string{"a.txt"}, data.Metadata.FileNames)
	assert.Equal(t, 1, data.Metadata.FileCount)

	analyzedAt, err := time.Parse(time.RFC3339, data.Metadata.AnalyzedAt)
	require.NoError(t, err)
	assert.False(t, analyzedAt.Before(before))
}

func TestAnalysisService_UnparseableTextDegradesGracefully(t *testing.T) {
	svc, _ := newStubService(t, `{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`)

	data, err := svc.Analyze(context.Background(), "req-2", "chat", []string{"a.txt"}, "VALID")
	require.NoError(t, err)

	assert.True(t, data.Degraded)
	fb, ok := data.Analysis.(*FallbackAnalysis)
	require.True(t, ok)
	assert.Equal(t, "not json", fb.RawAnalysis)
}

func TestAnalysisService_UpstreamErrorPropagates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer upstream.Close()

	svc := NewAnalysisService(NewGeminiClient(upstream.URL, "gemini-1.5-flash"))
	_, err := svc.Analyze(context.Background(), "req-3", "chat", []string{"a.txt"}, "VALID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestAnalysisService_FileCountMatchesNames(t *testing.T) {
	svc, _ := newStubService(t, `{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`)

	names := []string{"a.txt", "b.json", "c.txt"}
	data, err := svc.Analyze(context.Background(), "req-4", "chat", names, "VALID")
	require.NoError(t, err)

	assert.Equal(t, names, data.Metadata.FileNames)
	assert.Equal(t, len(names), data.Metadata.FileCount)
}

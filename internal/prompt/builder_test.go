package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   []UploadedFile
		wantErr string
	}{
		{
			name: "txt and json accepted",
			files: []UploadedFile{
				{Name: "chat.txt", Size: 1024},
				{Name: "export.json", Size: 2048},
			},
		},
		{
			name: "media type accepted without suffix",
			files: []UploadedFile{
				{Name: "export", Size: 10, MediaType: "application/json"},
				{Name: "notes", Size: 10, MediaType: "text/plain"},
			},
		},
		{
			name: "unsupported type rejects whole batch",
			files: []UploadedFile{
				{Name: "chat.txt", Size: 10},
				{Name: "photo.png", Size: 10},
			},
			wantErr: "please select .txt or .json files only",
		},
		{
			name: "oversized file rejects whole batch",
			files: []UploadedFile{
				{Name: "small.txt", Size: 10},
				{Name: "huge.txt", Size: MaxFileSize + 1},
			},
			wantErr: "file size must be less than 50MB",
		},
		{
			name:    "empty selection",
			files:   nil,
			wantErr: "no files selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFiles(tt.files)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuildChatText_PreservesOrderAndHeaders(t *testing.T) {
	files := []FileContent{
		{Name: "jan.txt", Text: "hello"},
		{Name: "feb.txt", Text: "world"},
	}

	combined := BuildChatText(files)

	assert.Equal(t, "\n\n--- Chat from jan.txt ---\nhello\n\n\n--- Chat from feb.txt ---\nworld\n", combined)
	assert.Less(t,
		strings.Index(combined, "jan.txt"),
		strings.Index(combined, "feb.txt"))
}

func TestBuildAnalysisPrompt(t *testing.T) {
	chatText := "\n\n--- Chat from a.txt ---\nhi\n"
	built := BuildAnalysisPrompt(chatText)

	// The template precedes the chat data and pins the expected schema.
	assert.True(t, strings.HasSuffix(built, "Chat Data:\n"+chatText))
	assert.Contains(t, built, `"participants": ["", ""]`)
	assert.Contains(t, built, `"RelationshipStatusAndHistory"`)
	assert.Contains(t, built, `"OnAgainOffAgainPattern"`)
	assert.Contains(t, built, `"CommunicationPatterns"`)
	assert.Contains(t, built, `"ProblemSolvingStyle"`)
	assert.Contains(t, built, `"EmotionalLandscape"`)
	assert.Contains(t, built, `"UnderlyingConnection"`)
	assert.Contains(t, built, `"PowerDynamicsAndControl"`)
	assert.Contains(t, built, `"TrustDynamics"`)
	assert.Contains(t, built, "yyyy-mm-dd")
}

// Package prompt turns a set of uploaded chat export files into one
// self-describing text prompt for the generative-language model.
package prompt

import (
	"fmt"
	"strings"
)

// MaxFileSize is the per-file ceiling enforced before any network call.
const MaxFileSize = 50 * 1024 * 1024

// UploadedFile describes one selected file before its content is read.
type UploadedFile struct {
	Name      string
	Size      int64
	MediaType string
}

// FileContent is one decoded (filename, text) pair in selection order.
type FileContent struct {
	Name string
	Text string
}

func isSupported(f UploadedFile) bool {
	if f.MediaType == "text/plain" || f.MediaType == "application/json" {
		return true
	}
	return strings.HasSuffix(f.Name, ".txt") || strings.HasSuffix(f.Name, ".json")
}

// ValidateFiles rejects the whole selection batch if any entry has an
// unsupported type or exceeds the size ceiling. No partial submission of the
// valid subset is offered.
func ValidateFiles(files []UploadedFile) error {
	if len(files) == 0 {
		return fmt.Errorf("no files selected")
	}
	for _, f := range files {
		if !isSupported(f) {
			return fmt.Errorf("%s: please select .txt or .json files only", f.Name)
		}
		if f.Size > MaxFileSize {
			return fmt.Errorf("%s: file size must be less than 50MB", f.Name)
		}
	}
	return nil
}

// BuildChatText concatenates the decoded files into one blob with a per-file
// delimiter header, preserving selection order.
func BuildChatText(files []FileContent) string {
	var combined strings.Builder
	for _, f := range files {
		combined.WriteString(fmt.Sprintf("\n\n--- Chat from %s ---\n%s\n", f.Name, f.Text))
	}
	return combined.String()
}

// BuildAnalysisPrompt wraps the concatenated chat text in the fixed
// instruction template. Prompt length is not checked against the model's
// input limits; oversized prompts surface as upstream errors.
func BuildAnalysisPrompt(chatText string) string {
	return analysisTemplate + chatText
}

// The template pins the exact JSON structure the model must return. The
// schema names the two conversation parties explicitly through the top-level
// participants field and keys per-participant sections as participantA and
// participantB, so the report never has to guess identity from incidental
// key sets.
const analysisTemplate = `
Task: Analyze chats between two individuals and extract relationship dynamics with structured details.

Please provide the response in the following exact JSON structure:

{
  "participants": ["", ""],
  "RelationshipStatusAndHistory": {
    "RelationshipHistory": {
      "status": "",
      "details": [
        "on-again, off-again patterns",
        "basis of initial interaction",
        "shift in conversation focus",
        "expressions of liking or love",
        "response patterns"
      ]
    },
    "CurrentStatus": {
      "status": "",
      "details": [
        "romantic tension or resolution",
        "trust issues",
        "emotional defense patterns",
        "conflict areas"
      ]
    }
  },
  "OnAgainOffAgainPattern": {
    "RelationshipTrajectory": {
      "pattern": "",
      "timeline": [
        {
          "date": "",
          "event": ""
        }
      ]
    }
  },
  "CommunicationPatterns": {
    "Frequency": "",
    "ResponseSpeed": {
      "overall": "",
      "participantA": "",
      "participantB": ""
    },
    "Initiation": {
      "participantA": "",
      "participantB": ""
    },
    "LanguageStyle": {
      "informality": "",
      "codeSwitching": true,
      "internetSlang": [],
      "emojiUsage": "",
      "multimediaSharing": ""
    }
  },
  "ProblemSolvingStyle": {
    "pattern": "",
    "participantA": "",
    "participantB": ""
  },
  "EmotionalLandscape": {
    "participantA": {
      "state": "",
      "keyIndicators": []
    },
    "participantB": {
      "state": "",
      "keyIndicators": []
    }
  },
  "UnderlyingConnection": {
    "CaringGestures": [],
    "ProtectiveInstincts": [],
    "EmotionalInvestment": ""
  },
  "PowerDynamicsAndControl": {
    "ConversationalPower": {
      "participantA": "",
      "participantB": ""
    },
    "RespectLevels": {
      "duringConflicts": "",
      "baselineInteractions": ""
    }
  },
  "TrustDynamics": {
    "TrustErosion": "",
    "Vulnerability": []
  }
}

Instructions: Fill the participants array with the two names as they appear in the chats, in the order participantA, participantB. For each chat pair, populate the fields with concise extracted text and short bullet points where applicable. Dates should be in yyyy-mm-dd format if referenced. List repeated patterns and reference direct phrases from the chats if they show key emotional states.

Chat Data:
`

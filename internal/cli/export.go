package cli

import (
	"encoding/json"
	"html/template"
	"os"
	"strings"

	"github.com/chatlens/relationship-analyzer/internal/core"
)

const reportTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Relationship Analysis Report</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; line-height: 1.6; color: #1f1f2e; }
    h1 { color: #c0397f; }
    .meta { color: #6b6b7b; margin-bottom: 2rem; }
    .degraded { background: #fff4e0; border: 1px solid #e8c98a; padding: 1rem; border-radius: 6px; }
    pre { background: #f5f4f7; padding: 1rem; border-radius: 6px; overflow-x: auto; white-space: pre-wrap; }
    @media print { body { margin: 0; } }
  </style>
</head>
<body>
  <h1>Relationship Analysis Report</h1>
  <div class="meta">
    <p>Files: {{.FileList}} ({{.FileCount}})</p>
    <p>Analyzed at: {{.AnalyzedAt}}</p>
    <p>Participants: {{.ParticipantA}}, {{.ParticipantB}}</p>
  </div>
  {{if .Degraded}}
  <div class="degraded">
    <p>The model's answer could not be parsed as a structured report. The raw
    analysis text is preserved below.</p>
  </div>
  <pre>{{.RawAnalysis}}</pre>
  {{else}}
  <pre>{{.PrettyJSON}}</pre>
  {{end}}
</body>
</html>
`

type reportPage struct {
	FileList     string
	FileCount    int
	AnalyzedAt   string
	ParticipantA string
	ParticipantB string
	Degraded     bool
	RawAnalysis  string
	PrettyJSON   string
}

// ExportHTML writes a standalone HTML report suitable for archiving or
// printing to PDF.
func ExportHTML(path string, data *core.AnalysisData) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}

	nameA, nameB := participantNames(data)
	page := reportPage{
		FileList:     strings.Join(data.Metadata.FileNames, ", "),
		FileCount:    data.Metadata.FileCount,
		AnalyzedAt:   data.Metadata.AnalyzedAt,
		ParticipantA: nameA,
		ParticipantB: nameB,
		Degraded:     data.Degraded,
	}

	if fb, ok := data.Analysis.(*core.FallbackAnalysis); ok {
		page.RawAnalysis = fb.RawAnalysis
	} else if raw, ok := data.Analysis.(json.RawMessage); ok {
		var pretty map[string]any
		if err := json.Unmarshal(raw, &pretty); err == nil {
			if formatted, err := json.MarshalIndent(pretty, "", "  "); err == nil {
				page.PrettyJSON = string(formatted)
			}
		}
		if page.PrettyJSON == "" {
			page.PrettyJSON = string(raw)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, page)
}

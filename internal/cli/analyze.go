// Package cli implements the analyzer command line client: it validates chat
// export files, builds the analysis prompt, submits it (through the server
// bridge or straight to Gemini), and renders the report.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chatlens/relationship-analyzer/internal/core"
	"github.com/chatlens/relationship-analyzer/internal/prompt"
)

var (
	apiKey     string
	serverURL  string
	direct     bool
	model      string
	outputFmt  string
	exportHTML string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "analyzer",
		Short: "Analyze relationship dynamics in exported chats",
		Long: `Relationship Analyzer CLI.

Upload chat export files (.txt or .json), supply your Gemini API key, and
receive a structured relationship analysis report.`,
	}

	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Run a relationship analysis over one or more chat export files",
		Long: `Analyze chat export files with AI assistance.

Examples:
  # Analyze a single WhatsApp export through a running server
  analyzer analyze chat.txt --api-key $GEMINI_API_KEY

  # Analyze several exports and save the report as HTML
  analyzer analyze jan.txt feb.txt --export-html report.html

  # Skip the server and call Gemini directly
  analyzer analyze chat.json --direct

  # Machine-readable output
  analyzer analyze chat.txt -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Relationship Analyzer server URL")
	cmd.Flags().BoolVar(&direct, "direct", false, "Call the Gemini API directly instead of going through the server")
	cmd.Flags().StringVar(&model, "model", "gemini-1.5-flash", "Gemini model used in direct mode")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&exportHTML, "export-html", "", "Write the report to the given HTML file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("a Gemini API key is required: pass --api-key or set GEMINI_API_KEY")
	}

	files, err := statFiles(args)
	if err != nil {
		return err
	}
	if err := prompt.ValidateFiles(files); err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Reading chat files... (25%)"
	s.Start()

	contents, err := readFiles(args)
	if err != nil {
		s.Stop()
		return err
	}

	chatText := prompt.BuildChatText(contents)
	analysisPrompt := prompt.BuildAnalysisPrompt(chatText)
	fileNames := make([]string, len(files))
	for i, f := range files {
		fileNames[i] = f.Name
	}

	s.Suffix = " Analyzing with Gemini... (50%)"

	var data *core.AnalysisData
	if direct {
		data, err = analyzeDirect(cmd.Context(), analysisPrompt, fileNames)
	} else {
		data, err = analyzeViaServer(cmd.Context(), analysisPrompt, fileNames)
	}
	if err != nil {
		s.Stop()
		color.Red("✗ Analysis failed: %v", err)
		return err
	}

	s.Suffix = " Preparing report... (75%)"

	if exportHTML != "" {
		if err := ExportHTML(exportHTML, data); err != nil {
			s.Stop()
			return fmt.Errorf("failed to export HTML report: %w", err)
		}
	}

	s.Suffix = " Done (100%)"
	s.Stop()

	if exportHTML != "" {
		color.Green("✓ Report written to %s", exportHTML)
	}

	return DisplayReport(data, outputFmt)
}

func statFiles(paths []string) ([]prompt.UploadedFile, error) {
	files := make([]prompt.UploadedFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", p, err)
		}
		files = append(files, prompt.UploadedFile{Name: info.Name(), Size: info.Size()})
	}
	return files, nil
}

func readFiles(paths []string) ([]prompt.FileContent, error) {
	contents := make([]prompt.FileContent, 0, len(paths))
	for _, p := range paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", p, err)
		}
		contents = append(contents, prompt.FileContent{Name: filepath.Base(p), Text: string(text)})
	}
	return contents, nil
}

// analyzeViaServer submits the built prompt to the bridge endpoint, exactly
// as the browser flow does.
func analyzeViaServer(ctx context.Context, analysisPrompt string, fileNames []string) (*core.AnalysisData, error) {
	body, err := json.Marshal(map[string]any{
		"chatData":  analysisPrompt,
		"fileNames": fileNames,
		"apiKey":    apiKey,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope core.AnalysisEnvelope
	if err := json.Unmarshal(respBytes, &envelope); err != nil {
		return nil, fmt.Errorf("analysis failed: %s", resp.Status)
	}
	if !envelope.Success {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%s", envelope.Error)
		}
		return nil, fmt.Errorf("analysis failed: %s", resp.Status)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("analysis failed: server returned no report data")
	}

	// Re-encode the dynamic analysis block so downstream rendering sees the
	// same shapes the server-side path produces: a *core.FallbackAnalysis on
	// the degraded path, a json.RawMessage otherwise.
	raw, err := json.Marshal(envelope.Data.Analysis)
	if err != nil {
		return nil, err
	}
	if envelope.Data.Degraded {
		var fb core.FallbackAnalysis
		if err := json.Unmarshal(raw, &fb); err != nil {
			return nil, fmt.Errorf("analysis failed: malformed degraded report: %w", err)
		}
		envelope.Data.Analysis = &fb
		return envelope.Data, nil
	}
	envelope.Data.Analysis = json.RawMessage(raw)

	return envelope.Data, nil
}

// analyzeDirect bypasses the server and calls Gemini through the official
// SDK, then applies the same normalization the bridge would.
func analyzeDirect(ctx context.Context, analysisPrompt string, fileNames []string) (*core.AnalysisData, error) {
	llm, err := core.NewLLMService(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	defer llm.Close()

	generatedText, err := llm.AnalyzeChat(ctx, analysisPrompt)
	if err != nil {
		return nil, err
	}

	analysis, degraded := core.NormalizeAnalysis(generatedText)

	return &core.AnalysisData{
		Analysis: analysis,
		Degraded: degraded,
		Metadata: core.AnalysisMetadata{
			FileNames:  fileNames,
			AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
			FileCount:  len(fileNames),
		},
	}, nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/chatlens/relationship-analyzer/internal/core"
)

// DisplayReport formats and prints the analysis report.
func DisplayReport(data *core.AnalysisData, format string) error {
	switch format {
	case "json":
		return displayJSON(data)
	case "yaml":
		return displayYAML(data)
	case "human":
		fallthrough
	default:
		displayHuman(data)
	}
	return nil
}

func displayJSON(data *core.AnalysisData) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(data *core.AnalysisData) error {
	plain, err := toPlain(data)
	if err != nil {
		return err
	}
	output, err := yaml.Marshal(plain)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// toPlain round-trips the report through JSON so the dynamic analysis block
// becomes plain maps and slices that yaml.Marshal can handle.
func toPlain(data *core.AnalysisData) (any, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(encoded, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func displayHuman(data *core.AnalysisData) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Println()
	white.Println("RELATIONSHIP ANALYSIS REPORT")
	fmt.Printf("   Files: %s (%d)\n", strings.Join(data.Metadata.FileNames, ", "), data.Metadata.FileCount)
	fmt.Printf("   Analyzed at: %s\n", data.Metadata.AnalyzedAt)

	nameA, nameB := participantNames(data)
	fmt.Printf("   Participants: %s, %s\n\n", nameA, nameB)

	if data.Degraded {
		yellow.Println("⚠ The model's answer could not be parsed as a structured report.")
		fmt.Println("  Raw analysis text follows:")
		fmt.Println()
		if fb, ok := data.Analysis.(*core.FallbackAnalysis); ok {
			fmt.Println(fb.RawAnalysis)
		}
		return
	}

	sections, err := decodeSections(data.Analysis)
	if err != nil {
		fmt.Println("Report could not be rendered; use -o json for the raw payload.")
		return
	}

	for _, name := range sortedKeys(sections) {
		if name == "participants" {
			continue
		}
		cyan.Printf("%s\n", name)
		renderValue(sections[name], 1)
		fmt.Println()
	}
}

// participantNames reads the explicit participants field from the payload,
// falling back to generic placeholders when the model omitted it.
func participantNames(data *core.AnalysisData) (string, string) {
	if fb, ok := data.Analysis.(*core.FallbackAnalysis); ok {
		return fb.Participants[0], fb.Participants[1]
	}

	sections, err := decodeSections(data.Analysis)
	if err == nil {
		if list, ok := sections["participants"].([]any); ok && len(list) == 2 {
			a, aOK := list[0].(string)
			b, bOK := list[1].(string)
			if aOK && bOK && a != "" && b != "" {
				return a, b
			}
		}
	}
	return "Person A", "Person B"
}

func decodeSections(analysis any) (map[string]any, error) {
	raw, ok := analysis.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("analysis is not a JSON payload")
	}
	var sections map[string]any
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderValue(v any, depth int) {
	pad := strings.Repeat("   ", depth)
	switch value := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(value) {
			switch value[k].(type) {
			case map[string]any, []any:
				fmt.Printf("%s%s:\n", pad, k)
				renderValue(value[k], depth+1)
			default:
				fmt.Printf("%s%s: %s\n", pad, k, scalarString(value[k]))
			}
		}
	case []any:
		for _, item := range value {
			switch item.(type) {
			case map[string]any, []any:
				fmt.Printf("%s-\n", pad)
				renderValue(item, depth+1)
			default:
				fmt.Printf("%s- %s\n", pad, scalarString(item))
			}
		}
	default:
		fmt.Printf("%s%s\n", pad, scalarString(value))
	}
}

func scalarString(v any) string {
	if v == nil {
		return "-"
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "-"
		}
		return s
	}
	return fmt.Sprintf("%v", v)
}

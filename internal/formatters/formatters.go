package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobfit/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "FitResult", &FitTextFormatter{})
	registry.RegisterFormatter("markdown", "FitResult", &FitMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.FitResult, *types.FitResult:
		return "FitResult"
	default:
		return "any"
	}
}

func asFitResult(data any) (types.FitResult, bool) {
	switch v := data.(type) {
	case types.FitResult:
		return v, true
	case *types.FitResult:
		return *v, true
	}
	return types.FitResult{}, false
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// FitTextFormatter handles text formatting for fit evaluation results
type FitTextFormatter struct{}

func (ftf *FitTextFormatter) Format(data any) (string, error) {
	result, ok := asFitResult(data)
	if !ok {
		return "", fmt.Errorf("expected FitResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== FIT EVALUATION ===\n\n")
	if result.Job != "" {
		output.WriteString(fmt.Sprintf("Job: %s\n", result.Job))
	}
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("Company: %s\n", result.Company))
	}
	output.WriteString(fmt.Sprintf("Recommendation: %s\n\n", strings.ToUpper(string(result.Recommendation))))

	output.WriteString("=== SCORES ===\n")
	output.WriteString(fmt.Sprintf("Total Score:      %.2f\n", result.FitScore.TotalScore))
	output.WriteString(fmt.Sprintf("Required Skills:  %.2f\n", result.FitScore.RequiredSkillScore))
	output.WriteString(fmt.Sprintf("Preferred Skills: %.2f\n", result.FitScore.PreferredSkillScore))
	output.WriteString(fmt.Sprintf("Experience:       %.2f\n", result.FitScore.ExperienceScore))
	output.WriteString(fmt.Sprintf("Education:        %.2f\n\n", result.FitScore.EducationScore))

	output.WriteString("=== CONSTRAINTS ===\n")
	if result.Constraints.Passed {
		output.WriteString("Passed: yes\n")
	} else {
		output.WriteString("Passed: no\n")
	}
	if len(result.Constraints.Reasons) > 0 {
		for _, reason := range result.Constraints.Reasons {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
	}
	output.WriteString("\n")

	if result.Reasoning != "" {
		output.WriteString("=== REASONING ===\n")
		output.WriteString(result.Reasoning)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (ftf *FitTextFormatter) SupportedType() string {
	return "FitResult"
}

// FitMarkdownFormatter handles markdown formatting for fit evaluation results
type FitMarkdownFormatter struct{}

func (fmf *FitMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asFitResult(data)
	if !ok {
		return "", fmt.Errorf("expected FitResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Fit Evaluation\n\n")
	if result.Job != "" {
		output.WriteString(fmt.Sprintf("**Job:** %s\n\n", result.Job))
	}
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("**Company:** %s\n\n", result.Company))
	}
	output.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", result.Recommendation))

	output.WriteString("## Scores\n\n")
	output.WriteString("| Component | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Total | %.2f |\n", result.FitScore.TotalScore))
	output.WriteString(fmt.Sprintf("| Required Skills | %.2f |\n", result.FitScore.RequiredSkillScore))
	output.WriteString(fmt.Sprintf("| Preferred Skills | %.2f |\n", result.FitScore.PreferredSkillScore))
	output.WriteString(fmt.Sprintf("| Experience | %.2f |\n", result.FitScore.ExperienceScore))
	output.WriteString(fmt.Sprintf("| Education | %.2f |\n\n", result.FitScore.EducationScore))

	output.WriteString("## Constraints\n\n")
	if result.Constraints.Passed {
		output.WriteString("**Passed:** yes\n\n")
	} else {
		output.WriteString("**Passed:** no\n\n")
	}
	if len(result.Constraints.Reasons) > 0 {
		for _, reason := range result.Constraints.Reasons {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
		output.WriteString("\n")
	}

	if result.Reasoning != "" {
		output.WriteString("## Reasoning\n\n")
		output.WriteString(result.Reasoning)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (fmf *FitMarkdownFormatter) SupportedType() string {
	return "FitResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()

package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks a requested fit result format against the
// renderers the application supports (app.supportedFormats). An empty
// supported list means no restriction.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured result formats, typically
// json, text and markdown.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}

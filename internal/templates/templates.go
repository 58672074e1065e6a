// Package templates embeds the document templates rendered by the export adapters.
package templates

import (
	"embed"
)

//go:embed report/*.tmpl
var reportTemplates embed.FS

// GetExecutiveReport returns the HTML executive report template content
func GetExecutiveReport() (string, error) {
	content, err := reportTemplates.ReadFile("report/executive.html.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

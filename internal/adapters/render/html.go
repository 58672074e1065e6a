// Package render turns reports into downloadable documents.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/templates"
)

// HTMLRenderer renders the executive report page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded executive report template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	content, err := templates.GetExecutiveReport()
	if err != nil {
		return nil, fmt.Errorf("failed to load report template: %w", err)
	}

	tmpl, err := template.New("executive").Funcs(template.FuncMap{
		"tierLabel": func(t any) string { return report.TierLabel(fmt.Sprint(t)) },
		"statusLabel": func(s string) string {
			return strings.ReplaceAll(s, "_", " ")
		},
	}).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

type gapRow struct {
	Label   string
	Counts  gap.Counts
	Overall gap.Severity
}

type executiveView struct {
	Report       *primary.ProjectReport
	Summary      string
	SummaryError string
	GeneratedAt  string
	Gaps         []gapRow
}

// Render writes the HTML document for rep.
func (r *HTMLRenderer) Render(w io.Writer, rep *primary.ExecutiveReport) error {
	if rep == nil || rep.Report == nil {
		return fmt.Errorf("nothing to render")
	}

	view := executiveView{
		Report:       rep.Report,
		Summary:      rep.Summary,
		SummaryError: rep.SummaryError,
		GeneratedAt:  rep.GeneratedAt.UTC().Format(time.RFC1123),
	}
	for _, t := range gap.Types {
		c := rep.Report.DependencyGapsSummary[t]
		view.Gaps = append(view.Gaps, gapRow{Label: GapTypeLabel(t), Counts: c, Overall: c.Overall()})
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// GapTypeLabel is the display name of a gap dimension.
func GapTypeLabel(t gap.Type) string {
	switch t {
	case gap.TypeCMDB:
		return "CMDB"
	case gap.TypeDiscovery:
		return "Discovery"
	case gap.TypeObservability:
		return "Observability"
	default:
		return "Other"
	}
}

package report

import (
	"fmt"
	"strings"
)

// SummarySystemPrompt instructs the text generator to write an executive summary.
const SummarySystemPrompt = `You are an expert in IT Operations Management reporting.
Generate a comprehensive executive summary report for an event management automation assessment.
Be concise but informative, highlighting key findings and recommendations.`

// SummaryInput is the project context quoted in the summary request.
type SummaryInput struct {
	ProjectName          string
	ClientName           string
	EngagementType       string
	Workflows            int
	CompletionPercentage int
	ReadinessTier        string
}

// SummaryMessage builds the user turn of an executive summary request.
func SummaryMessage(in SummaryInput) string {
	tier := in.ReadinessTier
	if tier == "" {
		tier = "Unknown"
	}
	var b strings.Builder
	b.WriteString("Generate an executive summary report for this project:\n")
	fmt.Fprintf(&b, "Project: %s\n", in.ProjectName)
	fmt.Fprintf(&b, "Client: %s\n", in.ClientName)
	fmt.Fprintf(&b, "Engagement Type: %s\n", in.EngagementType)
	fmt.Fprintf(&b, "Workflows: %d\n", in.Workflows)
	fmt.Fprintf(&b, "Average Completion: %d%%\n", in.CompletionPercentage)
	fmt.Fprintf(&b, "Overall Readiness Tier: %s", tier)
	return b.String()
}

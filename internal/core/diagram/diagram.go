// Package diagram renders workflow steps as Mermaid flowchart text.
// This is part of the Functional Core - no I/O, only pure functions.
package diagram

import (
	"fmt"
	"strings"
)

// EmptyDiagram is returned for a workflow with no steps.
const EmptyDiagram = "graph TD\n  Start[\"No steps defined\"]"

const (
	descriptionLimit = 50
	painPointLimit   = 40
)

// Step is one node of the diagram. Score and Tier are nil when unscored.
type Step struct {
	Number      int
	Name        string
	Description string
	PainPoints  string
	Score       *int
	Tier        *string
}

type tierStyle struct {
	label  string
	fill   string
	stroke string
	text   string
}

// tierStyles is keyed by the class suffix used in the diagram.
var tierStyles = map[string]tierStyle{
	"autonomous":    {"Autonomous", "#28a745", "#1e7e34", "#fff"},
	"human_in_loop": {"Human-in-Loop", "#ffc107", "#e0a800", "#000"},
	"human_only":    {"Human-Only", "#dc3545", "#bd2130", "#fff"},
	"null":          {"Not Scored", "#6c757d", "#5a6268", "#fff"},
}

var tierOrder = []string{"autonomous", "human_in_loop", "human_only", "null"}

// Generate renders a workflow as a top-down flowchart: a start node titled
// with the workflow name, one node per step in the given order, optional
// description and pain point siblings, and a terminal node.
// Steps must already be sorted by step number.
func Generate(workflowName string, steps []Step) string {
	if len(steps) == 0 {
		return EmptyDiagram
	}

	var b strings.Builder
	b.WriteString("graph TD\n")
	fmt.Fprintf(&b, "  Start[\"%s\"]", Escape(workflowName))

	for _, step := range steps {
		id := fmt.Sprintf("Step%d", step.Number)
		tier := tierKey(step.Tier)
		style := tierStyles[tier]

		label := step.Name
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Step %d", step.Number)
		}
		text := Escape(label)
		if step.Score != nil {
			text += fmt.Sprintf("<br/><strong>Score: %d</strong><br/><em>%s</em>", *step.Score, style.label)
		} else {
			text += fmt.Sprintf("<br/><em>%s</em>", style.label)
		}
		fmt.Fprintf(&b, "\n  %s[\"%s\"]:::tier_%s", id, text, tier)

		if step.Description != "" {
			fmt.Fprintf(&b, "\n  %s_Desc[\"%s\"]:::description", id, Escape(Truncate(step.Description, descriptionLimit)))
			fmt.Fprintf(&b, "\n  %s --> %s_Desc", id, id)
		}
		if step.PainPoints != "" {
			fmt.Fprintf(&b, "\n  %s_Pain[\"⚠ %s\"]:::pain", id, Escape(Truncate(step.PainPoints, painPointLimit)))
			fmt.Fprintf(&b, "\n  %s --> %s_Pain", id, id)
		}
	}

	b.WriteString("\n  Start")
	for _, step := range steps {
		fmt.Fprintf(&b, " --> Step%d", step.Number)
	}
	b.WriteString(" --> End[\"Workflow Complete\"]")

	for _, tier := range tierOrder {
		s := tierStyles[tier]
		fmt.Fprintf(&b, "\n  classDef tier_%s fill:%s,stroke:%s,color:%s;", tier, s.fill, s.stroke, s.text)
	}
	b.WriteString("\n  classDef description fill:#e7f3ff,stroke:#0066cc,color:#000;")
	b.WriteString("\n  classDef pain fill:#ffe7e7,stroke:#dc3545,color:#000;")
	b.WriteString("\n  classDef start fill:#0066cc,stroke:#004a99,color:#fff;")
	b.WriteString("\n  classDef end fill:#28a745,stroke:#1e7e34,color:#fff;")
	b.WriteString("\n  class Start start;")
	b.WriteString("\n  class End end;")

	return b.String()
}

func tierKey(tier *string) string {
	if tier == nil {
		return "null"
	}
	if _, ok := tierStyles[*tier]; !ok || *tier == "null" {
		return "null"
	}
	return *tier
}

// Escape makes user text safe inside a double-quoted Mermaid label.
// '#' is replaced first so the entity codes it introduces survive.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "#", "#35;")
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// Truncate shortens s to limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// Package prompt assembles the field guidance prompt sent to the text generator.
// This is part of the Functional Core - no I/O, only pure functions.
package prompt

import (
	"fmt"
	"slices"
	"strings"
)

// Texts holds the configurable prompt fragments.
// Workflows is keyed by workflow index 1-8.
type Texts struct {
	Global    string
	Workflows map[int]string
}

// Input identifies the field a user is asking guidance for.
type Input struct {
	WorkflowIndex int
	WorkflowName  string
	FieldName     string
	Tools         []string
}

// Assemble concatenates, in order, the global text, a workflow context
// header, the per-workflow guidance and a closing instruction.
// Unknown workflow indices contribute empty guidance.
func Assemble(in Input, texts Texts) string {
	name := in.WorkflowName
	if name == "" {
		name = fmt.Sprintf("Workflow %d", in.WorkflowIndex)
	}

	tools := "None specified"
	if len(in.Tools) > 0 {
		tools = strings.Join(in.Tools, ", ")
	}

	var b strings.Builder
	b.WriteString(texts.Global)
	b.WriteString("\n\nWORKFLOW CONTEXT:\n")
	fmt.Fprintf(&b, "Workflow: %s\n", name)
	fmt.Fprintf(&b, "Field Being Completed: %s\n", in.FieldName)
	fmt.Fprintf(&b, "Available Tools: %s\n", tools)
	b.WriteString("\nWORKFLOW-SPECIFIC GUIDANCE:\n")
	b.WriteString(texts.Workflows[in.WorkflowIndex])
	fmt.Fprintf(&b, "\n\nProvide targeted guidance for filling in the \"%s\" field considering the workflow and available tools.", in.FieldName)
	return b.String()
}

// UserMessage builds the user turn for a field guidance request: the current
// value followed by the other non-empty step fields, sorted by name.
func UserMessage(fieldName, fieldValue string, stepData map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please provide guidance for the \"%s\" field.\n", fieldName)
	if fieldValue != "" {
		fmt.Fprintf(&b, "Current value: \"%s\"\n", fieldValue)
	}

	keys := make([]string, 0, len(stepData))
	for k, v := range stepData {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		slices.Sort(keys)
		b.WriteString("\nContext from other fields:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, stepData[k])
		}
	}

	b.WriteString("\nProvide specific, actionable guidance for this field.")
	return b.String()
}

package prompt

import (
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	texts := Texts{
		Global:    "GLOBAL",
		Workflows: map[int]string{3: "CORRELATE"},
	}

	got := Assemble(Input{
		WorkflowIndex: 3,
		WorkflowName:  "Correlation & Context Enrichment",
		FieldName:     "decision_points",
		Tools:         []string{"Splunk", "ServiceNow"},
	}, texts)

	want := "GLOBAL\n\n" +
		"WORKFLOW CONTEXT:\n" +
		"Workflow: Correlation & Context Enrichment\n" +
		"Field Being Completed: decision_points\n" +
		"Available Tools: Splunk, ServiceNow\n\n" +
		"WORKFLOW-SPECIFIC GUIDANCE:\n" +
		"CORRELATE\n\n" +
		"Provide targeted guidance for filling in the \"decision_points\" field considering the workflow and available tools."

	if got != want {
		t.Errorf("Assemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestAssembleFallbacks(t *testing.T) {
	got := Assemble(Input{WorkflowIndex: 42, FieldName: "pain_points"}, Texts{Global: "G"})

	for _, want := range []string{
		"Workflow: Workflow 42\n",
		"Available Tools: None specified\n",
		"WORKFLOW-SPECIFIC GUIDANCE:\n\n\nProvide targeted guidance",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Assemble() missing %q in:\n%s", want, got)
		}
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	in := Input{WorkflowIndex: 5, WorkflowName: "Diagnosis & Resolution", FieldName: "role_team", Tools: []string{"Dynatrace"}}
	texts := Defaults()

	first := Assemble(in, texts)
	for i := 0; i < 10; i++ {
		if got := Assemble(in, texts); got != first {
			t.Fatalf("Assemble() output changed on call %d", i)
		}
	}
	if !strings.HasPrefix(first, DefaultGlobal) {
		t.Error("expected assembled prompt to start with the global text")
	}
	if !strings.Contains(first, DefaultWorkflow(5)) {
		t.Error("expected assembled prompt to contain workflow 5 guidance")
	}
}

func TestDefaultsCoverAllWorkflows(t *testing.T) {
	d := Defaults()
	for i := 1; i <= 8; i++ {
		if d.Workflows[i] == "" {
			t.Errorf("no default guidance for workflow %d", i)
		}
	}
	if DefaultWorkflow(0) != "" || DefaultWorkflow(9) != "" {
		t.Error("expected empty guidance for unknown indices")
	}
}

func TestUserMessage(t *testing.T) {
	got := UserMessage("trigger_input", "PagerDuty alert", map[string]string{
		"step_name":     "Receive alert",
		"description":   "",
		"role_team":     "NOC",
		"trigger_input": "PagerDuty alert",
	})

	want := "Please provide guidance for the \"trigger_input\" field.\n" +
		"Current value: \"PagerDuty alert\"\n" +
		"\nContext from other fields:\n" +
		"- role_team: NOC\n" +
		"- step_name: Receive alert\n" +
		"- trigger_input: PagerDuty alert\n" +
		"\nProvide specific, actionable guidance for this field."

	if got != want {
		t.Errorf("UserMessage() =\n%s\nwant\n%s", got, want)
	}
}

func TestUserMessageWithoutContext(t *testing.T) {
	got := UserMessage("pain_points", "", nil)
	want := "Please provide guidance for the \"pain_points\" field.\n\nProvide specific, actionable guidance for this field."
	if got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}

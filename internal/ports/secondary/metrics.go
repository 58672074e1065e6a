package secondary

// Outcome labels shared by metrics recorders.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	ScoreOutcomeScored = "scored"
	ScoreOutcomeFailed = "failed"
)

// MetricsRecorder receives domain events worth counting.
type MetricsRecorder interface {
	// ObserveStepScore counts one step of a batch scoring run.
	ObserveStepScore(outcome string)

	// ObserveLLMRequest counts one call to the text generator.
	ObserveLLMRequest(operation, outcome string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveStepScore(string)          {}
func (NopMetrics) ObserveLLMRequest(string, string) {}

package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrNoJSONObject is returned when a response contains no well-formed JSON object.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// Payload is a parsed score response.
type Payload struct {
	Dimensions Dimensions
	Rationale  string
}

type rawPayload struct {
	RuleBased          *float64 `json:"rule_based_score"`
	DataAvailability   *float64 `json:"data_availability_score"`
	ExceptionFrequency *float64 `json:"exception_frequency_score"`
	Auditability       *float64 `json:"auditability_score"`
	SpeedSensitivity   *float64 `json:"speed_sensitivity_score"`
	Rationale          string   `json:"rationale"`
}

// ExtractJSON returns the first balanced {...} substring of text that is
// valid JSON. Braces inside string literals are ignored.
func ExtractJSON(text string) (string, error) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end := matchBrace(text, start)
		if end < 0 {
			continue
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}
	return "", ErrNoJSONObject
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParsePayload extracts and validates a score payload from free text.
// All five dimensions must be present and numeric; values are rounded and
// clamped to the 1-5 range.
func ParsePayload(text string) (Payload, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return Payload{}, err
	}

	var raw rawPayload
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return Payload{}, fmt.Errorf("invalid score payload: %w", err)
	}

	fields := []struct {
		name  string
		value *float64
	}{
		{"rule_based_score", raw.RuleBased},
		{"data_availability_score", raw.DataAvailability},
		{"exception_frequency_score", raw.ExceptionFrequency},
		{"auditability_score", raw.Auditability},
		{"speed_sensitivity_score", raw.SpeedSensitivity},
	}
	for _, f := range fields {
		if f.value == nil {
			return Payload{}, fmt.Errorf("score payload missing %s", f.name)
		}
	}

	dims := Dimensions{
		RuleBased:          toInt(*raw.RuleBased),
		DataAvailability:   toInt(*raw.DataAvailability),
		ExceptionFrequency: toInt(*raw.ExceptionFrequency),
		Auditability:       toInt(*raw.Auditability),
		SpeedSensitivity:   toInt(*raw.SpeedSensitivity),
	}

	return Payload{Dimensions: dims.Clamp(), Rationale: raw.Rationale}, nil
}

func toInt(v float64) int {
	return int(math.Round(v))
}

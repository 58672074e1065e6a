// Package cli renders primary port results for the terminal.
package cli

import (
	"strconv"

	"github.com/fatih/color"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/core/workflow"
)

var (
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed)
	cyan    = color.New(color.FgCyan)
	faint   = color.New(color.Faint)
	heading = color.New(color.Bold)
)

// tierText colors a tier label: autonomous green, human-in-loop yellow,
// human-only red. Unscored steps are dimmed.
func tierText(tier string) string {
	label := report.TierLabel(tier)
	switch scoring.Tier(tier) {
	case scoring.TierAutonomous:
		return green.Sprint(label)
	case scoring.TierHumanInLoop:
		return yellow.Sprint(label)
	case scoring.TierHumanOnly:
		return red.Sprint(label)
	default:
		return faint.Sprint(label)
	}
}

func severityText(sev gap.Severity) string {
	switch sev {
	case gap.SeverityRed:
		return red.Sprint("RED")
	case gap.SeverityAmber:
		return yellow.Sprint("AMBER")
	default:
		return green.Sprint("GREEN")
	}
}

func statusText(status string) string {
	switch workflow.Status(status) {
	case workflow.StatusComplete:
		return green.Sprint("complete")
	case workflow.StatusInProgress:
		return cyan.Sprint("in progress")
	default:
		return faint.Sprint("not started")
	}
}

// scoreText shows a composite out of 25, or a dash when unscored.
func scoreText(composite, scored int) string {
	if scored == 0 {
		return faint.Sprint("-")
	}
	return strconv.Itoa(composite) + "/25"
}

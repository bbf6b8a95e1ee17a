package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for gate verdicts.
// Green: passed gates
// Red: failed gates
// Yellow: gates that were not requested
// Cyan: gate names
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

// newColorScheme creates the standard color scheme for verdicts.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
	}
}

// Verdict is the outcome of a single gate.
type Verdict string

const (
	VerdictPass    Verdict = "PASS"
	VerdictFail    Verdict = "FAIL"
	VerdictSkipped Verdict = "SKIP"
)

// formatVerdict renders "gate: VERDICT (detail)", colorized when enabled.
func formatVerdict(gate string, verdict Verdict, detail string, scheme *colorScheme) string {
	label := gate
	v := string(verdict)
	if scheme != nil {
		label = scheme.label.Sprint(gate)
		switch verdict {
		case VerdictPass:
			v = scheme.success.Sprint(v)
		case VerdictFail:
			v = scheme.fail.Sprint(v)
		default:
			v = scheme.warn.Sprint(v)
		}
	}

	if detail == "" {
		return fmt.Sprintf("%s: %s", label, v)
	}
	return fmt.Sprintf("%s: %s (%s)", label, v, detail)
}

// LogVerdict logs the outcome of a gate at INFO level.
// Format: "[HH:MM:SS] [INFO] <gate>: <PASS|FAIL|SKIP> (<detail>)"
func (cl *ConsoleLogger) LogVerdict(gate string, verdict Verdict, detail string) {
	var scheme *colorScheme
	if cl.colorOutput {
		scheme = newColorScheme()
	}
	cl.LogInfo(formatVerdict(gate, verdict, detail, scheme))
}

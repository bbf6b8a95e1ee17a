package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatVerdict(t *testing.T) {
	tests := []struct {
		name    string
		gate    string
		verdict Verdict
		detail  string
		want    string
	}{
		{name: "pass with detail", gate: "coverage", verdict: VerdictPass, detail: "85.00% >= 80.00%", want: "coverage: PASS (85.00% >= 80.00%)"},
		{name: "fail without detail", gate: "tests", verdict: VerdictFail, want: "tests: FAIL"},
		{name: "skipped", gate: "coverage", verdict: VerdictSkipped, detail: "not configured", want: "coverage: SKIP (not configured)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVerdict(tt.gate, tt.verdict, tt.detail, nil))
		})
	}
}

func TestFormatVerdictWithColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	out := formatVerdict("tests", VerdictFail, "", newColorScheme())
	assert.Contains(t, out, "\x1b[31m", "FAIL should be red")
	assert.Contains(t, out, "FAIL")
}

func TestLogVerdict(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogVerdict("tests", VerdictPass, "12 directories inspected")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[INFO] tests: PASS (12 directories inspected)"), out)
}

func TestLogVerdictFilteredAtDefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, DefaultLevel)

	logger.LogVerdict("tests", VerdictPass, "")

	assert.Empty(t, buf.String())
}

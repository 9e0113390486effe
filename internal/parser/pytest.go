package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxFailureLines caps the number of FAILED/ERROR lines kept in a diagnostic
const MaxFailureLines = 20

var (
	countPattern   = regexp.MustCompile(`(\d+) (passed|failed|errors?|skipped|xfailed|xpassed|deselected|warnings?)`)
	summaryPattern = regexp.MustCompile(`^=*\s*(?:\d+ \w+(?:, )?)+.* in [\d.]+s.*$|^=*\s*no tests ran.*$`)
	failurePattern = regexp.MustCompile(`^(FAILED|ERROR) \S+`)
)

// PytestParser parses pytest console output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// ParseTestCounts extracts passed and failed case counts from the final
// summary line. Errors count as failures. If no summary is found it falls
// back to one case for the whole group: (1,0) on success, (0,1) otherwise.
func (p *PytestParser) ParseTestCounts(output string, success bool) (passed, failed int) {
	summary := p.SummaryLine(output)
	for _, m := range countPattern.FindAllStringSubmatch(summary, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch m[2] {
		case "passed", "xpassed":
			passed += n
		case "failed", "error", "errors":
			failed += n
		}
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if success {
		return 1, 0
	}
	return 0, 1
}

// SummaryLine returns the last pytest summary line without the = padding,
// or "" if there is none.
func (p *PytestParser) SummaryLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if summaryPattern.MatchString(line) {
			return strings.TrimSpace(strings.Trim(line, "="))
		}
	}
	return ""
}

// ParseFailures returns the FAILED/ERROR lines of pytest's short test summary
func (p *PytestParser) ParseFailures(output string) []string {
	var failures []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if failurePattern.MatchString(line) {
			failures = append(failures, line)
		}
	}
	return failures
}

// Diagnostic builds the text attached to a non-passing RunResult: the summary
// line followed by at most MaxFailureLines failure lines.
func (p *PytestParser) Diagnostic(output string) string {
	var b strings.Builder
	b.WriteString(p.SummaryLine(output))

	failures := p.ParseFailures(output)
	for i, f := range failures {
		if i == MaxFailureLines {
			b.WriteString("\n... " + strconv.Itoa(len(failures)-MaxFailureLines) + " more")
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f)
	}
	return b.String()
}

package parser

// Parser turns a runner's raw output into case counts, a one-line summary
// and a short diagnostic
type Parser interface {
	ParseTestCounts(output string, success bool) (passed, failed int)
	SummaryLine(output string) string
	Diagnostic(output string) string
}

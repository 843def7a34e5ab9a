package lox

import "strings"

// mockReporter collects reported errors so tests can make assertions on
// them.
type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func tokEOF(line int) *Token {
	return NewToken(EOF, "", nil, line)
}

// scanTokens runs the scanner over the source, assuming it is lexically
// valid.
func scanTokens(src string) []*Token {
	return NewScanner([]rune(src), newMockReporter()).Scan()
}

// runScript pushes the source through the full pipeline and returns the
// produced output together with the reporter that collected every
// diagnostic. Like the CLI driver, it always scans and parses, skips
// resolution after a scan or parse error, and skips interpretation after a
// resolve error.
func runScript(src string) (string, *mockReporter) {
	report := newMockReporter()
	var out strings.Builder
	interpreter := NewInterpreter(&out, report, false)

	scanner := NewScanner([]rune(src), report)
	tokens := scanner.Scan()
	parser := NewParser(tokens, report)
	statements := parser.Parse()
	if report.HadError() {
		return out.String(), report
	}
	resolver := NewResolver(interpreter, report)
	resolver.Resolve(statements)
	if report.HadError() {
		return out.String(), report
	}
	interpreter.Interpret(statements)
	return out.String(), report
}

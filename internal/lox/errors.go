package lox

import "fmt"

// ScanError wraps an error found during the scanning phase with the line
// where it occured.
type ScanError struct {
	line    int
	message string
}

// NewScanError creates a new scanner error
func NewScanError(line int, message string) error {
	return &ScanError{line, message}
}

func (err *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", err.line, err.message)
}

// ParseError wraps an error found during the parsing phase with the token
// where it occured.
type ParseError struct {
	token   *Token
	message string
}

// NewParseError creates a new parser error
func NewParseError(token *Token, message string) error {
	return &ParseError{token, message}
}

func (err *ParseError) Error() string {
	if err.token.Typ == EOF {
		return fmt.Sprintf(
			"[line %d] Error at end: %s",
			err.token.Line,
			err.message,
		)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.token.Line,
		err.token.Lexeme,
		err.message,
	)
}

// ResolveError wraps an error found during the resolution phase with the
// token where it occured.
type ResolveError struct {
	token   *Token
	message string
}

// NewResolveError creates a new resolver error
func NewResolveError(token *Token, message string) error {
	return &ResolveError{token, message}
}

func (err *ResolveError) Error() string {
	if err.token.Typ == EOF {
		return fmt.Sprintf(
			"[line %d] Error at end: %s",
			err.token.Line,
			err.message,
		)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.token.Line,
		err.token.Lexeme,
		err.message,
	)
}

// RuntimeError wraps an error returned by the interpreter with the token
// that carries the line information for the report.
type RuntimeError struct {
	token   *Token
	message string
}

// NewRuntimeError creates a new interpreter error
func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", err.message, err.token.Line)
}

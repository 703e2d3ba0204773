package interview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrConfiguration indicates the AI provider credential is absent. The handler
// maps it to a generic 500 without naming the missing variable.
var ErrConfiguration = errors.New("server configuration error")

// ValidationError carries every violated field constraint; requests are never
// partially accepted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid request data: " + strings.Join(names, ", ")
}

// ParseError means the AI completion did not contain decodable JSON. Raw holds
// the provider text for server-side diagnostics only; it must never be
// returned to the client.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse AI response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError means the decoded JSON is missing required fields or has fields
// of the wrong type.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "invalid AI response shape: " + e.Reason
}

// UpstreamError wraps a transport or provider failure on the outbound AI call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream AI call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Package diag implements the structured diagnostic type shared by the
// lexer, parser, evaluator and printer (spec §7 "Error Handling Design").
package diag

import (
	"fmt"
	"strings"

	"github.com/Yunsang-Jeong/hcl/ast"
)

// Kind is the error taxonomy spec §7 describes. It does not name a Go
// type per kind; a single Diagnostic struct carries Kind plus message
// and span, the way the teacher wraps every failure with
// fmt.Errorf("...: %w", err) rather than defining a bespoke error type
// per call site.
type Kind uint8

const (
	Lexical Kind = iota
	Parse
	Resolution
	Type
	RangeKind
	Semantic
	Serialization
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Parse:
		return "parse error"
	case Resolution:
		return "resolution error"
	case Type:
		return "type error"
	case RangeKind:
		return "range error"
	case Semantic:
		return "semantic error"
	case Serialization:
		return "serialization error"
	default:
		return "error"
	}
}

// Diagnostic is a single reported failure: a kind, a human-readable
// message, and a source span. It implements error. Diagnostics the
// parser converts from its own plain errors leave Subject as the zero
// Range; where such an error names a position, it is part of Summary.
type Diagnostic struct {
	Kind    Kind
	Summary string
	Detail  string
	Subject ast.Range
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Kind, d.Summary)
	if d.Detail != "" {
		fmt.Fprintf(&b, ": %s", d.Detail)
	}
	if d.Subject != (ast.Range{}) {
		fmt.Fprintf(&b, " (at %s)", d.Subject.String())
	}
	return b.String()
}

// New builds a Diagnostic with the given kind, summary and subject
// range.
func New(kind Kind, subject ast.Range, summaryFormat string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Summary: fmt.Sprintf(summaryFormat, args...), Subject: subject}
}

// Diagnostics is a collection of Diagnostic. The parser returns one
// holding a single Diagnostic, since it stops at the first error per
// spec §4.2.
type Diagnostics []*Diagnostic

func (ds Diagnostics) HasErrors() bool { return len(ds) > 0 }

func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "; ")
}

// Errs returns the Diagnostics as a []error, mirroring the shape
// hcl.Diagnostics.Errs() has in the teacher's actual dependency, for
// callers that want to pass them to errors.Join.
func (ds Diagnostics) Errs() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}

// Package ident implements the identifier primitive shared by the AST,
// evaluator and printer: a validated, immutable name matching HCL's
// identifier grammar.
package ident

import (
	"fmt"
)

// Ident is a validated HCL identifier. The zero value is not a valid
// Ident; always construct one via New or TryNew.
type Ident struct {
	name string
}

// TryNew validates s against the HCL identifier grammar (first character
// ASCII letter or '_', remaining characters ASCII letters, digits, '_' or
// '-') and returns an Ident, or an error describing why s is invalid.
func TryNew(s string) (Ident, error) {
	if s == "" {
		return Ident{}, fmt.Errorf("ident: empty string is not a valid identifier")
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return Ident{}, fmt.Errorf("ident: %q is not a valid identifier: invalid first character %q", s, r)
			}
			continue
		}
		if !isIdentCont(r) {
			return Ident{}, fmt.Errorf("ident: %q is not a valid identifier: invalid character %q at byte offset %d", s, r, i)
		}
	}
	return Ident{name: s}, nil
}

// New is like TryNew but panics if s is not a valid identifier. Use it
// for identifiers that are known to be valid at compile time (constants,
// literals produced by the parser after it has already validated them).
func New(s string) Ident {
	id, err := TryNew(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Valid reports whether s would be accepted by TryNew, without allocating
// an Ident.
func Valid(s string) bool {
	_, err := TryNew(s)
	return err == nil
}

// String returns the identifier text.
func (id Ident) String() string { return id.name }

// IsZero reports whether id is the zero value (never produced by TryNew
// or New).
func (id Ident) IsZero() bool { return id.name == "" }

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-'
}

// HasIdentSyntax reports whether s would be a syntactically valid bare
// identifier; the printer uses this to decide whether an object key or
// string can be emitted unquoted.
func HasIdentSyntax(s string) bool {
	return Valid(s)
}

// Package printer implements the printer/formatter (spec §4.5): it
// renders AST nodes (Body, Expression, Value) back to HCL source text.
package printer

// Config controls the printer's output style. The zero value is not
// meaningful; always obtain one via DefaultConfig.
type Config struct {
	// IndentWidth is the number of spaces used per nesting level.
	IndentWidth int
	// PreferIdentKeys emits unquoted identifier-valid object keys
	// instead of quoted string keys.
	PreferIdentKeys bool
	// CompactArrays makes PrintValue emit array Values as a single
	// `,`-separated line instead of one element per line. Tuple
	// expressions printed by PrintExpression/PrintBody are always
	// single-line, whatever this flag says.
	CompactArrays bool
	// CompactObjects makes PrintValue emit object Values as a single
	// `,`-separated line instead of one item per line. Object
	// expressions printed by PrintExpression/PrintBody are always
	// single-line, whatever this flag says.
	CompactObjects bool
	// StrictMode refuses to serialize identifiers that are not valid
	// per the grammar, returning an error instead of falling back to a
	// quoted string.
	StrictMode bool
	// UseHeredocForMultiline, when printing a Value (not an AST
	// Expression, which always preserves its own original form), emits
	// multi-line strings as a `<<-EOT ... EOT` heredoc instead of a
	// quoted string with escaped newlines.
	UseHeredocForMultiline bool
}

// DefaultConfig returns the printer's default style: 2-space indent,
// identifier keys preferred, non-compact collections, non-strict mode.
func DefaultConfig() Config {
	return Config{
		IndentWidth:     2,
		PreferIdentKeys: true,
	}
}

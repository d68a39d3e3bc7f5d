package ast

import "github.com/Yunsang-Jeong/hcl/ident"

// Expression is the interface satisfied by every expression AST node.
// Concrete types are the tagged variants described in spec §3; callers
// destructure via a type switch rather than reflection. This mirrors the
// real-world shape the teacher's schema package already type-switches
// over (LiteralValueExpr, TemplateExpr, ScopeTraversalExpr,
// ObjectConsExpr, TupleConsExpr, FunctionCallExpr, ConditionalExpr,
// BinaryOpExpr, UnaryOpExpr, ForExpr, ParenthesesExpr).
type Expression interface {
	Range() Range
	expressionNode()
}

// LiteralValueExpr is a literal Null, Bool, Number or (non-templated)
// String. Templated strings are never represented this way — see
// TemplateExpr.
type LiteralValueExpr struct {
	Val Value
	Rng Range
}

func (e *LiteralValueExpr) Range() Range { return e.Rng }
func (*LiteralValueExpr) expressionNode() {}

// TupleConsExpr constructs an array from element expressions, evaluated
// in order.
type TupleConsExpr struct {
	Exprs []Expression
	Rng   Range
}

func (e *TupleConsExpr) Range() Range { return e.Rng }
func (*TupleConsExpr) expressionNode() {}

// ObjectConsItem is one key/value pair in an ObjectConsExpr. KeyExpr may
// be any expression; a bare-identifier key is stored as a string
// LiteralValueExpr (it is a string key, not a variable reference) with
// IdentKey set, which the printer uses to write the key back unquoted.
type ObjectConsItem struct {
	KeyExpr   Expression
	ValueExpr Expression
	IdentKey  bool
}

// ObjectConsExpr constructs an object from key/value expression pairs.
type ObjectConsExpr struct {
	Items []ObjectConsItem
	Rng   Range
}

func (e *ObjectConsExpr) Range() Range { return e.Rng }
func (*ObjectConsExpr) expressionNode() {}

// TemplateExpr holds the raw, unparsed source text of a quoted string or
// heredoc template. Per spec §4.2 this split is deliberate: templates
// are usually evaluated wholesale, so structural parsing into a Template
// (package template) is deferred until evaluation or explicit request.
type TemplateExpr struct {
	Raw    string
	Quoted bool // true for "..."; false for heredoc
	Rng    Range
}

func (e *TemplateExpr) Range() Range { return e.Rng }
func (*TemplateExpr) expressionNode() {}

// VariableExpr is a bare variable reference.
type VariableExpr struct {
	Name ident.Ident
	Rng  Range
}

func (e *VariableExpr) Range() Range { return e.Rng }
func (*VariableExpr) expressionNode() {}

// TraverseOp is one step in a Traversal's operator chain.
type TraverseOp interface {
	Range() Range
	traverseOp()
}

// TraverseAttr accesses a named attribute: `.name`.
type TraverseAttr struct {
	Name ident.Ident
	Rng  Range
}

func (o TraverseAttr) Range() Range { return o.Rng }
func (TraverseAttr) traverseOp()    {}

// TraverseIndex accesses an element by an arbitrary expression:
// `[expr]`.
type TraverseIndex struct {
	Key Expression
	Rng Range
}

func (o TraverseIndex) Range() Range { return o.Rng }
func (TraverseIndex) traverseOp()    {}

// TraverseSplat is the full splat operator `[*]`.
type TraverseSplat struct {
	Rng Range
}

func (o TraverseSplat) Range() Range { return o.Rng }
func (TraverseSplat) traverseOp()    {}

// TraverseAttrSplat is the attribute splat operator `.*`.
type TraverseAttrSplat struct {
	Rng Range
}

func (o TraverseAttrSplat) Range() Range { return o.Rng }
func (TraverseAttrSplat) traverseOp()    {}

// TraverseLegacyIndex is the legacy numeric index `.N`, kept for
// backward compatibility per spec §3/§9.
type TraverseLegacyIndex struct {
	Index int64
	Rng   Range
}

func (o TraverseLegacyIndex) Range() Range { return o.Rng }
func (TraverseLegacyIndex) traverseOp()    {}

// TraversalExpr applies a chain of TraverseOps to a target expression.
type TraversalExpr struct {
	Target Expression
	Ops    []TraverseOp
	Rng    Range
}

func (e *TraversalExpr) Range() Range { return e.Rng }
func (*TraversalExpr) expressionNode() {}

// FunctionCallExpr invokes a named function. When ExpandFinal is true,
// the trailing `...` syntax was used and the last element of Args must
// evaluate to an array whose elements are spread as individual
// arguments.
type FunctionCallExpr struct {
	Name        ident.Ident
	Args        []Expression
	ExpandFinal bool
	Rng         Range
}

func (e *FunctionCallExpr) Range() Range { return e.Rng }
func (*FunctionCallExpr) expressionNode() {}

// ConditionalExpr is `cond ? trueExpr : falseExpr`.
type ConditionalExpr struct {
	Cond      Expression
	TrueExpr  Expression
	FalseExpr Expression
	Rng       Range
}

func (e *ConditionalExpr) Range() Range { return e.Rng }
func (*ConditionalExpr) expressionNode() {}

// UnaryOpExpr is a unary operator application (`!x`; `-x` when x is not
// itself a number literal, which instead folds into a negative
// LiteralValueExpr per spec §4.2).
type UnaryOpExpr struct {
	Op      Operator
	Operand Expression
	Rng     Range
}

func (e *UnaryOpExpr) Range() Range { return e.Rng }
func (*UnaryOpExpr) expressionNode() {}

// BinaryOpExpr is a binary operator application.
type BinaryOpExpr struct {
	LHS Expression
	Op  Operator
	RHS Expression
	Rng Range
}

func (e *BinaryOpExpr) Range() Range { return e.Rng }
func (*BinaryOpExpr) expressionNode() {}

// ForExpr is a for-expression. It is the object form when KeyExpr is
// non-nil, the tuple form otherwise. Grouping (trailing `...`) only
// applies to the object form.
type ForExpr struct {
	KeyVar     *ident.Ident
	ValVar     ident.Ident
	Collection Expression
	KeyExpr    Expression // nil for tuple form
	ValExpr    Expression
	CondExpr   Expression // nil when there is no `if` clause
	Grouping   bool
	Rng        Range
}

func (e *ForExpr) Range() Range { return e.Rng }
func (*ForExpr) expressionNode() {}

// ParenthesesExpr preserves explicit parenthesization. It is not elided
// during parsing because it is load-bearing for the template
// interpolation-unwrap rule (spec §4.4, §9): `"${(x)}"` always yields a
// string, while `"${x}"` may yield x's raw value.
type ParenthesesExpr struct {
	Inner Expression
	Rng   Range
}

func (e *ParenthesesExpr) Range() Range { return e.Rng }
func (*ParenthesesExpr) expressionNode() {}

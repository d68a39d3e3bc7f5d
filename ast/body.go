package ast

import "github.com/Yunsang-Jeong/hcl/ident"

// Structure is the interface satisfied by Attribute and Block, the two
// kinds of entry a Body may contain.
type Structure interface {
	Range() Range
	structureNode()
}

// Attribute is a `name = expr` assignment within a Body.
type Attribute struct {
	Name  ident.Ident
	Value Expression
	Rng   Range
}

func (a *Attribute) Range() Range  { return a.Rng }
func (*Attribute) structureNode() {}

// BlockLabel is either a bare identifier or a quoted string label on a
// Block.
type BlockLabel struct {
	Value    string
	IsQuoted bool
	Rng      Range
}

// Block is a named, labeled container carrying a nested Body.
type Block struct {
	Type      ident.Ident
	Labels    []BlockLabel
	Body      *Body
	Rng       Range
	// OneLine records whether the block was written (or is to be
	// printed, when constructed programmatically) as `type "label" { k = v }`
	// on a single source line. The printer treats this as a formatting
	// hint, not a semantic property.
	OneLine bool
}

func (b *Block) Range() Range  { return b.Rng }
func (*Block) structureNode() {}

// LabelValues returns the block's labels as plain strings, in order.
func (b *Block) LabelValues() []string {
	vals := make([]string, len(b.Labels))
	for i, l := range b.Labels {
		vals[i] = l.Value
	}
	return vals
}

// Body is an ordered sequence of Attributes and Blocks. Per spec §3,
// attribute keys are unique within a single Body; the parser enforces
// this at parse time, so a Body built by the parser never violates it.
// Bodies built programmatically are not re-validated here.
type Body struct {
	Structures []Structure
	Rng        Range
}

// Attributes returns the Body's direct Attribute children, in order.
func (b *Body) Attributes() []*Attribute {
	var out []*Attribute
	for _, s := range b.Structures {
		if a, ok := s.(*Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Blocks returns the Body's direct Block children, in order.
func (b *Body) Blocks() []*Block {
	var out []*Block
	for _, s := range b.Structures {
		if blk, ok := s.(*Block); ok {
			out = append(out, blk)
		}
	}
	return out
}

// Attribute looks up a direct attribute by name, returning nil if absent.
func (b *Body) Attribute(name string) *Attribute {
	for _, a := range b.Attributes() {
		if a.Name.String() == name {
			return a
		}
	}
	return nil
}

// BlocksOfType returns the direct Block children whose Type matches
// typeName, in order.
func (b *Body) BlocksOfType(typeName string) []*Block {
	var out []*Block
	for _, blk := range b.Blocks() {
		if blk.Type.String() == typeName {
			out = append(out, blk)
		}
	}
	return out
}

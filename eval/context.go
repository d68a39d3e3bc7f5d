// Package eval implements the expression/template evaluator (spec §4.4):
// it reduces an ast.Expression or ast.Template to an ast.Value against a
// Context, the lexically nested scope of variables and functions.
package eval

import "github.com/Yunsang-Jeong/hcl/ast"

// Context is a lexically nested evaluation scope: a mapping from
// variable name to ast.Value, a mapping from function name to a
// callable descriptor, and an optional parent. Lookups walk parents.
// Contexts are immutable from the evaluator's perspective — callers (and
// ForExpr/For directive iteration) extend scope by creating a child via
// NewChild rather than mutating a shared one.
type Context struct {
	parent    *Context
	variables map[string]ast.Value
	functions map[string]*Function
}

// NewContext returns a new root context with no parent, variables or
// functions.
func NewContext() *Context {
	return &Context{}
}

// NewChild returns a child of c. Lookups on the child consult its own
// bindings first, then fall back to c.
func (c *Context) NewChild() *Context {
	return &Context{parent: c}
}

// SetVariable binds name to v in c directly (not in any child or
// parent).
func (c *Context) SetVariable(name string, v ast.Value) {
	if c.variables == nil {
		c.variables = make(map[string]ast.Value)
	}
	c.variables[name] = v
}

// Variable looks up name, walking from c up through its ancestors.
func (c *Context) Variable(name string) (ast.Value, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.variables != nil {
			if v, ok := cur.variables[name]; ok {
				return v, true
			}
		}
	}
	return ast.Value{}, false
}

// SetFunction binds name to fn in c directly.
func (c *Context) SetFunction(name string, fn *Function) {
	if c.functions == nil {
		c.functions = make(map[string]*Function)
	}
	c.functions[name] = fn
}

// Function looks up name, walking from c up through its ancestors.
func (c *Context) Function(name string) (*Function, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.functions != nil {
			if fn, ok := cur.functions[name]; ok {
				return fn, true
			}
		}
	}
	return nil, false
}

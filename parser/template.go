package parser

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
	"github.com/Yunsang-Jeong/hcl/token"
)

// ParseTemplate performs the on-demand structural parse of a
// TemplateExpr's raw text into an *ast.Template: literals, `${...}`
// interpolations and `%{if}`/`%{for}` directives, with `~`
// whitespace-strip markers recorded per element (spec §4.1 "Template
// sub-lexer", §4.3 "Templates").
func ParseTemplate(raw string, baseRng ast.Range) (*ast.Template, diag.Diagnostics) {
	tp := &templateParser{c: newCursor(baseRng.Filename, []byte(raw)), filename: baseRng.Filename}
	elems, err := tp.parseElements(false, false)
	if err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	return &ast.Template{Elements: elems, Rng: baseRng}, nil
}

type templateParser struct {
	c        *cursor
	filename string
}

// parseElements parses literal/interpolation/directive elements until
// EOF, or (when inIf/inFor is set) until it recognizes the matching
// `%{else}`/`%{endif}`/`%{endfor}` marker, which it leaves unconsumed.
func (tp *templateParser) parseElements(inIf, inFor bool) ([]ast.Element, error) {
	var elems []ast.Element
	var lit []byte
	litStart := tp.c.pos()

	flushLiteral := func() {
		if len(lit) > 0 {
			elems = append(elems, &ast.Literal{Value: string(lit), Rng: tp.c.rangeFrom(litStart)})
			lit = nil
		}
	}

	for {
		if tp.c.eof() {
			flushLiteral()
			return elems, nil
		}
		if (inIf || inFor) && tp.atDirectiveKeyword("else", "endif", "endfor") {
			flushLiteral()
			return elems, nil
		}
		b := tp.c.peek()
		if b == '$' && tp.c.peekAt(1) == '{' {
			flushLiteral()
			elem, err := tp.parseInterpolation()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			litStart = tp.c.pos()
			continue
		}
		if b == '%' && tp.c.peekAt(1) == '{' {
			flushLiteral()
			elem, err := tp.parseDirective()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			litStart = tp.c.pos()
			continue
		}
		if b == '$' && tp.c.peekAt(1) == '$' {
			lit = append(lit, '$')
			tp.c.advance()
			tp.c.advance()
			continue
		}
		if b == '%' && tp.c.peekAt(1) == '%' {
			lit = append(lit, '%')
			tp.c.advance()
			tp.c.advance()
			continue
		}
		lit = append(lit, tp.c.advance())
	}
}

// atDirectiveKeyword reports whether the cursor is positioned at
// `%{[~]KW` for one of kws, without consuming anything.
func (tp *templateParser) atDirectiveKeyword(kws ...string) bool {
	if tp.c.peek() != '%' || tp.c.peekAt(1) != '{' {
		return false
	}
	off := tp.c.off + 2
	if off < len(tp.c.src) && tp.c.src[off] == '~' {
		off++
	}
	for off < len(tp.c.src) && (tp.c.src[off] == ' ' || tp.c.src[off] == '\t') {
		off++
	}
	for _, kw := range kws {
		if off+len(kw) <= len(tp.c.src) && string(tp.c.src[off:off+len(kw)]) == kw {
			return true
		}
	}
	return false
}

func (tp *templateParser) parseInterpolation() (ast.Element, error) {
	start := tp.c.pos()
	tp.c.advance() // $
	tp.c.advance() // {
	strip := ast.StripMode{}
	if tp.c.peek() == '~' {
		strip.Left = true
		tp.c.advance()
	}
	exprSrc, closeStrip, err := tp.captureExprBody()
	if err != nil {
		return nil, err
	}
	strip.Right = closeStrip
	expr, diags := ParseExpression(exprSrc, tp.filename)
	if diags.HasErrors() {
		return nil, diags[0]
	}
	return &ast.Interpolation{Expr: expr, Strip: strip, Rng: tp.c.rangeFrom(start)}, nil
}

// captureExprBody consumes bytes up to (and including) the matching '}'
// of an interpolation/directive body, tracking brace depth and nested
// quoted strings the same way rawscan.go's skipInterpolationBody does,
// and returns the raw expression source (trimmed of a trailing "~")
// plus whether a right-strip marker preceded the closing brace.
func (tp *templateParser) captureExprBody() ([]byte, bool, error) {
	start := tp.c.off
	depth := 1
	for depth > 0 {
		if tp.c.eof() {
			return nil, false, fmt.Errorf("unclosed interpolation or directive")
		}
		switch tp.c.peek() {
		case '"':
			tp.c.advance()
			if _, err := tp.c.scanQuotedRaw(); err != nil {
				return nil, false, err
			}
		case '{':
			depth++
			tp.c.advance()
		case '}':
			depth--
			if depth == 0 {
				end := tp.c.off
				tp.c.advance()
				body := tp.c.src[start:end]
				strip := false
				if len(body) > 0 && body[len(body)-1] == '~' {
					strip = true
					body = body[:len(body)-1]
				}
				return body, strip, nil
			}
			tp.c.advance()
		default:
			tp.c.advance()
		}
	}
	return nil, false, fmt.Errorf("unclosed interpolation or directive")
}

func (tp *templateParser) parseDirective() (ast.Element, error) {
	if tp.atDirectiveKeyword("if") {
		return tp.parseIfDirective()
	}
	if tp.atDirectiveKeyword("for") {
		return tp.parseForDirective()
	}
	return nil, fmt.Errorf("unexpected directive at %s", tp.c.rangeFrom(tp.c.pos()))
}

func (tp *templateParser) parseIfDirective() (ast.Element, error) {
	start := tp.c.pos()
	openStrip, cond, err := tp.parseDirectiveHeader("if")
	if err != nil {
		return nil, err
	}

	trueElems, err := tp.parseElements(true, false)
	if err != nil {
		return nil, err
	}
	trueTpl := &ast.Template{Elements: trueElems}

	var falseTpl *ast.Template
	var elseStrip ast.StripMode
	if tp.atDirectiveKeyword("else") {
		var err error
		elseStrip, _, err = tp.parseDirectiveHeader("else")
		if err != nil {
			return nil, err
		}
		falseElems, err := tp.parseElements(true, false)
		if err != nil {
			return nil, err
		}
		falseTpl = &ast.Template{Elements: falseElems}
	}

	if !tp.atDirectiveKeyword("endif") {
		return nil, fmt.Errorf("expected %%{endif} at %s", tp.c.rangeFrom(tp.c.pos()))
	}
	endStrip, _, err := tp.parseDirectiveHeader("endif")
	if err != nil {
		return nil, err
	}

	return &ast.IfDirective{
		Cond: cond, True: trueTpl, False: falseTpl,
		StripIfOpen: openStrip, StripElse: elseStrip, StripEndif: endStrip,
		Rng: tp.c.rangeFrom(start),
	}, nil
}

func (tp *templateParser) parseForDirective() (ast.Element, error) {
	start := tp.c.pos()
	openStrip, header, err := tp.parseForHeader()
	if err != nil {
		return nil, err
	}

	bodyElems, err := tp.parseElements(false, true)
	if err != nil {
		return nil, err
	}
	body := &ast.Template{Elements: bodyElems}

	if !tp.atDirectiveKeyword("endfor") {
		return nil, fmt.Errorf("expected %%{endfor} at %s", tp.c.rangeFrom(tp.c.pos()))
	}
	endStrip, _, err := tp.parseDirectiveHeader("endfor")
	if err != nil {
		return nil, err
	}

	return &ast.ForDirective{
		KeyVar: header.keyVar, ValVar: header.valVar, Collection: header.collection,
		Body: body, StripForOpen: openStrip, StripEndfor: endStrip,
		Rng: tp.c.rangeFrom(start),
	}, nil
}

// parseDirectiveHeader consumes "%{[~]KEYWORD <expr>? [~]}" and returns
// its strip mode and the parsed expression (nil for keywords with no
// expression, i.e. else/endif/endfor).
func (tp *templateParser) parseDirectiveHeader(kw string) (ast.StripMode, ast.Expression, error) {
	strip := ast.StripMode{}
	tp.c.advance() // %
	tp.c.advance() // {
	if tp.c.peek() == '~' {
		strip.Left = true
		tp.c.advance()
	}
	tp.skipHSpace()
	for _, want := range []byte(kw) {
		if tp.c.peek() != want {
			return strip, nil, fmt.Errorf("malformed directive keyword at %s", tp.c.rangeFrom(tp.c.pos()))
		}
		tp.c.advance()
	}
	tp.skipHSpace()
	body, rightStrip, err := tp.captureExprBody()
	if err != nil {
		return strip, nil, err
	}
	strip.Right = rightStrip
	exprSrc := body
	if len(exprSrc) == 0 {
		return strip, nil, nil
	}
	expr, diags := ParseExpression(exprSrc, tp.filename)
	if diags.HasErrors() {
		return strip, nil, diags[0]
	}
	return strip, expr, nil
}

type forHeader struct {
	keyVar     *string
	valVar     string
	collection ast.Expression
}

// parseForHeader parses "%{[~] for [k,] v in <collection> [~]}".
func (tp *templateParser) parseForHeader() (ast.StripMode, forHeader, error) {
	strip := ast.StripMode{}
	tp.c.advance() // %
	tp.c.advance() // {
	if tp.c.peek() == '~' {
		strip.Left = true
		tp.c.advance()
	}
	tp.skipHSpace()
	for _, want := range []byte("for") {
		if tp.c.peek() != want {
			return strip, forHeader{}, fmt.Errorf("malformed for directive at %s", tp.c.rangeFrom(tp.c.pos()))
		}
		tp.c.advance()
	}
	tp.skipHSpace()
	body, rightStrip, err := tp.captureExprBody()
	if err != nil {
		return strip, forHeader{}, err
	}
	strip.Right = rightStrip

	p := newParser(tp.filename, body)
	first, err := p.expect(token.Ident)
	if err != nil {
		return strip, forHeader{}, err
	}
	var keyVar *string
	valVar := string(first.Bytes)
	nt, err := p.peek()
	if err != nil {
		return strip, forHeader{}, err
	}
	if nt.Type == token.Comma {
		if _, err := p.advance(); err != nil {
			return strip, forHeader{}, err
		}
		second, err := p.expect(token.Ident)
		if err != nil {
			return strip, forHeader{}, err
		}
		k := valVar
		keyVar = &k
		valVar = string(second.Bytes)
	}
	if err := p.expectKeyword("in"); err != nil {
		return strip, forHeader{}, err
	}
	collection, err := p.parseExpression()
	if err != nil {
		return strip, forHeader{}, err
	}
	return strip, forHeader{keyVar: keyVar, valVar: valVar, collection: collection}, nil
}

func (tp *templateParser) skipHSpace() {
	for !tp.c.eof() && (tp.c.peek() == ' ' || tp.c.peek() == '\t') {
		tp.c.advance()
	}
}

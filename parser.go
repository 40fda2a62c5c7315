package xexpr

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxParseDepth bounds recursion through nested sub-expressions and unary
// operator chains, since input-driven recursion depth is otherwise unbounded.
const maxParseDepth = 100

// Parser consumes a lexed token sequence through an integer cursor and
// produces a single expression tree. A Parser is single-use and not safe for
// concurrent use; parsing holds no state beyond the token sequence and the
// cursor.
type Parser struct {
	src             string
	allowRelational bool

	tokens       []Token
	pos          int
	endPos       int
	depth        int
	placeholders []string
}

// NewParser returns a parser for the given expression string. When
// allowRelationalColumns is true, bare identifiers parse as SQL column
// references (schema.table.col); otherwise they parse as JSON document
// fields.
func NewParser(expr string, allowRelationalColumns bool) *Parser {
	return &Parser{src: expr, allowRelational: allowRelationalColumns}
}

// Parse is a convenience for NewParser(expr, allowRelationalColumns).Parse().
func Parse(expr string, allowRelationalColumns bool) (Expr, error) {
	return NewParser(expr, allowRelationalColumns).Parse()
}

// Parse lexes the source and parses one complete expression. Any token left
// over after the expression is an error.
func (p *Parser) Parse() (Expr, error) {
	tokens, err := NewLexer(p.src).Lex()
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.pos = 0
	p.endPos = utf8.RuneCountInString(p.src)
	p.depth = 0
	p.placeholders = nil

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		t := p.cur()
		return nil, errPos(t.Pos, "unexpected %s after expression", t.Type)
	}
	return expr, nil
}

// Placeholders returns the bind-parameter names in position order, one entry
// per placeholder encountered. Positional "?" placeholders have an empty
// name.
func (p *Parser) Placeholders() []string {
	return p.placeholders
}

// parseExpr is the entry rule for a full expression (and for parenthesized
// sub-expressions and list elements).
func (p *Parser) parseExpr() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	return p.parseBinary(p.parseXor, OR)
}

func (p *Parser) parseXor() (Expr, error) {
	return p.parseBinary(p.parseAnd, XOR)
}

func (p *Parser) parseAnd() (Expr, error) {
	return p.parseBinary(p.parseIlri, AND)
}

func (p *Parser) parseComp() (Expr, error) {
	return p.parseBinary(p.parseBit, GE, GT, LE, LT, EQ, NE)
}

func (p *Parser) parseBit() (Expr, error) {
	return p.parseBinary(p.parseShift, BITAND, BITOR, BITXOR)
}

func (p *Parser) parseShift() (Expr, error) {
	return p.parseBinary(p.parseAddSub, LSHIFT, RSHIFT)
}

func (p *Parser) parseAddSub() (Expr, error) {
	return p.parseBinary(p.parseMulDiv, PLUS, MINUS)
}

func (p *Parser) parseMulDiv() (Expr, error) {
	return p.parseBinary(p.parseAtomic, MUL, DIV, MOD)
}

// parseBinary parses one left-associative precedence level: an operand
// followed by zero or more (operator, operand) pairs drawn from kinds.
func (p *Parser) parseBinary(operand func() (Expr, error), kinds ...TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.curIsAny(kinds...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Operator{Name: op.Text, Params: []Expr{left, right}}
	}
	return left, nil
}

// parseIlri parses a comparison followed by an optional, possibly negated
// IS / IN / LIKE / BETWEEN / REGEXP predicate. Negation wraps the built
// predicate node in Operator("NOT").
func (p *Parser) parseIlri() (Expr, error) {
	left, err := p.parseComp()
	if err != nil {
		return nil, err
	}

	negate := false
	if p.curIs(NOT) {
		p.advance()
		negate = true
	}

	var node Expr
	switch {
	case p.curIs(IS):
		p.advance()
		isNot := false
		if p.curIs(NOT) {
			p.advance()
			isNot = true
		}
		right, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		node = &Operator{Name: "IS", Params: []Expr{left, right}}
		if isNot {
			node = &Operator{Name: "NOT", Params: []Expr{node}}
		}

	case p.curIs(IN):
		p.advance()
		list, err := p.parseParenExprList()
		if err != nil {
			return nil, err
		}
		node = &Operator{Name: "IN", Params: append([]Expr{left}, list...)}

	case p.curIs(LIKE):
		p.advance()
		pattern, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		params := []Expr{left, pattern}
		if p.curIs(ESCAPE) {
			p.advance()
			escape, err := p.parseComp()
			if err != nil {
				return nil, err
			}
			params = append(params, escape)
		}
		node = &Operator{Name: "LIKE", Params: params}

	case p.curIs(BETWEEN):
		p.advance()
		low, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(AND); err != nil {
			return nil, err
		}
		high, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		node = &Operator{Name: "BETWEEN", Params: []Expr{left, low, high}}

	case p.curIs(REGEXP):
		p.advance()
		pattern, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		node = &Operator{Name: "REGEXP", Params: []Expr{left, pattern}}

	default:
		if negate {
			return nil, errPos(p.curPos(), "expected IS, IN, LIKE, BETWEEN, or REGEXP after NOT")
		}
		return left, nil
	}

	if negate {
		node = &Operator{Name: "NOT", Params: []Expr{node}}
	}
	return node, nil
}

// parseAtomic is the leaf-level dispatcher.
func (p *Parser) parseAtomic() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.eof() {
		return nil, errPos(p.endPos, "expected expression, ran out of tokens")
	}
	t := p.advance()

	switch t.Type {
	case PLACEHOLDER:
		return p.newPlaceholder(""), nil

	case COLON:
		name, err := p.consume(IDENT)
		if err != nil {
			return nil, err
		}
		return p.newPlaceholder(name.Text), nil

	case DOLLAR:
		name, err := p.consume(IDENT)
		if err != nil {
			return nil, err
		}
		return &Variable{Name: name.Text}, nil

	case LPAREN:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case PLUS, MINUS:
		// A sign immediately before a numeric literal folds into it,
		// producing a signed literal rather than a unary operator node.
		if p.curIs(LNUM) {
			num := p.advance()
			return p.numericLiteral(t.Text+num.Text, t.Pos)
		}
		return p.parseUnary(t)

	case NOT, NEG:
		return p.parseUnary(t)

	case LSTRING:
		return &Literal{Value: String(t.Text)}, nil

	case NULL:
		return &Literal{Value: Null{}}, nil

	case LNUM:
		return p.numericLiteral(t.Text, t.Pos)

	case TRUE:
		return &Literal{Value: Bool(true)}, nil

	case FALSE:
		return &Literal{Value: Bool(false)}, nil

	case INTERVAL:
		return p.parseInterval()

	case HEX, BIN:
		// hex() and bin() stay callable even though the words are reserved.
		if p.curIs(LPAREN) {
			return p.parseFunctionCall(FuncIdent{Name: t.Text})
		}

	case IDENT:
		p.pos-- // identifiers dispatch on further lookahead
		return p.parseIdent()
	}
	return nil, errPos(t.Pos, "unexpected %s when expecting atomic expression", t.Type)
}

func (p *Parser) parseUnary(op Token) (Expr, error) {
	operand, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}
	return &Operator{Name: op.Text, Params: []Expr{operand}}, nil
}

// numericLiteral builds an integer or double literal from raw token text. The
// lexer consumes any run of digits and dots, so malformed multi-dot text is
// rejected here.
func (p *Parser) numericLiteral(text string, pos int) (Expr, error) {
	if strings.ContainsRune(text, '.') {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errPos(pos, "invalid numeric literal %q", text)
		}
		return &Literal{Value: Double(f)}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, errPos(pos, "invalid numeric literal %q", text)
	}
	return &Literal{Value: Int(n)}, nil
}

// parseInterval parses the quantity and unit after an INTERVAL token. The
// unit is stored as a string literal carrying the uppercased unit word.
func (p *Parser) parseInterval() (Expr, error) {
	quantity, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	if p.eof() || !intervalUnits[p.cur().Type] {
		return nil, errPos(p.curPos(), "expected interval unit")
	}
	unit := p.advance()
	return &Operator{
		Name:   "INTERVAL",
		Params: []Expr{quantity, &Literal{Value: String(unit.Text)}},
	}, nil
}

// parseIdent dispatches an identifier to a function call, a relational column
// reference, or a document field, depending on lookahead and parser mode.
func (p *Parser) parseIdent() (Expr, error) {
	if p.tokenIs(1, LPAREN) ||
		(p.tokenIs(1, DOT) && p.tokenIs(2, IDENT) && p.tokenIs(3, LPAREN)) {
		return p.parseFunction()
	}
	if p.allowRelational {
		return p.parseColumnIdent()
	}
	return p.parseDocumentField()
}

func (p *Parser) parseFunction() (Expr, error) {
	first, err := p.consume(IDENT)
	if err != nil {
		return nil, err
	}
	name := FuncIdent{Name: first.Text}
	if p.curIs(DOT) {
		p.advance()
		second, err := p.consume(IDENT)
		if err != nil {
			return nil, err
		}
		name = FuncIdent{Schema: first.Text, Name: second.Text}
	}
	return p.parseFunctionCall(name)
}

func (p *Parser) parseFunctionCall(name FuncIdent) (Expr, error) {
	params, err := p.parseParenExprList()
	if err != nil {
		return nil, err
	}
	return &FunctionCall{Name: name, Params: params}, nil
}

// parseColumnIdent parses up to three dot-separated name parts, nearest part
// last, then an optional document-path suffix anchored by $ or @.
func (p *Parser) parseColumnIdent() (Expr, error) {
	first, err := p.consume(IDENT)
	if err != nil {
		return nil, err
	}
	parts := []string{first.Text}
	for p.curIs(DOT) {
		p.advance()
		next, err := p.consume(IDENT)
		if err != nil {
			return nil, err
		}
		parts = append(parts, next.Text)
		if len(parts) > 3 {
			return nil, errPos(next.Pos, "too many parts to identifier")
		}
	}

	// Parsed left to right, but the part nearest the value is the name.
	col := &ColumnIdent{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		col.Table = parts[len(parts)-2]
	}
	if len(parts) > 2 {
		col.Schema = parts[len(parts)-3]
	}

	if p.curIs(DOLLAR) {
		p.advance()
		path, err := p.parseDocumentPath()
		if err != nil {
			return nil, err
		}
		col.Path = path
	}
	return col, nil
}

// parseDocumentField parses a field reference in document mode. An identifier
// followed by a path anchor names the member the path starts at; a bare
// identifier is itself the first path member.
func (p *Parser) parseDocumentField() (Expr, error) {
	first, err := p.consume(IDENT)
	if err != nil {
		return nil, err
	}
	if p.curIs(DOLLAR) {
		p.advance()
		path, err := p.parseDocumentPath()
		if err != nil {
			return nil, err
		}
		return &DocumentField{Name: first.Text, Path: path}, nil
	}
	steps, err := p.parsePathSteps()
	if err != nil {
		return nil, err
	}
	return &DocumentField{Path: append(DocumentPath{Member(first.Text)}, steps...)}, nil
}

// parseDocumentPath parses a non-empty document path after its anchor.
func (p *Parser) parseDocumentPath() (DocumentPath, error) {
	path, err := p.parsePathSteps()
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, errPos(p.curPos(), "expected document path")
	}
	return path, nil
}

// parsePathSteps parses zero or more document-path steps. A path may not end
// with a recursive-descent wildcard.
func (p *Parser) parsePathSteps() (DocumentPath, error) {
	var path DocumentPath
	for {
		switch {
		case p.curIs(DOT):
			dot := p.advance()
			if p.eof() {
				return nil, errPos(dot.Pos, "expected member name after '.' in document path")
			}
			t := p.advance()
			switch t.Type {
			case IDENT:
				path = append(path, Member(t.Text))
			case LSTRING:
				path = append(path, QuotedMember(t.Text))
			case MUL:
				path = append(path, MemberWildcard{})
			default:
				return nil, errPos(t.Pos, "expected identifier, string, or * in document path, got %s", t.Type)
			}

		case p.curIs(LSQBRACKET):
			p.advance()
			seg, err := p.parseArrayStep()
			if err != nil {
				return nil, err
			}
			path = append(path, seg)

		case p.curIs(DOUBLESTAR):
			p.advance()
			path = append(path, RecursiveDescent{})

		default:
			if len(path) > 0 {
				if _, ok := path[len(path)-1].(RecursiveDescent); ok {
					return nil, errPos(p.curPos(), "document path may not end with **")
				}
			}
			return path, nil
		}
	}
}

// parseArrayStep parses the inside of a [...] path step, bracket included.
func (p *Parser) parseArrayStep() (PathSegment, error) {
	switch {
	case p.curIs(MUL):
		p.advance()
		if _, err := p.consume(RSQBRACKET); err != nil {
			return nil, err
		}
		return ArrayWildcard{}, nil

	case p.curIs(MINUS):
		return nil, errPos(p.curPos(), "array index may not be negative")

	case p.curIs(LNUM):
		t := p.advance()
		n, err := strconv.Atoi(t.Text)
		if err != nil {
			return nil, errPos(t.Pos, "invalid array index %q", t.Text)
		}
		if _, err := p.consume(RSQBRACKET); err != nil {
			return nil, err
		}
		return ArrayIndex(n), nil
	}
	return nil, errPos(p.curPos(), "expected array index or * in document path")
}

// parseParenExprList parses a parenthesized, comma-separated expression list.
// An empty list is legal only when the parens close immediately.
func (p *Parser) parseParenExprList() ([]Expr, error) {
	if _, err := p.consume(LPAREN); err != nil {
		return nil, err
	}
	if p.curIs(RPAREN) {
		p.advance()
		return nil, nil
	}
	var list []Expr
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.curIs(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.consume(RPAREN); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) newPlaceholder(name string) *Placeholder {
	pos := len(p.placeholders)
	p.placeholders = append(p.placeholders, name)
	return &Placeholder{Position: pos, Name: name}
}

// --- cursor primitives ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.tokens)
}

// cur returns the token at the cursor. Callers must check eof first.
func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

// curPos is the source position of the cursor, or end of input.
func (p *Parser) curPos() int {
	if p.eof() {
		return p.endPos
	}
	return p.cur().Pos
}

func (p *Parser) curIs(typ TokenType) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Type == typ
}

func (p *Parser) curIsAny(kinds ...TokenType) bool {
	if p.eof() {
		return false
	}
	for _, k := range kinds {
		if p.tokens[p.pos].Type == k {
			return true
		}
	}
	return false
}

// tokenIs reports whether the token at cursor+offset has the given type.
func (p *Parser) tokenIs(offset int, typ TokenType) bool {
	i := p.pos + offset
	return i < len(p.tokens) && p.tokens[i].Type == typ
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// consume advances past a token of the given type or fails with a positional
// error.
func (p *Parser) consume(typ TokenType) (Token, error) {
	if p.eof() {
		return Token{}, errPos(p.endPos, "expected %s, ran out of tokens", typ)
	}
	t := p.tokens[p.pos]
	if t.Type != typ {
		return Token{}, errPos(t.Pos, "expected %s but got %s", typ, t.Type)
	}
	p.pos++
	return t, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxParseDepth {
		return errPos(p.curPos(), "expression too deeply nested")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

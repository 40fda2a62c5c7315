package xexpr

import (
	"strings"
	"unicode"
)

// Lexer is a single-pass scanner over an expression string. It uses one rune
// of lookahead throughout.
type Lexer struct {
	src []rune
	pos int
}

// NewLexer returns a new instance of Lexer.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Lex scans the whole input and returns the ordered token sequence. Every
// non-whitespace rune is consumed into exactly one token or causes an error.
// Empty input yields an empty sequence.
func (l *Lexer) Lex() ([]Token, error) {
	var tokens []Token
	for {
		l.skipSpace()
		if l.eof() {
			return tokens, nil
		}
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) scan() (Token, error) {
	ch := l.src[l.pos]

	switch {
	case isDigit(ch):
		return l.scanNumber(), nil
	case ch == '.' && isDigit(l.peek()):
		// .5-style float, the leading dot is part of the literal
		return l.scanNumber(), nil
	case isLetter(ch) || ch == '_':
		return l.scanWord(), nil
	case ch == '"' || ch == '\'' || ch == '`':
		return l.scanQuoted()
	}
	return l.scanSymbol()
}

// scanNumber consumes a maximal run of digits and dots. Validating that the
// text forms a single well-formed numeric literal is deferred to the parser's
// literal construction.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	for !l.eof() && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	return Token{Type: LNUM, Text: string(l.src[start:l.pos]), Pos: start}
}

func (l *Lexer) scanWord() Token {
	start := l.pos
	for !l.eof() && isWordRune(l.src[l.pos]) {
		l.pos++
	}
	word := string(l.src[start:l.pos])
	if typ, ok := reservedWords[strings.ToLower(word)]; ok {
		// Keyword token text is uppercased; downstream consumers match
		// operator names against the uppercase spelling.
		return Token{Type: typ, Text: strings.ToUpper(word), Pos: start}
	}
	return Token{Type: IDENT, Text: word, Pos: start}
}

// scanQuoted scans a quoted literal. The opening rune is the terminator; a
// doubled terminator or a backslash-escaped rune is kept verbatim. Backtick
// quoting produces an IDENT, single and double quoting produce an LSTRING.
func (l *Lexer) scanQuoted() (Token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++

	var text strings.Builder
	for {
		if l.eof() {
			return Token{}, errPos(start, "unterminated quoted string")
		}
		ch := l.src[l.pos]
		switch {
		case ch == quote && l.peek() == quote:
			text.WriteRune(quote)
			l.pos += 2
		case ch == quote:
			l.pos++
			typ := LSTRING
			if quote == '`' {
				typ = IDENT
			}
			return Token{Type: typ, Text: text.String(), Pos: start}, nil
		case ch == '\\':
			l.pos++
			if l.eof() {
				return Token{}, errPos(start, "unterminated quoted string")
			}
			text.WriteRune(l.src[l.pos])
			l.pos++
		default:
			text.WriteRune(ch)
			l.pos++
		}
	}
}

// scanSymbol recognizes punctuation, checking two-rune operators before their
// one-rune prefixes. Token text is the canonical symbol, so = and == both
// yield EQ with text "==".
func (l *Lexer) scanSymbol() (Token, error) {
	start := l.pos
	ch := l.src[l.pos]
	l.pos++

	emit := func(typ TokenType) (Token, error) {
		return Token{Type: typ, Text: tokenNames[typ], Pos: start}, nil
	}
	emit2 := func(typ TokenType) (Token, error) {
		l.pos++
		return Token{Type: typ, Text: tokenNames[typ], Pos: start}, nil
	}

	switch ch {
	case '=':
		if l.cur() == '=' {
			return emit2(EQ)
		}
		return emit(EQ)
	case '!':
		if l.cur() == '=' {
			return emit2(NE)
		}
		return emit(BANG)
	case '<':
		if l.cur() == '=' {
			return emit2(LE)
		}
		if l.cur() == '<' {
			return emit2(LSHIFT)
		}
		return emit(LT)
	case '>':
		if l.cur() == '=' {
			return emit2(GE)
		}
		if l.cur() == '>' {
			return emit2(RSHIFT)
		}
		return emit(GT)
	case '*':
		if l.cur() == '*' {
			return emit2(DOUBLESTAR)
		}
		return emit(MUL)
	case '.':
		return emit(DOT)
	case '+':
		return emit(PLUS)
	case '-':
		return emit(MINUS)
	case '/':
		return emit(DIV)
	case '%':
		return emit(MOD)
	case '&':
		return emit(BITAND)
	case '|':
		return emit(BITOR)
	case '^':
		return emit(BITXOR)
	case '(':
		return emit(LPAREN)
	case ')':
		return emit(RPAREN)
	case '[':
		return emit(LSQBRACKET)
	case ']':
		return emit(RSQBRACKET)
	case '~':
		return emit(NEG)
	case ',':
		return emit(COMMA)
	case ':':
		return emit(COLON)
	case '$', '@':
		// Both spellings anchor variables and document paths.
		return emit(DOLLAR)
	case '?':
		return emit(PLACEHOLDER)
	}
	return Token{}, errPos(start, "unknown character %q", string(ch))
}

func (l *Lexer) skipSpace() {
	for !l.eof() && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// cur returns the rune at the cursor, or 0 at end of input.
func (l *Lexer) cur() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

// peek returns the rune one past the cursor, or 0 at end of input.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isWordRune(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

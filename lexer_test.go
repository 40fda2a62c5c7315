package xexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewLexer(src).Lex()
	require.NoError(t, err, "lex %q", src)
	return tokens
}

func TestLexBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "idents and comparison",
			input: "age >= 25",
			want: []Token{
				{IDENT, "age", 0},
				{GE, ">=", 4},
				{LNUM, "25", 7},
			},
		},
		{
			name:  "keywords uppercase their text",
			input: "a aNd b",
			want: []Token{
				{IDENT, "a", 0},
				{AND, "AND", 2},
				{IDENT, "b", 6},
			},
		},
		{
			name:  "bare equals is a synonym for double equals",
			input: "a = b == c",
			want: []Token{
				{IDENT, "a", 0},
				{EQ, "==", 2},
				{IDENT, "b", 4},
				{EQ, "==", 6},
				{IDENT, "c", 9},
			},
		},
		{
			name:  "two char operators win over one char prefixes",
			input: "<< <= < >> >= > != ! ** *",
			want: []Token{
				{LSHIFT, "<<", 0},
				{LE, "<=", 3},
				{LT, "<", 6},
				{RSHIFT, ">>", 8},
				{GE, ">=", 11},
				{GT, ">", 14},
				{NE, "!=", 16},
				{BANG, "!", 19},
				{DOUBLESTAR, "**", 21},
				{MUL, "*", 24},
			},
		},
		{
			name:  "leading dot float",
			input: ".5 + 1.25",
			want: []Token{
				{LNUM, ".5", 0},
				{PLUS, "+", 3},
				{LNUM, "1.25", 5},
			},
		},
		{
			name:  "dot before non digit is DOT",
			input: "doc.member",
			want: []Token{
				{IDENT, "doc", 0},
				{DOT, ".", 3},
				{IDENT, "member", 4},
			},
		},
		{
			name:  "dollar and at both anchor",
			input: "$x @y",
			want: []Token{
				{DOLLAR, "$", 0},
				{IDENT, "x", 1},
				{DOLLAR, "$", 3},
				{IDENT, "y", 4},
			},
		},
		{
			name:  "placeholders and colon",
			input: "? :name",
			want: []Token{
				{PLACEHOLDER, "?", 0},
				{COLON, ":", 2},
				{IDENT, "name", 3},
			},
		},
		{
			name:  "interval units are keywords",
			input: "interval 2 MiNuTe",
			want: []Token{
				{INTERVAL, "INTERVAL", 0},
				{LNUM, "2", 9},
				{MINUTE, "MINUTE", 11},
			},
		},
		{
			name:  "multi dot run is one numeric token",
			input: "1.2.3",
			want: []Token{
				{LNUM, "1.2.3", 0},
			},
		},
		{
			name:  "non ascii whitespace is skipped",
			input: "a +\tb",
			want: []Token{
				{IDENT, "a", 0},
				{PLUS, "+", 2},
				{IDENT, "b", 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, lex(t, tt.input))
		})
	}
}

func TestLexQuoted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType TokenType
		wantText string
	}{
		{"double quoted", `"hello"`, LSTRING, "hello"},
		{"single quoted", `'hello'`, LSTRING, "hello"},
		{"doubled terminator unescapes", `"two quotes to one"""`, LSTRING, `two quotes to one"`},
		{"doubled single quote", `'it''s'`, LSTRING, "it's"},
		{"backslash escape keeps next char", `"a\"b"`, LSTRING, `a"b`},
		{"backslash before plain char drops backslash", `"a\nb"`, LSTRING, "anb"},
		{"backtick quoted is an identifier", "`ident```", IDENT, "ident`"},
		{"other quote kinds pass through", `"it's"`, LSTRING, "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lex(t, tt.input)
			require.Len(t, tokens, 1)
			require.Equal(t, tt.wantType, tokens[0].Type)
			require.Equal(t, tt.wantText, tokens[0].Text)
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unterminated double quote", `"abc`, "unterminated quoted string"},
		{"unterminated backtick", "`abc", "unterminated quoted string"},
		{"trailing backslash", `"abc\`, "unterminated quoted string"},
		{"unknown character", "a # b", "unknown character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Lex()
			require.Error(t, err)
			require.ErrorContains(t, err, tt.wantMsg)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestLexEmptyInput(t *testing.T) {
	tokens, err := NewLexer("").Lex()
	require.NoError(t, err)
	require.Empty(t, tokens)

	tokens, err = NewLexer("   \t\n").Lex()
	require.NoError(t, err)
	require.Empty(t, tokens)
}

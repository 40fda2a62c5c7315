package xexpr

// Token is one lexical unit of an expression string.
type Token struct {
	// Type categorizes the token.
	Type TokenType
	// Text is the decoded text for identifiers, strings, and numbers, the
	// canonical symbol for punctuation, and the uppercased word for keywords.
	Text string
	// Pos is the 0-indexed rune offset where this token starts in the source.
	Pos int
}

func (t Token) String() string {
	return t.Text
}

// TokenType categorizes a lexical token.
type TokenType int

const (
	// Logical
	NOT TokenType = iota
	AND
	OR
	XOR
	IS

	// Grouping
	LPAREN
	RPAREN
	LSQBRACKET
	RSQBRACKET

	// Predicate keywords
	BETWEEN
	IN
	LIKE
	ESCAPE
	REGEXP

	// Literals
	TRUE
	FALSE
	NULL
	LNUM
	LSTRING
	IDENT
	PLACEHOLDER

	// Path and structure
	DOT
	DOLLAR
	COLON
	COMMA

	// Comparisons
	EQ
	NE
	GT
	GE
	LT
	LE

	// Bitwise
	BITAND
	BITOR
	BITXOR
	LSHIFT
	RSHIFT

	// Arithmetic
	PLUS
	MINUS
	MUL
	DIV
	MOD
	DOUBLESTAR

	// Unary
	NEG  // ~
	BANG // !

	// Radix literals
	HEX
	BIN

	// Interval units
	MICROSECOND
	SECOND
	MINUTE
	HOUR
	DAY
	WEEK
	MONTH
	QUARTER
	YEAR

	INTERVAL
)

var tokenNames = map[TokenType]string{
	NOT:         "NOT",
	AND:         "AND",
	OR:          "OR",
	XOR:         "XOR",
	IS:          "IS",
	LPAREN:      "(",
	RPAREN:      ")",
	LSQBRACKET:  "[",
	RSQBRACKET:  "]",
	BETWEEN:     "BETWEEN",
	IN:          "IN",
	LIKE:        "LIKE",
	ESCAPE:      "ESCAPE",
	REGEXP:      "REGEXP",
	TRUE:        "TRUE",
	FALSE:       "FALSE",
	NULL:        "NULL",
	LNUM:        "number",
	LSTRING:     "string",
	IDENT:       "identifier",
	PLACEHOLDER: "?",
	DOT:         ".",
	DOLLAR:      "$",
	COLON:       ":",
	COMMA:       ",",
	EQ:          "==",
	NE:          "!=",
	GT:          ">",
	GE:          ">=",
	LT:          "<",
	LE:          "<=",
	BITAND:      "&",
	BITOR:       "|",
	BITXOR:      "^",
	LSHIFT:      "<<",
	RSHIFT:      ">>",
	PLUS:        "+",
	MINUS:       "-",
	MUL:         "*",
	DIV:         "/",
	MOD:         "%",
	DOUBLESTAR:  "**",
	NEG:         "~",
	BANG:        "!",
	HEX:         "HEX",
	BIN:         "BIN",
	MICROSECOND: "MICROSECOND",
	SECOND:      "SECOND",
	MINUTE:      "MINUTE",
	HOUR:        "HOUR",
	DAY:         "DAY",
	WEEK:        "WEEK",
	MONTH:       "MONTH",
	QUARTER:     "QUARTER",
	YEAR:        "YEAR",
	INTERVAL:    "INTERVAL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// reservedWords maps lower-cased keyword text to its token type. Identifiers
// that do not match (case-insensitively) lex as IDENT.
var reservedWords = map[string]TokenType{
	"not":         NOT,
	"and":         AND,
	"or":          OR,
	"xor":         XOR,
	"is":          IS,
	"between":     BETWEEN,
	"in":          IN,
	"like":        LIKE,
	"escape":      ESCAPE,
	"regexp":      REGEXP,
	"true":        TRUE,
	"false":       FALSE,
	"null":        NULL,
	"div":         DIV,
	"hex":         HEX,
	"bin":         BIN,
	"microsecond": MICROSECOND,
	"second":      SECOND,
	"minute":      MINUTE,
	"hour":        HOUR,
	"day":         DAY,
	"week":        WEEK,
	"month":       MONTH,
	"quarter":     QUARTER,
	"year":        YEAR,
	"interval":    INTERVAL,
}

// intervalUnits is the set of tokens accepted as the unit of an INTERVAL
// expression.
var intervalUnits = map[TokenType]bool{
	MICROSECOND: true,
	SECOND:      true,
	MINUTE:      true,
	HOUR:        true,
	DAY:         true,
	WEEK:        true,
	MONTH:       true,
	QUARTER:     true,
	YEAR:        true,
}

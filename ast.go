package xexpr

// Expr is a node in an expression tree. The tree is immutable once returned
// from a parse: no node is shared or back-referenced, and the caller owns it.
type Expr interface {
	exprNode()
}

// Scalar is the value of a Literal.
type Scalar interface {
	scalarValue()
}

// Null is the SQL NULL scalar.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Int is an integer scalar.
type Int int64

// Double is a floating-point scalar.
type Double float64

// String is a string scalar.
type String string

func (Null) scalarValue()   {}
func (Bool) scalarValue()   {}
func (Int) scalarValue()    {}
func (Double) scalarValue() {}
func (String) scalarValue() {}

// Literal is a scalar literal value.
type Literal struct {
	Value Scalar
}

func (*Literal) exprNode() {}

// Operator is a named operator applied to an ordered parameter list. It covers
// unary prefix operators, binary infix operators, and the variadic predicate
// operators (IN, LIKE with optional ESCAPE, BETWEEN with two bounds, IS,
// REGEXP, INTERVAL). Negated predicates wrap the base node in Operator("NOT").
type Operator struct {
	Name   string
	Params []Expr
}

func (*Operator) exprNode() {}

// FuncIdent names a function, optionally qualified by a schema.
type FuncIdent struct {
	Schema string
	Name   string
}

// FunctionCall is a function invocation with an ordered argument list.
type FunctionCall struct {
	Name   FuncIdent
	Params []Expr
}

func (*FunctionCall) exprNode() {}

// ColumnIdent is a relational column reference with up to three dotted name
// parts and an optional trailing document path into a JSON column value.
type ColumnIdent struct {
	Schema string
	Table  string
	Name   string
	Path   DocumentPath
}

func (*ColumnIdent) exprNode() {}

// DocumentField is a JSON document field reference, used when relational
// column parsing is disabled. Name is the document member the path is
// anchored at; it is empty when the expression is a bare path whose first
// member is already the leading path segment.
type DocumentField struct {
	Name string
	Path DocumentPath
}

func (*DocumentField) exprNode() {}

// Variable is a bind variable reference.
type Variable struct {
	Name string
}

func (*Variable) exprNode() {}

// Placeholder is a bind parameter. Position is assigned in parse order
// starting at 0. Name is set for named placeholders (":name") and empty for
// positional ones ("?").
type Placeholder struct {
	Position int
	Name     string
}

func (*Placeholder) exprNode() {}

// DocumentPath is an ordered sequence of path segments. It is kept structured
// and only rendered to the textual wire form at the serialization boundary.
type DocumentPath []PathSegment

// PathSegment is one step of a document path.
type PathSegment interface {
	pathSegment()
}

// Member is a named member access, rendered ".name".
type Member string

// QuotedMember is a member access whose key needs quoting, rendered
// `."key"` with interior double quotes doubled.
type QuotedMember string

// MemberWildcard matches any member, rendered ".*".
type MemberWildcard struct{}

// ArrayIndex is a non-negative array element access, rendered "[N]".
type ArrayIndex int

// ArrayWildcard matches any array element, rendered "[*]".
type ArrayWildcard struct{}

// RecursiveDescent matches any descendant, rendered "**". A path may not end
// with it.
type RecursiveDescent struct{}

func (Member) pathSegment()           {}
func (QuotedMember) pathSegment()     {}
func (MemberWildcard) pathSegment()   {}
func (ArrayIndex) pathSegment()       {}
func (ArrayWildcard) pathSegment()    {}
func (RecursiveDescent) pathSegment() {}

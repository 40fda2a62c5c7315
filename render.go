package xexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// String renderings are a readable, SQL-ish text form used by the CLI and by
// tests. They preserve grouping with explicit parentheses; they are not a
// round-trip contract with the input text.

func (n Null) String() string { return "NULL" }

func (b Bool) String() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (d Double) String() string { return strconv.FormatFloat(float64(d), 'g', -1, 64) }

func (s String) String() string {
	return "'" + strings.ReplaceAll(string(s), "'", "''") + "'"
}

func (l *Literal) String() string {
	return fmt.Sprint(l.Value)
}

func (o *Operator) String() string {
	switch o.Name {
	case "BETWEEN":
		return fmt.Sprintf("(%s BETWEEN %s AND %s)", o.Params[0], o.Params[1], o.Params[2])
	case "IN":
		items := make([]string, len(o.Params)-1)
		for i, p := range o.Params[1:] {
			items[i] = fmt.Sprint(p)
		}
		return fmt.Sprintf("(%s IN (%s))", o.Params[0], strings.Join(items, ", "))
	case "LIKE":
		if len(o.Params) == 3 {
			return fmt.Sprintf("(%s LIKE %s ESCAPE %s)", o.Params[0], o.Params[1], o.Params[2])
		}
		return fmt.Sprintf("(%s LIKE %s)", o.Params[0], o.Params[1])
	case "INTERVAL":
		return fmt.Sprintf("INTERVAL %s %s", o.Params[0], intervalUnitText(o.Params[1]))
	case "NOT":
		return fmt.Sprintf("NOT (%s)", o.Params[0])
	}
	if len(o.Params) == 1 {
		return fmt.Sprintf("%s(%s)", o.Name, o.Params[0])
	}
	return fmt.Sprintf("(%s %s %s)", o.Params[0], o.Name, o.Params[1])
}

// intervalUnitText unwraps the unit parameter of an INTERVAL operator, which
// the parser stores as a string literal.
func intervalUnitText(unit Expr) string {
	if lit, ok := unit.(*Literal); ok {
		if s, ok := lit.Value.(String); ok {
			return string(s)
		}
	}
	return fmt.Sprint(unit)
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Params))
	for i, p := range f.Params {
		args[i] = fmt.Sprint(p)
	}
	name := f.Name.Name
	if f.Name.Schema != "" {
		name = f.Name.Schema + "." + name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func (c *ColumnIdent) String() string {
	var parts []string
	if c.Schema != "" {
		parts = append(parts, quoteIdent(c.Schema))
	}
	if c.Table != "" {
		parts = append(parts, quoteIdent(c.Table))
	}
	parts = append(parts, quoteIdent(c.Name))
	s := strings.Join(parts, ".")
	if len(c.Path) > 0 {
		s += "->'$" + c.Path.String() + "'"
	}
	return s
}

func (d *DocumentField) String() string {
	if d.Name != "" {
		return d.Name + "@" + d.Path.String()
	}
	return "$" + d.Path.String()
}

func (v *Variable) String() string { return "@" + v.Name }

func (p *Placeholder) String() string {
	if p.Name != "" {
		return ":" + p.Name
	}
	return "?"
}

func (p DocumentPath) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteString(fmt.Sprint(seg))
	}
	return b.String()
}

func (m Member) String() string { return "." + string(m) }

func (q QuotedMember) String() string {
	return `."` + strings.ReplaceAll(string(q), `"`, `""`) + `"`
}

func (MemberWildcard) String() string { return ".*" }

func (i ArrayIndex) String() string { return "[" + strconv.Itoa(int(i)) + "]" }

func (ArrayWildcard) String() string { return "[*]" }

func (RecursiveDescent) String() string { return "**" }

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

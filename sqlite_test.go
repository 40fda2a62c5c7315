package xexpr

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// TestSQLiteCrossCheck evaluates parsed constant expressions on an in-memory
// SQLite and compares the results against expected values. Because the SQL is
// rendered from the tree with explicit grouping, a wrong precedence or
// associativity decision in the parser shows up as a wrong value here.
func TestSQLiteCrossCheck(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	tests := []struct {
		input string
		want  interface{}
	}{
		{"1 + 2 * 3", int64(7)},
		{"(1 + 2) * 3", int64(9)},
		{"10 - 4 - 3", int64(3)},
		{"-2", int64(-2)},
		{"- -2", int64(2)},
		{"7 % 4", int64(3)},
		{"1.5 * 2", float64(3)},
		{"1 << 4", int64(16)},
		{"255 >> 4", int64(15)},
		{"12 & 10", int64(8)},
		{"12 | 3", int64(15)},
		{"~0", int64(-1)},
		{"1 < 2", int64(1)},
		{"2 >= 2", int64(1)},
		{"1 == 1", int64(1)},
		{"1 = 1", int64(1)},
		{"1 != 2", int64(1)},
		{"1 + 2 > 2 + 0", int64(1)},
		{"3 between 1 and 5", int64(1)},
		{"6 not between 1 and 5", int64(1)},
		{"2 in (1, 2, 3)", int64(1)},
		{"4 not in (1, 2, 3)", int64(1)},
		{"'abc' like 'a%'", int64(1)},
		{"'it''s' like 'it%'", int64(1)},
		{"null is null", int64(1)},
		{"1 is not null", int64(1)},
		{"not false", int64(1)},
		{"true and false or true", int64(1)},
		{"1 > 2 or 2 > 1 and 3 > 2", int64(1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustParse(t, tt.input, false)
			query := "SELECT " + toSQLite(t, tree)

			var got interface{}
			require.NoError(t, db.QueryRow(query).Scan(&got), "query %q", query)
			require.Equal(t, tt.want, got, "query %q", query)
		})
	}
}

// toSQLite renders the evaluable subset of an expression tree as SQLite SQL.
// Anything outside the subset fails the test.
func toSQLite(t *testing.T, e Expr) string {
	t.Helper()
	switch n := e.(type) {
	case *Literal:
		switch v := n.Value.(type) {
		case Null:
			return "NULL"
		case Bool:
			if v {
				return "1"
			}
			return "0"
		default:
			return fmt.Sprint(n.Value)
		}
	case *Operator:
		return operatorToSQLite(t, n)
	}
	t.Fatalf("no SQLite rendering for %T", e)
	return ""
}

func operatorToSQLite(t *testing.T, o *Operator) string {
	t.Helper()
	switch o.Name {
	case "BETWEEN":
		return fmt.Sprintf("(%s BETWEEN %s AND %s)",
			toSQLite(t, o.Params[0]), toSQLite(t, o.Params[1]), toSQLite(t, o.Params[2]))
	case "IN":
		items := make([]string, len(o.Params)-1)
		for i, p := range o.Params[1:] {
			items[i] = toSQLite(t, p)
		}
		return fmt.Sprintf("(%s IN (%s))", toSQLite(t, o.Params[0]), strings.Join(items, ", "))
	case "LIKE":
		return fmt.Sprintf("(%s LIKE %s)", toSQLite(t, o.Params[0]), toSQLite(t, o.Params[1]))
	case "NOT":
		return fmt.Sprintf("NOT (%s)", toSQLite(t, o.Params[0]))
	case "IS":
		return fmt.Sprintf("(%s IS %s)", toSQLite(t, o.Params[0]), toSQLite(t, o.Params[1]))
	}

	if len(o.Params) == 1 {
		switch o.Name {
		case "-", "+", "~":
			return fmt.Sprintf("%s(%s)", o.Name, toSQLite(t, o.Params[0]))
		}
		t.Fatalf("no SQLite rendering for unary %q", o.Name)
	}

	op := o.Name
	switch o.Name {
	case "==":
		op = "="
	case "AND", "OR":
		// spelled the same in SQLite
	case "+", "-", "*", "/", "%", "&", "|", "<<", ">>", "<", "<=", ">", ">=", "!=":
		// spelled the same in SQLite
	default:
		t.Fatalf("no SQLite rendering for operator %q", o.Name)
	}
	return fmt.Sprintf("(%s %s %s)", toSQLite(t, o.Params[0]), op, toSQLite(t, o.Params[1]))
}

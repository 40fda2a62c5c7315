package xexpr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderExpressions(t *testing.T) {
	tests := []struct {
		input      string
		relational bool
		want       string
	}{
		{"a + b * c", false, "($.a + ($.b * $.c))"},
		{"(a + b) * c", false, "(($.a + $.b) * $.c)"},
		{"-x", false, "-($.x)"},
		{"not a", false, "NOT ($.a)"},
		{"a between 1 and 2", false, "($.a BETWEEN 1 AND 2)"},
		{"a in (1, 2)", false, "($.a IN (1, 2))"},
		{"a like 'x%' escape '|'", false, "($.a LIKE 'x%' ESCAPE '|')"},
		{"a is not null", false, "NOT (($.a IS NULL))"},
		{"d + interval 30 day", false, "($.d + INTERVAL 30 DAY)"},
		{"concat(a, 'it''s')", false, "concat($.a, 'it''s')"},
		{"xt.f(1)", false, "xt.f(1)"},
		{"a@.b[0].*", false, `a@.b[0].*`},
		{"@v > :p and b != ?", false, "((@v > :p) AND ($.b != ?))"},
		{"sch.tbl.col$.a[*]", true, "`sch`.`tbl`.`col`->'$.a[*]'"},
		{"tbl.col", true, "`tbl`.`col`"},
		{"true or false", false, "(TRUE OR FALSE)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, fmt.Sprint(mustParse(t, tt.input, tt.relational)))
		})
	}
}

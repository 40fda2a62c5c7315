package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdevapi/xexpr"
)

var (
	relational bool
	asText     bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "xexpr [expression]",
		Short: "Parse an X Protocol expression and print its expression tree",
		Long: `xexpr parses an expression in the X Protocol expression grammar and prints
the resulting expression tree as JSON. The expression is read from the
arguments, or from stdin when no arguments are given.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.Flags().BoolVar(&relational, "relational", false, "parse bare identifiers as schema.table.column references instead of document fields")
	cmd.Flags().BoolVar(&asText, "text", false, "print the rendered text form instead of JSON")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	src := strings.Join(args, " ")
	if src == "" {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		src = strings.TrimSpace(string(in))
	}
	if src == "" {
		return errors.New("no expression given")
	}

	parser := xexpr.NewParser(src, relational)
	tree, err := parser.Parse()
	if err != nil {
		return err
	}

	if asText {
		fmt.Println(tree)
		return nil
	}

	out := map[string]interface{}{"ast": nodeJSON(tree)}
	if ph := parser.Placeholders(); len(ph) > 0 {
		out["placeholders"] = ph
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// nodeJSON converts an expression tree into plain maps and slices so the JSON
// output is tagged by node kind rather than by Go struct shape.
func nodeJSON(e xexpr.Expr) interface{} {
	switch n := e.(type) {
	case *xexpr.Literal:
		return map[string]interface{}{"literal": scalarJSON(n.Value)}
	case *xexpr.Operator:
		return map[string]interface{}{
			"operator": n.Name,
			"params":   paramsJSON(n.Params),
		}
	case *xexpr.FunctionCall:
		name := n.Name.Name
		if n.Name.Schema != "" {
			name = n.Name.Schema + "." + name
		}
		return map[string]interface{}{
			"function": name,
			"params":   paramsJSON(n.Params),
		}
	case *xexpr.ColumnIdent:
		col := map[string]interface{}{"name": n.Name}
		if n.Table != "" {
			col["table"] = n.Table
		}
		if n.Schema != "" {
			col["schema"] = n.Schema
		}
		if len(n.Path) > 0 {
			col["path"] = n.Path.String()
		}
		return map[string]interface{}{"column": col}
	case *xexpr.DocumentField:
		field := map[string]interface{}{"path": n.Path.String()}
		if n.Name != "" {
			field["name"] = n.Name
		}
		return map[string]interface{}{"field": field}
	case *xexpr.Variable:
		return map[string]interface{}{"variable": n.Name}
	case *xexpr.Placeholder:
		ph := map[string]interface{}{"position": n.Position}
		if n.Name != "" {
			ph["name"] = n.Name
		}
		return map[string]interface{}{"placeholder": ph}
	}
	return nil
}

func paramsJSON(params []xexpr.Expr) []interface{} {
	out := make([]interface{}, len(params))
	for i, p := range params {
		out[i] = nodeJSON(p)
	}
	return out
}

func scalarJSON(s xexpr.Scalar) interface{} {
	switch v := s.(type) {
	case xexpr.Null:
		return nil
	case xexpr.Bool:
		return bool(v)
	case xexpr.Int:
		return int64(v)
	case xexpr.Double:
		return float64(v)
	case xexpr.String:
		return string(v)
	}
	return nil
}

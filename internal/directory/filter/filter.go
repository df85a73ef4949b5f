// Package filter translates AIP-160 filter expressions over tools into SQL
// WHERE fragments for the SQLite store.
package filter

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Condition is a SQL WHERE clause fragment with positional parameters.
type Condition struct {
	Clause string
	Params []any
}

// Empty reports whether the condition filters nothing.
func (c Condition) Empty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

type column struct {
	name      string
	timestamp bool
}

// toolColumns maps filter identifiers to tool table columns.
var toolColumns = map[string]column{
	"slug":       {name: "slug"},
	"name":       {name: "name"},
	"category":   {name: "category_slug"},
	"pricing":    {name: "pricing"},
	"featured":   {name: "featured"},
	"created_at": {name: "created_at", timestamp: true},
	"updated_at": {name: "updated_at", timestamp: true},
}

// ToolDeclarations returns the identifiers accepted in tool filters.
func ToolDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("slug", filtering.TypeString),
		filtering.DeclareIdent("name", filtering.TypeString),
		filtering.DeclareIdent("category", filtering.TypeString),
		filtering.DeclareIdent("pricing", filtering.TypeString),
		filtering.DeclareIdent("featured", filtering.TypeBool),
		filtering.DeclareIdent("created_at", filtering.TypeTimestamp),
		filtering.DeclareIdent("updated_at", filtering.TypeTimestamp),
		filtering.DeclareIdent("tags", filtering.TypeList(filtering.TypeString)),
		filtering.DeclareIdent("true", filtering.TypeBool),
		filtering.DeclareIdent("false", filtering.TypeBool),
	)
}

// ParseToolFilter parses an AIP-160 expression such as
// `category = "writing" AND pricing != "paid"`. An empty string yields an
// empty condition.
func ParseToolFilter(raw string) (Condition, error) {
	if strings.TrimSpace(raw) == "" {
		return Condition{}, nil
	}
	decls, err := ToolDeclarations()
	if err != nil {
		return Condition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(raw, decls)
	if err != nil {
		return Condition{}, invalid(raw, err)
	}
	condition, err := translateExpr(parsed.CheckedExpr.GetExpr())
	if err != nil {
		return Condition{}, invalid(raw, err)
	}
	return condition, nil
}

func invalid(raw string, cause error) error {
	return &apperrors.Error{
		Code:     apperrors.CodeFilterInvalid,
		Message:  fmt.Sprintf("invalid filter: %v", cause),
		Metadata: map[string]string{"filter": raw},
		Cause:    cause,
	}
}

func translateExpr(e *expr.Expr) (Condition, error) {
	if e == nil {
		return Condition{}, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return Condition{}, fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	switch fn := call.CallExpr.Function; fn {
	case filtering.FunctionAnd:
		return translateJoin(call.CallExpr.Args, "AND")
	case filtering.FunctionOr:
		return translateJoin(call.CallExpr.Args, "OR")
	case filtering.FunctionNot:
		if len(call.CallExpr.Args) != 1 {
			return Condition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := translateExpr(call.CallExpr.Args[0])
		if err != nil {
			return Condition{}, err
		}
		return Condition{Clause: "(NOT " + inner.Clause + ")", Params: inner.Params}, nil
	case filtering.FunctionHas:
		return translateHas(call.CallExpr.Args)
	case filtering.FunctionEquals:
		return translateComparison(call.CallExpr.Args, "=")
	case filtering.FunctionNotEquals:
		return translateComparison(call.CallExpr.Args, "!=")
	case filtering.FunctionLessThan:
		return translateComparison(call.CallExpr.Args, "<")
	case filtering.FunctionLessEquals:
		return translateComparison(call.CallExpr.Args, "<=")
	case filtering.FunctionGreaterThan:
		return translateComparison(call.CallExpr.Args, ">")
	case filtering.FunctionGreaterEquals:
		return translateComparison(call.CallExpr.Args, ">=")
	default:
		return Condition{}, fmt.Errorf("unsupported function: %s", fn)
	}
}

func translateJoin(args []*expr.Expr, op string) (Condition, error) {
	if len(args) < 2 {
		return Condition{}, fmt.Errorf("%s requires at least 2 arguments", op)
	}
	clauses := make([]string, 0, len(args))
	var params []any
	for _, arg := range args {
		part, err := translateExpr(arg)
		if err != nil {
			return Condition{}, err
		}
		clauses = append(clauses, part.Clause)
		params = append(params, part.Params...)
	}
	return Condition{Clause: "(" + strings.Join(clauses, " "+op+" ") + ")", Params: params}, nil
}

// translateHas supports `tags:"chat"` against the tool_tags join table.
func translateHas(args []*expr.Expr) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("has requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok || ident.IdentExpr.GetName() != "tags" {
		return Condition{}, fmt.Errorf("has is only supported on tags")
	}
	tag, ok := args[1].GetConstExpr().GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return Condition{}, fmt.Errorf("tag must be a string")
	}
	return Condition{
		Clause: "EXISTS (SELECT 1 FROM tool_tags tt WHERE tt.tool_id = tools.id AND tt.tag = ?)",
		Params: []any{strings.ToLower(strings.TrimSpace(tag.StringValue))},
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return Condition{}, fmt.Errorf("expected identifier, got %T", args[0].GetExprKind())
	}
	col, ok := toolColumns[ident.IdentExpr.GetName()]
	if !ok {
		return Condition{}, fmt.Errorf("unknown field: %s", ident.IdentExpr.GetName())
	}
	value, err := extractValue(args[1], col.timestamp)
	if err != nil {
		return Condition{}, err
	}
	if col.name == "slug" || col.name == "category_slug" || col.name == "pricing" {
		if s, ok := value.(string); ok {
			value = strings.ToLower(s)
		}
	}
	if b, ok := value.(bool); ok {
		value = boolToInt(b)
	}
	return Condition{Clause: fmt.Sprintf("%s %s ?", col.name, op), Params: []any{value}}, nil
}

func extractValue(e *expr.Expr, timestamp bool) (any, error) {
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_ConstExpr:
		value, err := constValue(kind.ConstExpr)
		if err != nil {
			return nil, err
		}
		if s, ok := value.(string); ok && timestamp {
			return parseTimestamp(s)
		}
		return value, nil
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == filtering.FunctionTimestamp && len(kind.CallExpr.Args) == 1 {
			raw, ok := kind.CallExpr.Args[0].GetConstExpr().GetConstantKind().(*expr.Constant_StringValue)
			if !ok {
				return nil, fmt.Errorf("timestamp argument must be a string")
			}
			return parseTimestamp(raw.StringValue)
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	case *expr.Expr_IdentExpr:
		switch kind.IdentExpr.GetName() {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("expected constant, got identifier %s", kind.IdentExpr.GetName())
	default:
		return nil, fmt.Errorf("expected constant, got %T", kind)
	}
}

func constValue(c *expr.Constant) (any, error) {
	switch kind := c.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// parseTimestamp returns unix milliseconds, matching the store's column encoding.
func parseTimestamp(raw string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t.UTC().UnixMilli(), nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

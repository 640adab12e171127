package eval

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
	"github.com/ardnew/dotenvy/pkg"
)

// Env builds the variables visible to an expression evaluated against
// chain: the built-ins, then every key of the flattened chain, which
// shadows a built-in of the same name.
func Env(chain *dotenv.Environment) map[string]any {
	env := bind(chain)

	for key, value := range chain.Flatten() {
		env[key] = value
	}

	return env
}

// Compile compiles source for evaluation against chain.
func Compile(source string, chain *dotenv.Environment) (*vm.Program, error) {
	program, err := expr.Compile(source, expr.Env(Env(chain)))
	if err != nil {
		return nil, pkg.ErrExprCompile.Wrap(err)
	}

	return program, nil
}

// Evaluate compiles and runs source against chain.
func Evaluate(source string, chain *dotenv.Environment) (any, error) {
	program, err := Compile(source, chain)
	if err != nil {
		log.Debug("compile failed",
			slog.String("source", source),
			slog.Any("error", err))

		return nil, err
	}

	result, err := vm.Run(program, Env(chain))
	if err != nil {
		return nil, pkg.ErrExprEvaluate.Wrap(err)
	}

	log.Trace("evaluated",
		slog.String("source", source),
		slog.String("type", fmt.Sprintf("%T", result)))

	return result, nil
}

// FormatResult renders a result for display. Strings are written as is at
// the top level and quoted inside collections.
func FormatResult(result any) string {
	if s, ok := result.(string); ok {
		return s
	}

	return formatValue(result)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	case []string:
		return formatValue(anySlice(val))
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = v
		}

		return formatValue(m)
	case []map[string]string:
		return formatValue(anySlice(val))
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatValue(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		parts := make([]string, 0, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			parts = append(parts, strconv.Quote(k)+": "+formatValue(val[k]))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func anySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}

	return out
}

// Package grouping evaluates filter, grouping and display expressions
// against rows and regroups a row source into an outline tree.
package grouping

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/source"
)

// Placeholder is displayed for cells whose expression failed
const Placeholder = "???"

// Level is one grouping level: a group-key expression and an optional
// parent expression that folds the row into the group's header
type Level struct {
	Group  string `yaml:"group"`
	Parent string `yaml:"parent,omitempty"`
}

// Rules holds the expression texts the engine compiles
type Rules struct {
	Filter  string
	Levels  []Level
	Columns []string // per-column display expression, "" for direct lookup
	Prefix  string   // shared prefix expression composed with every column
}

// Cursor addresses one row of a source
type Cursor struct {
	Source source.RowSource
	Line   int
}

type level struct {
	group  *vm.Program
	parent *vm.Program
}

// Engine holds compiled expressions. It is not safe for concurrent use.
type Engine struct {
	filter  *vm.Program
	levels  []level
	columns []*vm.Program
	errs    []error

	names  []string
	env    map[string]any
	cursor Cursor
	log    zerolog.Logger
}

// New compiles rules against a source exposing the given column names.
// Compile failures are logged and recorded; the affected expression then
// behaves as if it failed at evaluation.
func New(rules Rules, names []string) *Engine {
	e := &Engine{
		names: usableNames(names),
		log:   logging.Grouping,
	}
	e.env = e.prototype()

	e.filter = e.compile("filter", rules.Filter)
	for i, l := range rules.Levels {
		e.levels = append(e.levels, level{
			group:  e.compile(fmt.Sprintf("level %d group", i), l.Group),
			parent: e.compile(fmt.Sprintf("level %d parent", i), l.Parent),
		})
	}
	for i, c := range rules.Columns {
		e.columns = append(e.columns, e.compile(fmt.Sprintf("column %d", i), columnCode(i, c, rules.Prefix)))
	}
	return e
}

// columnCode composes a column's expression with the shared prefix
func columnCode(col int, code, prefix string) string {
	if prefix == "" {
		return code
	}
	if code == "" {
		code = "col(" + strconv.Itoa(col) + ")"
	}
	return "string(" + prefix + ") + string(" + code + ")"
}

func (e *Engine) compile(what, code string) *vm.Program {
	if code == "" {
		return nil
	}
	program, err := expr.Compile(code, expr.Env(e.env))
	if err != nil {
		err = fmt.Errorf("%s: %w", what, err)
		e.errs = append(e.errs, err)
		e.log.Warn().Err(err).Str("code", code).Msg("compile failed")
		return failed
	}
	return program
}

// failed marks an expression that did not compile
var failed = &vm.Program{}

// Errors returns the compile errors collected by New
func (e *Engine) Errors() []error {
	return e.errs
}

// Levels returns the number of grouping levels
func (e *Engine) Levels() int {
	return len(e.levels)
}

// prototype builds the evaluation environment. Values are refreshed per
// evaluation; col reads through the engine's cursor.
func (e *Engine) prototype() map[string]any {
	env := map[string]any{
		"row":      0,
		"cols":     0,
		"selected": false,
		"current":  0,
		"col": func(i int) string {
			return e.cursor.Source.ColumnValue(e.cursor.Line, i)
		},
	}
	for _, name := range e.names {
		if name != "" {
			env[name] = ""
		}
	}
	return env
}

func (e *Engine) run(program *vm.Program, c Cursor) (any, error) {
	e.cursor = c
	e.env["row"] = c.Line
	e.env["cols"] = len(e.names)
	e.env["selected"] = c.Source.IsRowSelected(c.Line)
	e.env["current"] = c.Source.CurrentRow()
	for i, name := range e.names {
		if name != "" {
			e.env[name] = c.Source.ColumnValue(c.Line, i)
		}
	}
	return expr.Run(program, e.env)
}

// Include evaluates the filter. Rows are included when there is no filter
// or when it fails.
func (e *Engine) Include(c Cursor) bool {
	if e.filter == nil || e.filter == failed {
		return true
	}
	out, err := e.run(e.filter, c)
	if err != nil {
		e.log.Debug().Err(err).Int("line", c.Line).Msg("filter failed")
		return true
	}
	return truthy(out)
}

// GroupKey evaluates a level's group expression. Failures group nothing.
func (e *Engine) GroupKey(lvl int, c Cursor) string {
	if lvl < 0 || lvl >= len(e.levels) {
		return ""
	}
	program := e.levels[lvl].group
	if program == nil || program == failed {
		return ""
	}
	out, err := e.run(program, c)
	if err != nil {
		e.log.Debug().Err(err).Int("line", c.Line).Int("level", lvl).Msg("group failed")
		return ""
	}
	return format(out)
}

// IsParent evaluates a level's parent expression. Failures are false.
func (e *Engine) IsParent(lvl int, c Cursor) bool {
	if lvl < 0 || lvl >= len(e.levels) {
		return false
	}
	program := e.levels[lvl].parent
	if program == nil || program == failed {
		return false
	}
	out, err := e.run(program, c)
	if err != nil {
		e.log.Debug().Err(err).Int("line", c.Line).Int("level", lvl).Msg("parent failed")
		return false
	}
	return truthy(out)
}

// Column resolves a cell's display text, falling back to direct lookup
// when the column has no expression
func (e *Engine) Column(col int, c Cursor) string {
	var program *vm.Program
	if col >= 0 && col < len(e.columns) {
		program = e.columns[col]
	}
	if program == nil {
		return c.Source.ColumnValue(c.Line, col)
	}
	if program == failed {
		return Placeholder
	}
	out, err := e.run(program, c)
	if err != nil {
		e.log.Debug().Err(err).Int("line", c.Line).Int("column", col).Msg("column failed")
		return Placeholder
	}
	return format(out)
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

var reserved = map[string]bool{
	"row": true, "cols": true, "selected": true, "current": true, "col": true,
	"and": true, "or": true, "not": true, "in": true, "matches": true,
	"contains": true, "startsWith": true, "endsWith": true, "let": true,
	"if": true, "else": true, "true": true, "false": true, "nil": true,
	"len": true, "string": true, "int": true, "float": true,
}

// usableNames keeps column names that can be referenced as identifiers.
// Unusable names keep their slot as "" so indexes still line up.
func usableNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if isIdent(n) && !reserved[n] {
			out[i] = n
		}
	}
	return out
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

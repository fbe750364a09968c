package deffile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unitspace/unitspace/units"
)

// === Definition sources ===

// Source is one ordered definition source: a name used in diagnostics and
// the raw statement text. Sources are evaluated strictly in caller order,
// each statement seeing every binding made before it.
type Source struct {
	Name    string
	Content string
}

// ReadFiles loads definition sources from disk, in the given order.
func ReadFiles(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading definition source: %w", err)
		}
		sources = append(sources, Source{Name: filepath.Base(path), Content: string(data)})
	}
	return sources, nil
}

// ReadFS loads definition sources from a file system (e.g. the embedded
// defaults), in the given order.
func ReadFS(fsys fs.FS, paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading definition source: %w", err)
		}
		sources = append(sources, Source{Name: filepath.Base(path), Content: string(data)})
	}
	return sources, nil
}

// LoadFiles builds a frozen registry from definition files on disk.
func LoadFiles(paths []string) (*units.Registry, error) {
	sources, err := ReadFiles(paths)
	if err != nil {
		return nil, err
	}
	return Load(sources)
}

// Load replays the sources' statements in order and returns the frozen
// registry. Any malformed statement or unresolvable reference aborts the
// whole build; no partially built registry is ever returned.
//
// Redefining a symbol is allowed and the later definition wins. This is a
// deliberate, observable policy (it is how a custom source layered after
// the defaults adjusts a constant), logged at Warn level because it is
// also an easy way to break a configuration by accident.
func Load(sources []Source) (*units.Registry, error) {
	b := &builder{
		registry: units.NewRegistry(),
		defined:  make(map[string]string),
	}

	for _, src := range sources {
		for lineNo, rawLine := range strings.Split(src.Content, "\n") {
			line := strings.TrimSpace(rawLine)
			if skipLine(line) {
				continue
			}
			if err := b.loadStatement(src.Name, lineNo+1, line); err != nil {
				return nil, err
			}
		}
	}

	if err := b.recordCoherentRelations(); err != nil {
		return nil, err
	}
	b.registry.Freeze()
	logrus.Debugf("built unit registry: %d symbols from %d sources", b.registry.Len(), len(sources))
	return b.registry, nil
}

// builder accumulates the registry during a load.
type builder struct {
	registry *units.Registry
	defined  map[string]string // symbol -> "source:line" of current binding
	pending  []units.Exponents // candidate coherent relations, verified at the end
}

// resolve is the evaluation environment: exact names bound so far. Prefix
// synthesis is deliberately unavailable inside definition expressions;
// every symbol a definition uses must itself be defined.
func (b *builder) resolve(name string) (units.Symbol, bool) {
	if _, ok := b.defined[name]; !ok {
		return nil, false
	}
	sym, err := b.registry.Lookup(name)
	if err != nil {
		return nil, false
	}
	return sym, true
}

// recordCoherentRelations keeps the candidate relations that really are
// unity. Candidates are collected during the load because a derivation's
// display units may not all exist yet (Wb is derived from s and V before V
// is defined); they are only verifiable once every symbol is bound. A
// candidate that is not unity (e.g. from g = 0.001*kg) is a scaled
// derivation, not a coherent one, and is discarded.
func (b *builder) recordCoherentRelations() error {
	for _, rel := range b.pending {
		q, err := b.registry.Evaluate(rel)
		if err != nil || !q.IsDimensionless() {
			continue
		}
		if diff := q.Value() - 1; diff < -1e-9 || diff > 1e-9 {
			continue
		}
		if err := b.registry.AddCoherentRelation(rel); err != nil {
			return err
		}
	}
	return nil
}

// skipLine reports whether the line carries no statement: blank lines,
// comments, and the [Section] headers that only organize the file.
func skipLine(line string) bool {
	if line == "" || line[0] == ';' || line[0] == '#' {
		return true
	}
	return line[0] == '[' && strings.HasSuffix(line, "]")
}

func (b *builder) loadStatement(source string, lineNo int, line string) error {
	parseErr := func(format string, args ...any) error {
		return &units.ParseError{File: source, Line: lineNo, Msg: fmt.Sprintf(format, args...)}
	}

	symbol, rest, ok := strings.Cut(line, "=")
	if !ok {
		return parseErr("expected 'symbol = expression'")
	}
	symbol = strings.TrimSpace(symbol)
	if !validSymbol(symbol) {
		return parseErr("invalid symbol name %q", symbol)
	}

	expr, flag, hasFlag, err := splitStatement(rest)
	if err != nil {
		return parseErr("defining %q: %v", symbol, err)
	}
	if strings.TrimSpace(expr) == "" {
		return parseErr("empty expression for %q", symbol)
	}

	ast, err := parseExpr(expr)
	if err != nil {
		return parseErr("defining %q: %v", symbol, err)
	}

	val, err := eval(ast, b.resolve)
	if err != nil {
		var undef *units.UndefinedSymbolError
		if errors.As(err, &undef) {
			undef.Statement = symbol
			undef.File = source
			undef.Line = lineNo
			return undef
		}
		return fmt.Errorf("%s:%d: defining %q: %w", source, lineNo, symbol, err)
	}

	sym, relation, err := bind(symbol, val, hasFlag, flag, ast)
	if err != nil {
		return parseErr("defining %q: %v", symbol, err)
	}

	if at, exists := b.defined[symbol]; exists {
		logrus.Warnf("%s:%d: %q overrides the definition at %s (last wins)", source, lineNo, symbol, at)
	}
	if relation != nil && !relation.Empty() {
		b.pending = append(b.pending, relation)
	}
	if err := b.registry.Define(sym); err != nil {
		return err
	}
	b.defined[symbol] = fmt.Sprintf("%s:%d", source, lineNo)
	return nil
}

// splitStatement strips the '; note' tail and the optional ', True|False'
// prefixable flag from the right-hand side of a statement. Only commas at
// the top parenthesis level count: commas inside constructor calls belong
// to the expression.
func splitStatement(rest string) (expr string, flag, hasFlag bool, err error) {
	// The note starts at the first ';' outside quotes.
	depth := 0
	var quote byte
	flagComma := -1
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ';':
			rest = rest[:i]
			i = len(rest)
		case c == ',' && depth == 0:
			if flagComma >= 0 {
				return "", false, false, fmt.Errorf("more than one top-level ','")
			}
			flagComma = i
		}
	}
	if quote != 0 {
		return "", false, false, fmt.Errorf("unterminated string")
	}

	if flagComma < 0 {
		return rest, false, false, nil
	}
	switch tail := strings.TrimSpace(rest[flagComma+1:]); tail {
	case "True":
		return rest[:flagComma], true, true, nil
	case "False":
		return rest[:flagComma], false, true, nil
	default:
		return "", false, false, fmt.Errorf("expected True or False after ',', found %q", tail)
	}
}

// bind turns an evaluated expression into the symbol to register. A
// statement with a prefixable flag defines a unit; one without defines a
// constant. A unit composed purely of existing symbols (no constructor
// call in its expression) is a coherent derivation, and the combination it
// was derived from is returned as a simplification relation.
func bind(symbol string, val value, hasFlag, flag bool, ast node) (units.Symbol, units.Exponents, error) {
	switch val.kind {
	case kindLambda:
		return val.lam.WithName(symbol, hasFlag && flag), nil, nil

	case kindNumber:
		if hasFlag {
			return units.NewScalarUnit(symbol, units.Dimensionless(val.num.f), flag), nil, nil
		}
		return units.NewConstant(symbol, units.Dimensionless(val.num.f)), nil, nil

	case kindQuantity:
		if !hasFlag {
			return units.NewConstant(symbol, val.q), nil, nil
		}
		var relation units.Exponents
		if !containsCall(ast) && !val.q.IsDimensionless() {
			// e.g. J = kg*m2/s2 records the unity relation kg*m2/(s2*J).
			relation = val.q.Display().Div(units.Exponents{symbol: units.RInt(1)})
		}
		return units.NewScalarUnit(symbol, val.q, flag), relation, nil
	}
	return nil, nil, fmt.Errorf("expression yields a %s, which cannot be bound", val.describe())
}

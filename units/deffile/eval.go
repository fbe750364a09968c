package deffile

import (
	"fmt"
	"math"

	"github.com/unitspace/unitspace/units"
)

// === Evaluator ===
//
// The evaluator walks the expression AST against an explicit allow-list of
// mathematical constants/functions and the Quantity/Affine/LogScale
// constructors, plus whatever symbols earlier statements have bound. It is
// the replacement for the unrestricted dynamic evaluation the original
// definition interpreter used: definition files may come from untrusted
// sources, so nothing outside the allow-list is reachable.

// Resolver resolves a previously bound symbol by exact name.
type Resolver func(name string) (units.Symbol, bool)

// number is the numeric value of the sub-language. Values derived purely
// from integer/decimal literals stay exact rationals so that they can act
// as exponents in the dimension algebra; anything touched by pi or a
// transcendental function degrades to a float.
type number struct {
	f     float64
	rat   units.Ratio
	exact bool
}

func exactNum(r units.Ratio) number { return number{f: r.Float(), rat: r, exact: true} }

func floatNum(f float64) number { return number{f: f} }

// value is the result of evaluating a node: a number, a quoted string, a
// quantity, or a lambda unit.
type value struct {
	num number
	str string
	q   units.Quantity
	lam *units.LambdaUnit
	// exactly one of these is meaningful, per kind
	kind valueKind
}

type valueKind int

const (
	kindNumber valueKind = iota
	kindString
	kindQuantity
	kindLambda
)

func (v value) describe() string {
	switch v.kind {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindQuantity:
		return "quantity"
	case kindLambda:
		return "lambda unit"
	}
	return "value"
}

// asQuantity widens a number to a dimensionless quantity.
func (v value) asQuantity() (units.Quantity, bool) {
	switch v.kind {
	case kindQuantity:
		return v.q, true
	case kindNumber:
		return units.Dimensionless(v.num.f), true
	}
	return units.Quantity{}, false
}

// Eval evaluates a stand-alone expression (e.g. from the CLI) against a
// resolver. The result is returned as a quantity; plain numbers come back
// dimensionless.
func Eval(expr string, resolve Resolver) (units.Quantity, error) {
	n, err := parseExpr(expr)
	if err != nil {
		return units.Quantity{}, &units.ParseError{Msg: err.Error()}
	}
	v, err := eval(n, resolve)
	if err != nil {
		return units.Quantity{}, err
	}
	q, ok := v.asQuantity()
	if !ok {
		return units.Quantity{}, fmt.Errorf("expression yields a %s, not a quantity", v.describe())
	}
	return q, nil
}

func eval(n node, resolve Resolver) (value, error) {
	switch v := n.(type) {
	case numberNode:
		if r, err := units.ParseRatio(v.text); err == nil {
			return value{kind: kindNumber, num: exactNum(r)}, nil
		}
		// Literal with an exponent suffix; exactness is not preserved.
		return value{kind: kindNumber, num: floatNum(v.value)}, nil

	case stringNode:
		return value{kind: kindString, str: v.value}, nil

	case identNode:
		if val, ok := builtinConstant(v.name); ok {
			return val, nil
		}
		sym, ok := resolve(v.name)
		if !ok {
			return value{}, &units.UndefinedSymbolError{Symbol: v.name}
		}
		return symbolValue(sym), nil

	case callNode:
		return evalCall(v, resolve)

	case unaryNode:
		x, err := eval(v.x, resolve)
		if err != nil {
			return value{}, err
		}
		switch x.kind {
		case kindNumber:
			num := x.num
			if num.exact {
				return value{kind: kindNumber, num: exactNum(num.rat.Neg())}, nil
			}
			return value{kind: kindNumber, num: floatNum(-num.f)}, nil
		case kindQuantity:
			return value{kind: kindQuantity, q: x.q.Neg()}, nil
		}
		return value{}, fmt.Errorf("cannot negate a %s", x.describe())

	case binaryNode:
		return evalBinary(v, resolve)
	}
	return value{}, fmt.Errorf("internal: unknown expression node %T", n)
}

func symbolValue(sym units.Symbol) value {
	switch s := sym.(type) {
	case *units.Constant:
		return value{kind: kindQuantity, q: s.Quantity()}
	case *units.ScalarUnit:
		return value{kind: kindQuantity, q: s.Quantity()}
	case *units.LambdaUnit:
		return value{kind: kindLambda, lam: s}
	}
	return value{}
}

func builtinConstant(name string) (value, bool) {
	if name == "pi" {
		return value{kind: kindNumber, num: floatNum(math.Pi)}, true
	}
	return value{}, false
}

func evalBinary(n binaryNode, resolve Resolver) (value, error) {
	lhs, err := eval(n.lhs, resolve)
	if err != nil {
		return value{}, err
	}
	rhs, err := eval(n.rhs, resolve)
	if err != nil {
		return value{}, err
	}
	// A number on the left of a lambda unit applies the forward map, so
	// 25*degC is the quantity at 25 degrees Celsius. No other arithmetic
	// involves a lambda unit.
	if n.op == "*" && lhs.kind == kindNumber && rhs.kind == kindLambda {
		return value{kind: kindQuantity, q: rhs.lam.FromNumber(lhs.num.f)}, nil
	}
	if lhs.kind == kindString || rhs.kind == kindString ||
		lhs.kind == kindLambda || rhs.kind == kindLambda {
		return value{}, fmt.Errorf("operator %q is not defined for a %s and a %s",
			n.op, lhs.describe(), rhs.describe())
	}

	if n.op == "**" {
		return evalPower(lhs, rhs)
	}

	// Pure numbers stay numbers (and stay exact when both sides are).
	if lhs.kind == kindNumber && rhs.kind == kindNumber {
		return numericBinary(n.op, lhs.num, rhs.num)
	}

	switch n.op {
	case "+", "-":
		lq, _ := lhs.asQuantity()
		rq, _ := rhs.asQuantity()
		var q units.Quantity
		var err error
		if n.op == "+" {
			q, err = lq.Add(rq)
		} else {
			q, err = lq.Sub(rq)
		}
		if err != nil {
			return value{}, err
		}
		return value{kind: kindQuantity, q: q}, nil

	case "*":
		if lhs.kind == kindNumber {
			return value{kind: kindQuantity, q: rhs.q.MulFloat(lhs.num.f)}, nil
		}
		if rhs.kind == kindNumber {
			return value{kind: kindQuantity, q: lhs.q.MulFloat(rhs.num.f)}, nil
		}
		return value{kind: kindQuantity, q: lhs.q.Mul(rhs.q)}, nil

	case "/":
		if lhs.kind == kindNumber {
			return value{kind: kindQuantity, q: units.Dimensionless(lhs.num.f).Div(rhs.q)}, nil
		}
		if rhs.kind == kindNumber {
			return value{kind: kindQuantity, q: lhs.q.DivFloat(rhs.num.f)}, nil
		}
		return value{kind: kindQuantity, q: lhs.q.Div(rhs.q)}, nil
	}
	return value{}, fmt.Errorf("internal: unknown operator %q", n.op)
}

func numericBinary(op string, a, b number) (value, error) {
	if a.exact && b.exact {
		switch op {
		case "+":
			return value{kind: kindNumber, num: exactNum(a.rat.Add(b.rat))}, nil
		case "-":
			return value{kind: kindNumber, num: exactNum(a.rat.Sub(b.rat))}, nil
		case "*":
			return value{kind: kindNumber, num: exactNum(a.rat.Mul(b.rat))}, nil
		case "/":
			if !b.rat.IsZero() {
				return value{kind: kindNumber, num: exactNum(a.rat.Div(b.rat))}, nil
			}
		}
	}
	switch op {
	case "+":
		return value{kind: kindNumber, num: floatNum(a.f + b.f)}, nil
	case "-":
		return value{kind: kindNumber, num: floatNum(a.f - b.f)}, nil
	case "*":
		return value{kind: kindNumber, num: floatNum(a.f * b.f)}, nil
	case "/":
		if b.f == 0 {
			return value{}, fmt.Errorf("division by zero")
		}
		return value{kind: kindNumber, num: floatNum(a.f / b.f)}, nil
	}
	return value{}, fmt.Errorf("internal: unknown operator %q", op)
}

func evalPower(base, exp value) (value, error) {
	if exp.kind != kindNumber {
		return value{}, fmt.Errorf("exponent must be a dimensionless number, not a %s", exp.describe())
	}

	if base.kind == kindNumber {
		if base.num.f < 0 && !(exp.num.exact && exp.num.rat.IsInt()) {
			return value{}, &units.FractionalPowerError{Value: base.num.f, Exponent: exp.num.rat}
		}
		return value{kind: kindNumber, num: floatNum(math.Pow(base.num.f, exp.num.f))}, nil
	}

	if base.kind != kindQuantity {
		return value{}, fmt.Errorf("cannot exponentiate a %s", base.describe())
	}
	if !exp.num.exact {
		if base.q.IsDimensionless() {
			return value{kind: kindNumber, num: floatNum(math.Pow(base.q.Value(), exp.num.f))}, nil
		}
		return value{}, fmt.Errorf("a dimensioned value needs an exact rational exponent")
	}
	q, err := base.q.Pow(exp.num.rat)
	if err != nil {
		return value{}, err
	}
	return value{kind: kindQuantity, q: q}, nil
}

// === Allow-listed calls ===

func evalCall(n callNode, resolve Resolver) (value, error) {
	args := make([]value, len(n.args))
	for i, a := range n.args {
		v, err := eval(a, resolve)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}

	switch n.name {
	case "sqrt":
		return call1(n, args, func(v value) (value, error) {
			return evalPower(v, value{kind: kindNumber, num: exactNum(units.R(1, 2))})
		})
	case "exp":
		return mathCall(n, args, math.Exp)
	case "ln":
		return mathCall(n, args, math.Log)
	case "log10":
		return mathCall(n, args, math.Log10)
	case "Quantity":
		return evalQuantityCtor(n, args)
	case "Affine":
		return evalAffineCtor(n, args)
	case "LogScale":
		return evalLogScaleCtor(n, args)
	}
	return value{}, fmt.Errorf("%q is not an allow-listed function or constructor", n.name)
}

func call1(n callNode, args []value, f func(value) (value, error)) (value, error) {
	if len(args) != 1 {
		return value{}, fmt.Errorf("%s takes 1 argument, got %d", n.name, len(args))
	}
	return f(args[0])
}

func mathCall(n callNode, args []value, f func(float64) float64) (value, error) {
	return call1(n, args, func(v value) (value, error) {
		q, ok := v.asQuantity()
		if !ok || !q.IsDimensionless() {
			return value{}, fmt.Errorf("%s requires a dimensionless argument", n.name)
		}
		return value{kind: kindNumber, num: floatNum(f(q.Value()))}, nil
	})
}

// Quantity(value, "dimension"[, "display"]) builds a quantity from scratch;
// this is how the adjustable base constants are seeded.
func evalQuantityCtor(n callNode, args []value) (value, error) {
	if len(args) != 2 && len(args) != 3 {
		return value{}, fmt.Errorf("Quantity takes (value, \"dimension\"[, \"display\"]), got %d arguments", len(args))
	}
	if args[0].kind != kindNumber {
		return value{}, fmt.Errorf("Quantity value must be a number, not a %s", args[0].describe())
	}
	if args[1].kind != kindString {
		return value{}, fmt.Errorf("Quantity dimension must be a quoted string")
	}
	dim, err := units.ParseExponents(args[1].str)
	if err != nil {
		return value{}, fmt.Errorf("Quantity dimension: %w", err)
	}
	display := units.Exponents{}
	if len(args) == 3 {
		if args[2].kind != kindString {
			return value{}, fmt.Errorf("Quantity display unit must be a quoted string")
		}
		display, err = units.ParseExponents(args[2].str)
		if err != nil {
			return value{}, fmt.Errorf("Quantity display unit: %w", err)
		}
	}
	return value{kind: kindQuantity, q: units.NewQuantity(args[0].num.f, dim, display)}, nil
}

// Affine(scale, offset) builds an offset unit such as degC: the forward map
// is n -> (n+offset)*scale and the inverse recovers the number.
func evalAffineCtor(n callNode, args []value) (value, error) {
	if len(args) != 2 {
		return value{}, fmt.Errorf("Affine takes (scale, offset), got %d arguments", len(args))
	}
	if args[0].kind != kindQuantity {
		return value{}, fmt.Errorf("Affine scale must be a quantity, not a %s", args[0].describe())
	}
	if args[1].kind != kindNumber {
		return value{}, fmt.Errorf("Affine offset must be a number, not a %s", args[1].describe())
	}
	scale := args[0].q
	offset := args[1].num.f
	forward := func(x float64) units.Quantity { return scale.MulFloat(x + offset) }
	inverse := func(q units.Quantity) (float64, error) {
		return q.Value()/scale.Value() - offset, nil
	}
	lam := units.NewLambdaUnit("", forward, inverse, scale.Dimension(), false)
	return value{kind: kindLambda, lam: lam}, nil
}

// LogScale(reference, base, factor) builds a logarithmic unit such as the
// bel: the forward map is n -> reference*base**(n/factor).
func evalLogScaleCtor(n callNode, args []value) (value, error) {
	if len(args) != 3 {
		return value{}, fmt.Errorf("LogScale takes (reference, base, factor), got %d arguments", len(args))
	}
	ref, ok := args[0].asQuantity()
	if !ok {
		return value{}, fmt.Errorf("LogScale reference must be a quantity or number")
	}
	if args[1].kind != kindNumber || args[2].kind != kindNumber {
		return value{}, fmt.Errorf("LogScale base and factor must be numbers")
	}
	base := args[1].num.f
	factor := args[2].num.f
	if base <= 0 || base == 1 || factor == 0 {
		return value{}, fmt.Errorf("LogScale base must be positive and != 1 and factor nonzero")
	}
	forward := func(x float64) units.Quantity {
		return ref.MulFloat(math.Pow(base, x/factor))
	}
	inverse := func(q units.Quantity) (float64, error) {
		ratio := q.Value() / ref.Value()
		if ratio <= 0 {
			return 0, fmt.Errorf("logarithmic unit is undefined for ratio %g", ratio)
		}
		return factor * math.Log(ratio) / math.Log(base), nil
	}
	lam := units.NewLambdaUnit("", forward, inverse, ref.Dimension(), false)
	return value{kind: kindLambda, lam: lam}, nil
}

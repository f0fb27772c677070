package mathexpr

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNotExpression = errors.New("not an arithmetic expression")
	ErrSyntax        = errors.New("malformed expression")
	ErrNonFinite     = errors.New("result is not finite")
)

var (
	glyphs = strings.NewReplacer(
		"÷", "/",
		"×", "*",
		"{", "(", "[", "(", "<", "(",
		"}", ")", "]", ")", ">", ")",
	)
	implicitMul = regexp.MustCompile(`(\d)\(`)
	allowed     = regexp.MustCompile(`^[0-9\s+\-*/().]+$`)
	hasDigit    = regexp.MustCompile(`\d`)
	hasOperator = regexp.MustCompile(`[+\-*/]`)
	onlyOps     = regexp.MustCompile(`^[\s+\-*/]+$`)
)

// Evaluate computes text as an arithmetic expression. ok is false for
// anything that is not a safe, well-formed expression with a finite result.
func Evaluate(text string) (value float64, ok bool) {
	v, err := Parse(text)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Parse is Evaluate with the rejection reason.
func Parse(text string) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = 0, ErrSyntax
		}
	}()

	expr, err := sanitize(text)
	if err != nil {
		return 0, err
	}

	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if err := checkOperators(toks); err != nil {
		return 0, err
	}

	p := &parser{toks: toks}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, ErrSyntax
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

func sanitize(text string) (string, error) {
	expr := strings.TrimSpace(text)
	expr = strings.TrimSpace(strings.TrimSuffix(expr, "="))
	expr = glyphs.Replace(expr)
	expr = implicitMul.ReplaceAllString(expr, "$1*(")

	switch {
	case !allowed.MatchString(expr):
		return "", ErrNotExpression
	case !hasDigit.MatchString(expr):
		return "", ErrNotExpression
	case !hasOperator.MatchString(expr):
		return "", ErrNotExpression
	case onlyOps.MatchString(expr):
		return "", ErrNotExpression
	}
	return expr, nil
}

// checkOperators rejects operator runs, leading operators other than a
// unary minus and trailing operators.
func checkOperators(toks []token) error {
	for i, t := range toks {
		if !t.isOperator() {
			continue
		}
		if i == len(toks)-1 {
			return ErrSyntax
		}
		var prev *token
		if i > 0 {
			prev = &toks[i-1]
		}
		unary := prev == nil || prev.isOperator() || prev.kind == tokLParen
		if !unary {
			continue
		}
		if t.op != '-' {
			return ErrSyntax
		}
		if toks[i+1].isOperator() {
			return ErrSyntax
		}
	}
	return nil
}

// Format renders a result for display: integers without a fraction, other
// values rounded to ten decimal places, and magnitudes from 1e15 up in
// exponent form.
func Format(v float64) string {
	if v == 0 {
		// no "-0"
		v = 0
	}
	if math.Abs(v) >= 1e15 {
		// v*1e10 below would overflow
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	rounded := math.Round(v*1e10) / 1e10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

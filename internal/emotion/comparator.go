package emotion

import (
	"fmt"
	"strconv"
	"strings"
)

type operator int

const (
	opEQ operator = iota
	opGTE
	opLTE
	opGT
	opLT
)

// Two-character operators must be tried before their one-character prefixes.
var operatorPrefixes = []struct {
	token string
	op    operator
}{
	{">=", opGTE},
	{"<=", opLTE},
	{">", opGT},
	{"<", opLT},
	{"=", opEQ},
}

type signalKind int

const (
	numericSignal signalKind = iota
	textSignal
)

// knownSignals maps normalized signal names to their kind.
var knownSignals = map[string]signalKind{
	"responsetimeavg":        numericSignal,
	"responsetimeratio":      numericSignal,
	"consecutiveerrors":      numericSignal,
	"consecutivecorrect":     numericSignal,
	"sessiondurationminutes": numericSignal,
	"hintrequests":           numericSignal,
	"successrate":            numericSignal,
	"energylevel":            textSignal,
}

// normalizeSignal folds "consecutive_errors" and "consecutiveErrors" to the same key.
func normalizeSignal(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

// condition is a parsed "signal <op> operand" test.
type condition struct {
	signal string
	op     operator
	num    float64
	text   string
	kind   signalKind
}

// parseCondition parses a comparator string for the named signal.
func parseCondition(signal, expr string) (condition, error) {
	key := normalizeSignal(signal)
	kind, ok := knownSignals[key]
	if !ok {
		return condition{}, fmt.Errorf("unknown signal %q", signal)
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return condition{}, fmt.Errorf("empty comparator for %q", signal)
	}

	c := condition{signal: key, op: opEQ, kind: kind}
	operand := expr
	hasOp := false
	for _, p := range operatorPrefixes {
		if strings.HasPrefix(expr, p.token) {
			c.op = p.op
			operand = strings.TrimSpace(expr[len(p.token):])
			hasOp = true
			break
		}
	}

	if kind == textSignal {
		if hasOp && c.op != opEQ {
			return condition{}, fmt.Errorf("operator in %q not supported for text signal %q", expr, signal)
		}
		if operand == "" {
			return condition{}, fmt.Errorf("empty operand in %q", expr)
		}
		c.text = operand
		return c, nil
	}

	n, err := strconv.ParseFloat(operand, 64)
	if err != nil {
		return condition{}, fmt.Errorf("comparator %q for %q: %w", expr, signal, err)
	}
	c.num = n
	return c, nil
}

func (c condition) eval(s Signals) bool {
	if c.kind == textSignal {
		v, ok := s.text(c.signal)
		return ok && v == c.text
	}
	v, ok := s.number(c.signal)
	if !ok {
		return false
	}
	switch c.op {
	case opGTE:
		return v >= c.num
	case opLTE:
		return v <= c.num
	case opGT:
		return v > c.num
	case opLT:
		return v < c.num
	case opEQ:
		return v == c.num
	}
	return false
}

func (s Signals) number(key string) (float64, bool) {
	switch key {
	case "responsetimeavg":
		return s.ResponseTimeAvg, true
	case "responsetimeratio":
		return s.ResponseTimeRatio, true
	case "consecutiveerrors":
		return float64(s.ConsecutiveErrors), true
	case "consecutivecorrect":
		return float64(s.ConsecutiveCorrect), true
	case "sessiondurationminutes":
		return s.SessionDurationMinutes, true
	case "hintrequests":
		return float64(s.HintRequests), true
	case "successrate":
		return s.SuccessRate, true
	}
	return 0, false
}

func (s Signals) text(key string) (string, bool) {
	if key == "energylevel" {
		return s.EnergyLevel, s.EnergyLevel != ""
	}
	return "", false
}

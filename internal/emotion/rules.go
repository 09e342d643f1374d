package emotion

import (
	"fmt"
	"sort"
)

// RuleSet is an immutable, pre-parsed snapshot of a rule list in evaluation order.
// Compile once per loaded rule list and reuse it for every detection.
type RuleSet struct {
	rules []compiledRule
}

type compiledRule struct {
	Rule
	conds []condition
	err   error // non-nil rules never match
}

// Compile sorts rules by ascending priority (stable) and parses their conditions.
// Malformed rules are kept but never match; see Problems.
func Compile(rules []Rule) *RuleSet {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	rs := &RuleSet{rules: make([]compiledRule, len(sorted))}
	for i, r := range sorted {
		rs.rules[i] = compileRule(r)
	}
	return rs
}

func compileRule(r Rule) compiledRule {
	cr := compiledRule{Rule: r}
	if !r.Emotion.Valid() {
		cr.err = fmt.Errorf("unknown emotion %q", r.Emotion)
		return cr
	}

	// Condition order does not affect the outcome; sort names for stable diagnostics.
	names := make([]string, 0, len(r.Conditions))
	for name := range r.Conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := parseCondition(name, r.Conditions[name])
		if err != nil {
			cr.err = err
			cr.conds = nil
			return cr
		}
		cr.conds = append(cr.conds, c)
	}
	return cr
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// RuleProblem describes a rule that can never match.
type RuleProblem struct {
	Index    int // position in priority order
	Priority int
	Emotion  Emotion
	Err      error
}

func (p RuleProblem) String() string {
	return fmt.Sprintf("rule #%d (priority %d, %s): %v", p.Index, p.Priority, p.Emotion, p.Err)
}

// Problems lists rules that failed to compile.
func (rs *RuleSet) Problems() []RuleProblem {
	if rs == nil {
		return nil
	}
	var out []RuleProblem
	for i, r := range rs.rules {
		if r.err != nil {
			out = append(out, RuleProblem{Index: i, Priority: r.Priority, Emotion: r.Emotion, Err: r.err})
		}
	}
	return out
}

// match returns the index of the first matching rule, or -1.
func (rs *RuleSet) match(s Signals) int {
	if rs == nil {
		return -1
	}
	for i, r := range rs.rules {
		if r.err != nil {
			continue
		}
		if r.matches(s) {
			return i
		}
	}
	return -1
}

func (r compiledRule) matches(s Signals) bool {
	for _, c := range r.conds {
		if !c.eval(s) {
			return false
		}
	}
	return true
}

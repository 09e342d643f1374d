package emotion

import (
	"math/rand/v2"
	"strings"
)

// Options tune message rendering for a detection.
type Options struct {
	// Name replaces {name} in messages.
	Name string
	// Rand picks among default-ladder messages. Nil always picks the first.
	Rand *rand.Rand
}

// Detect classifies s using the rule set, falling back to the default ladder when no
// rule matches. A nil RuleSet uses the ladder only.
func (rs *RuleSet) Detect(s Signals, opts Options) Detection {
	if i := rs.match(s); i >= 0 {
		r := rs.rules[i]
		conf := r.Confidence
		if conf <= 0 || conf > 1 {
			conf = DefaultRuleConfidence
		}
		msg := r.MessageTemplate
		if msg == "" {
			msg = pickMessage(r.Emotion, nil)
		}
		return Detection{
			Emotion:         r.Emotion,
			Confidence:      conf,
			SuggestedAction: r.SuggestedAction,
			Message:         render(msg, r.Emotion, opts.Name),
			Source:          SourceRule,
			Rule:            i,
		}
	}

	step := runLadder(s)
	return Detection{
		Emotion:         step.Emotion,
		Confidence:      step.Confidence,
		SuggestedAction: step.Action,
		Message:         render(pickMessage(step.Emotion, opts.Rand), step.Emotion, opts.Name),
		Source:          SourceDefault,
		Rule:            -1,
	}
}

// DetectEmotion compiles rules and classifies s in one call.
// Prefer Compile + Detect when the same rules are evaluated repeatedly.
func DetectEmotion(s Signals, rules []Rule) Detection {
	var rs *RuleSet
	if len(rules) > 0 {
		rs = Compile(rules)
	}
	return rs.Detect(s, Options{})
}

func render(tmpl string, e Emotion, name string) string {
	if name == "" {
		name = "friend"
	}
	r := strings.NewReplacer("{name}", name, "{emotion}", string(e))
	return r.Replace(tmpl)
}

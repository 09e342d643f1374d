// Package rulepack loads emotion rules and presentation candidates from YAML
// rule packs. Packs are validated against an embedded JSON Schema before use.
package rulepack

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptly/internal/emotion"
	"github.com/abhisek/adaptly/internal/presentation"
)

// Version is the only rule-pack format version understood.
const Version = 1

const schemaURL = "schema://rulepack.json"

//go:embed schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Pack is a parsed rule pack.
type Pack struct {
	Version       int                `yaml:"version"`
	EmotionRules  []emotion.Rule     `yaml:"emotion_rules"`
	Presentations []PresentationSpec `yaml:"presentations"`
}

// PresentationSpec is a presentation candidate as written in a rule pack.
// A missing is_active means active.
type PresentationSpec struct {
	ID                       string                     `yaml:"id"`
	SkillID                  string                     `yaml:"skill_id"`
	Target                   presentation.TargetProfile `yaml:"target"`
	EstimatedDurationMinutes int                        `yaml:"estimated_duration_minutes"`
	EngagementScore          float64                    `yaml:"engagement_score"`
	EffectivenessScore       float64                    `yaml:"effectiveness_score"`
	IsDefault                bool                       `yaml:"is_default"`
	IsActive                 *bool                      `yaml:"is_active"`
}

// Candidate converts the pack entry into a presentation candidate.
func (p PresentationSpec) Candidate() presentation.Candidate {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return presentation.Candidate{
		ID:                       p.ID,
		SkillID:                  p.SkillID,
		Target:                   p.Target,
		EstimatedDurationMinutes: p.EstimatedDurationMinutes,
		EngagementScore:          p.EngagementScore,
		EffectivenessScore:       p.EffectivenessScore,
		IsDefault:                p.IsDefault,
		IsActive:                 active,
	}
}

// Candidates returns all presentation candidates in file order.
func (p *Pack) Candidates() []presentation.Candidate {
	out := make([]presentation.Candidate, len(p.Presentations))
	for i, ps := range p.Presentations {
		out[i] = ps.Candidate()
	}
	return out
}

// Problems reports emotion rules that pass the schema but can never match,
// such as unknown signal names or unparsable comparators.
func (p *Pack) Problems() []emotion.RuleProblem {
	return emotion.Compile(p.EmotionRules).Problems()
}

// ValidationError is returned when a rule pack does not conform to the schema.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule pack %s is invalid: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Load reads and parses the rule pack at path.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the rule-pack schema and decodes it. source
// names the pack in error messages.
func Parse(source string, data []byte) (*Pack, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", source, err)
	}

	if err := validate(doc); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decode rule pack %s: %w", source, err)
	}
	return &pack, nil
}

func validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	// The validator wants JSON values; YAML maps with non-string keys fail here.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("convert to JSON: %w", err)
	}
	return schema.Validate(inst)
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

//go:embed default.yaml
var defaultPack []byte

// Default returns the built-in starter pack.
func Default() (*Pack, error) {
	return Parse("default.yaml", defaultPack)
}

/*
Package factory provides JSON to Go reduction-rule conversion.

PURPOSE:
  Converts JSON field-rule documents into []hse.FieldRule tables. This
  enables reduction-strategy configuration without code changes - an HSE
  coordinator can override how an indicator rolls up (e.g. treat noise as
  MAX instead of LATEST on a noisy site) via configuration.

JSON SCHEMA:
  {
    "fields": [
      {"field": "workforce", "strategy": "max"},
      {"field": "accidents", "strategy": "sum"},
      {"field": "hse_compliance", "strategy": "average"},
      {"field": "noise_level", "strategy": "latest"}
    ]
  }

KEY FEATURES:
  - Validates field names against the KPI catalog
  - Validates strategies against the known reduction set
  - Rejects duplicate field declarations
  - Falls back to the shipped defaults for omitted fields

USAGE:
  f := factory.NewRuleFactory()
  rules, err := f.ParseRules(jsonString)
  agg := hse.Rollup(entries, rules)

SEE ALSO:
  - hse/reduction.go: FieldRule, strategies, shipped defaults
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RulesJSON is the JSON representation of a reduction-rule table.
type RulesJSON struct {
	Fields []FieldRuleJSON `json:"fields"`
}

// FieldRuleJSON binds one field name to a strategy name.
type FieldRuleJSON struct {
	Field    string `json:"field"`
	Strategy string `json:"strategy"`
}

// =============================================================================
// RULE FACTORY
// =============================================================================

type RuleFactory struct {
	knownFields     map[hse.Field]bool
	knownStrategies map[hse.ReductionStrategy]bool
}

func NewRuleFactory() *RuleFactory {
	f := &RuleFactory{
		knownFields:     make(map[hse.Field]bool),
		knownStrategies: make(map[hse.ReductionStrategy]bool),
	}
	for _, rule := range hse.MonthlyFieldRules() {
		f.knownFields[rule.Field] = true
	}
	for _, s := range []hse.ReductionStrategy{hse.ReduceSum, hse.ReduceMax, hse.ReduceAverage, hse.ReduceLatest} {
		f.knownStrategies[s] = true
	}
	return f
}

// ParseRules parses a JSON rule document against the weekly rollup table.
// Fields omitted from the document keep their default strategy; declared
// fields override it.
func (f *RuleFactory) ParseRules(jsonStr string) ([]hse.FieldRule, error) {
	overrides, err := f.parseOverrides(jsonStr)
	if err != nil {
		return nil, err
	}
	return applyOverrides(hse.DefaultFieldRules(), overrides), nil
}

// ParseMonthlyRules applies the same document to the monthly pole-rollup
// table, which additionally carries the auto-populated report fields.
func (f *RuleFactory) ParseMonthlyRules(jsonStr string) ([]hse.FieldRule, error) {
	overrides, err := f.parseOverrides(jsonStr)
	if err != nil {
		return nil, err
	}
	return applyOverrides(hse.MonthlyFieldRules(), overrides), nil
}

func (f *RuleFactory) parseOverrides(jsonStr string) (map[hse.Field]hse.ReductionStrategy, error) {
	var doc RulesJSON
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, fmt.Errorf("invalid rules JSON: %w", err)
	}

	overrides := make(map[hse.Field]hse.ReductionStrategy, len(doc.Fields))
	for _, fr := range doc.Fields {
		field := hse.Field(fr.Field)
		strategy := hse.ReductionStrategy(fr.Strategy)

		if !f.knownFields[field] {
			return nil, fmt.Errorf("unknown field %q", fr.Field)
		}
		if !f.knownStrategies[strategy] {
			return nil, fmt.Errorf("unknown strategy %q for field %q", fr.Strategy, fr.Field)
		}
		if _, dup := overrides[field]; dup {
			return nil, fmt.Errorf("field %q declared twice", fr.Field)
		}
		overrides[field] = strategy
	}
	return overrides, nil
}

func applyOverrides(rules []hse.FieldRule, overrides map[hse.Field]hse.ReductionStrategy) []hse.FieldRule {
	for i, rule := range rules {
		if s, ok := overrides[rule.Field]; ok {
			rules[i].Strategy = s
		}
	}
	return rules
}

// DefaultRulesJSON renders the shipped default table as JSON, for admin
// UIs that start from the defaults.
func DefaultRulesJSON() string {
	doc := RulesJSON{}
	for _, rule := range hse.DefaultFieldRules() {
		doc.Fields = append(doc.Fields, FieldRuleJSON{
			Field:    string(rule.Field),
			Strategy: string(rule.Strategy),
		})
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return string(out)
}

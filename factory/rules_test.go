package factory_test

import (
	"strings"
	"testing"

	"github.com/warp/hse-engine/factory"
	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// RULE FACTORY TESTS
// =============================================================================

func strategyOf(rules []hse.FieldRule, field hse.Field) hse.ReductionStrategy {
	for _, r := range rules {
		if r.Field == field {
			return r.Strategy
		}
	}
	return ""
}

func TestParseRules_Overrides(t *testing.T) {
	f := factory.NewRuleFactory()

	rules, err := f.ParseRules(`{
		"fields": [
			{"field": "noise_level", "strategy": "max"},
			{"field": "workforce", "strategy": "average"}
		]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strategyOf(rules, hse.FieldNoiseLevel); got != hse.ReduceMax {
		t.Errorf("expected noise override to max, got %s", got)
	}
	if got := strategyOf(rules, hse.FieldWorkforce); got != hse.ReduceAverage {
		t.Errorf("expected workforce override to average, got %s", got)
	}
	// Undeclared fields keep their defaults
	if got := strategyOf(rules, hse.FieldAccidents); got != hse.ReduceSum {
		t.Errorf("expected accidents to stay sum, got %s", got)
	}
}

func TestParseMonthlyRules_Overrides(t *testing.T) {
	f := factory.NewRuleFactory()

	rules, err := f.ParseMonthlyRules(`{
		"fields": [
			{"field": "noise_level", "strategy": "max"},
			{"field": "training_hours", "strategy": "max"}
		]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rules) != len(hse.MonthlyFieldRules()) {
		t.Errorf("expected full monthly table, got %d rules", len(rules))
	}
	if got := strategyOf(rules, hse.FieldNoiseLevel); got != hse.ReduceMax {
		t.Errorf("expected noise override to max, got %s", got)
	}
	// Report-level fields absent from the weekly table are overridable here
	if got := strategyOf(rules, hse.FieldTrainingHours); got != hse.ReduceMax {
		t.Errorf("expected training hours override to max, got %s", got)
	}
	if got := strategyOf(rules, hse.FieldWorkPermits); got != hse.ReduceSum {
		t.Errorf("expected work permits to stay sum, got %s", got)
	}
}

func TestParseRules_EmptyDocumentKeepsDefaults(t *testing.T) {
	f := factory.NewRuleFactory()

	rules, err := f.ParseRules(`{"fields": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != len(hse.DefaultFieldRules()) {
		t.Errorf("expected full default table, got %d rules", len(rules))
	}
}

func TestParseRules_UnknownField(t *testing.T) {
	f := factory.NewRuleFactory()

	_, err := f.ParseRules(`{"fields": [{"field": "unicorns", "strategy": "sum"}]}`)
	if err == nil || !strings.Contains(err.Error(), "unicorns") {
		t.Errorf("expected unknown field error, got %v", err)
	}
}

func TestParseRules_UnknownStrategy(t *testing.T) {
	f := factory.NewRuleFactory()

	_, err := f.ParseRules(`{"fields": [{"field": "workforce", "strategy": "median"}]}`)
	if err == nil || !strings.Contains(err.Error(), "median") {
		t.Errorf("expected unknown strategy error, got %v", err)
	}
}

func TestParseRules_DuplicateField(t *testing.T) {
	f := factory.NewRuleFactory()

	_, err := f.ParseRules(`{"fields": [
		{"field": "workforce", "strategy": "max"},
		{"field": "workforce", "strategy": "sum"}
	]}`)
	if err == nil || !strings.Contains(err.Error(), "twice") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestParseRules_InvalidJSON(t *testing.T) {
	f := factory.NewRuleFactory()

	if _, err := f.ParseRules(`{not json`); err == nil {
		t.Error("expected JSON error")
	}
}

func TestDefaultRulesJSON_RoundTrip(t *testing.T) {
	f := factory.NewRuleFactory()

	rules, err := f.ParseRules(factory.DefaultRulesJSON())
	if err != nil {
		t.Fatalf("shipped defaults should parse: %v", err)
	}
	if got := strategyOf(rules, hse.FieldWorkforce); got != hse.ReduceMax {
		t.Errorf("expected workforce max in defaults, got %s", got)
	}
	if got := strategyOf(rules, hse.FieldHSECompliance); got != hse.ReduceAverage {
		t.Errorf("expected compliance average in defaults, got %s", got)
	}
}

// Package policy implements the business-rule layer consulted by the
// Validator's fifth pass: a small, mutable set of named checks run against
// a whole plan, each producing at most one diagnostic.
package policy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maicrosoft/specmcp/internal/model"
)

// Rule is one named policy check. Check receives the plan under review and
// reports whether it passes; Severity and Message describe the diagnostic
// emitted when it does not.
type Rule struct {
	Name        string
	Description string
	Severity    model.Severity
	Message     string
	Check       func(*model.Plan) bool
}

// RuleSummary is the metadata-only projection returned by ListRules.
type RuleSummary struct {
	Name        string
	Description string
	Severity    model.Severity
}

// Engine evaluates a mutable, ordered set of Rules against a plan. The
// zero value is not usable; construct with NewEngine.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule
}

const (
	maxNodes        = 50
	maxFallbacks    = 3
	testPlanIDPrefx = "test-"
)

// NewEngine builds an Engine pre-loaded with the four built-in rules:
// max_nodes, fallback_limit, no_high_risk_fallback, and trigger_required.
func NewEngine() *Engine {
	e := &Engine{}
	e.registerDefaultRules()
	return e
}

func (e *Engine) registerDefaultRules() {
	e.rules = append(e.rules,
		Rule{
			Name:        "max_nodes",
			Description: fmt.Sprintf("Plan should not exceed %d nodes", maxNodes),
			Severity:    model.SeverityWarning,
			Message:     "plan has more than 50 nodes - consider breaking into sub-plans",
			Check:       func(p *model.Plan) bool { return len(p.Nodes) <= maxNodes },
		},
		Rule{
			Name:        "fallback_limit",
			Description: fmt.Sprintf("Limit code fallbacks to %d per plan", maxFallbacks),
			Severity:    model.SeverityError,
			Message:     "too many code fallbacks - create primitives instead",
			Check: func(p *model.Plan) bool {
				return countFallbacks(p) <= maxFallbacks
			},
		},
		Rule{
			Name:        "no_high_risk_fallback",
			Description: "No code fallback in high-risk plans",
			Severity:    model.SeverityError,
			Message:     "code fallback not allowed in high-risk plans",
			Check: func(p *model.Plan) bool {
				if p.Settings.RiskLevel != model.RiskHigh {
					return true
				}
				return countFallbacks(p) == 0
			},
		},
		Rule{
			Name:        "trigger_required",
			Description: "Production plans should have a trigger",
			Severity:    model.SeverityWarning,
			Message:     "plan has no trigger defined",
			Check: func(p *model.Plan) bool {
				return p.Trigger != nil || strings.HasPrefix(p.Metadata.ID, testPlanIDPrefx)
			},
		},
	)
}

func countFallbacks(p *model.Plan) int {
	n := 0
	for _, node := range p.Nodes {
		if node.HasFallback() {
			n++
		}
	}
	return n
}

// AddRule appends a custom rule.
func (e *Engine) AddRule(r Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
}

// RemoveRule deletes the rule with the given name, reporting whether one
// was found and removed.
func (e *Engine) RemoveRule(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := len(e.rules)
	kept := e.rules[:0:0]
	for _, r := range e.rules {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	e.rules = kept
	return len(e.rules) < before
}

// Evaluate runs every registered rule against plan and returns one
// Violation per failing rule, tagged at the rule's own declared severity.
// A rule whose Check panics is caught and reported as a POLICY_EVAL_ERROR
// error-severity violation rather than aborting the remaining rules.
func (e *Engine) Evaluate(plan *model.Plan) []model.Violation {
	e.mu.RLock()
	rules := make([]Rule, len(e.rules))
	copy(rules, e.rules)
	e.mu.RUnlock()

	var violations []model.Violation
	for _, rule := range rules {
		violations = append(violations, e.runRule(rule, plan)...)
	}
	return violations
}

func (e *Engine) runRule(rule Rule, plan *model.Plan) (violations []model.Violation) {
	defer func() {
		if r := recover(); r != nil {
			violations = []model.Violation{{
				Level:   model.SeverityError,
				Code:    "POLICY_EVAL_ERROR",
				Message: fmt.Sprintf("failed to evaluate rule %s: %v", rule.Name, r),
			}}
		}
	}()

	if rule.Check(plan) {
		return nil
	}

	message := rule.Message
	if message == "" {
		message = rule.Description
	}
	return []model.Violation{{
		Level:   rule.Severity,
		Code:    "POLICY_" + strings.ToUpper(rule.Name),
		Message: message,
	}}
}

// EvaluateSingle runs just the named rule, reporting (pass, found). found
// is false if no rule with that name is registered; a Check panic counts
// as a failing evaluation rather than propagating.
func (e *Engine) EvaluateSingle(plan *model.Plan, name string) (pass bool, found bool) {
	e.mu.RLock()
	var rule Rule
	for _, r := range e.rules {
		if r.Name == name {
			rule = r
			found = true
			break
		}
	}
	e.mu.RUnlock()

	if !found {
		return false, false
	}

	defer func() {
		if recover() != nil {
			pass = false
		}
	}()
	pass = rule.Check(plan)
	return pass, true
}

// ListRules returns the metadata of every registered rule, in registration order.
func (e *Engine) ListRules() []RuleSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]RuleSummary, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, RuleSummary{Name: r.Name, Description: r.Description, Severity: r.Severity})
	}
	return out
}

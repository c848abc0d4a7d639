// Package validate runs the five-layer validation pipeline (syntax,
// registry, interface, dependency, policy) over a user-authored plan and
// produces a model.ValidationReport.
package validate

import (
	"strings"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/policy"
	"github.com/maicrosoft/specmcp/internal/registry"
)

// inputChecker is the slice of Registry behavior the validator depends on,
// narrowed so tests can substitute a fake catalog without touching disk.
type inputChecker interface {
	Exists(id string) bool
	Get(id string) (*model.Primitive, error)
	ValidateInputs(id string, inputs map[string]any) (bool, []string)
}

// Validator runs the pipeline against a Registry and a PolicyEngine.
type Validator struct {
	registry inputChecker
	policy   *policy.Engine
}

// New builds a Validator. If eng is nil, a fresh default-rule policy.Engine
// is created.
func New(reg *registry.Registry, eng *policy.Engine) *Validator {
	if eng == nil {
		eng = policy.NewEngine()
	}
	return &Validator{registry: reg, policy: eng}
}

// Validate runs all five layers against plan and returns the accumulated report.
func (v *Validator) Validate(plan *model.Plan) model.ValidationReport {
	var violations []model.Violation

	violations = append(violations, v.validateSyntax(plan)...)
	violations = append(violations, v.validateRegistry(plan)...)
	violations = append(violations, v.validateInterface(plan)...)
	violations = append(violations, v.validateDependencies(plan)...)
	warnings := v.validatePolicy(plan)

	return model.NewValidationReport(violations, warnings)
}

func (v *Validator) validateSyntax(plan *model.Plan) []model.Violation {
	var violations []model.Violation

	if plan.Metadata.ID == "" {
		violations = append(violations, model.Violation{Level: model.SeverityError, Code: "MISSING_PLAN_ID", Message: "plan must have an id"})
	}
	if plan.Metadata.Name == "" {
		violations = append(violations, model.Violation{Level: model.SeverityError, Code: "MISSING_PLAN_NAME", Message: "plan must have a name"})
	}
	if len(plan.Nodes) == 0 {
		violations = append(violations, model.Violation{Level: model.SeverityError, Code: "EMPTY_PLAN", Message: "plan must have at least one node"})
	}

	seen := make(map[string]struct{}, len(plan.Nodes))
	for _, node := range plan.Nodes {
		if _, dup := seen[node.ID]; dup {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "DUPLICATE_NODE_ID", Message: "duplicate node id: " + node.ID, NodeID: node.ID})
		}
		seen[node.ID] = struct{}{}
	}

	return violations
}

func (v *Validator) validateRegistry(plan *model.Plan) []model.Violation {
	var violations []model.Violation

	for _, node := range plan.Nodes {
		if !node.HasPrimitive() {
			if !node.HasFallback() {
				violations = append(violations, model.Violation{Level: model.SeverityError, Code: "NO_PRIMITIVE_OR_FALLBACK", Message: "node must have a primitive_id or fallback", NodeID: node.ID})
			} else if !plan.Settings.AllowFallback {
				violations = append(violations, model.Violation{Level: model.SeverityError, Code: "FALLBACK_NOT_ALLOWED", Message: "code fallback used but allow_fallback is false", NodeID: node.ID})
			}
			continue
		}

		if !v.registry.Exists(node.PrimitiveID) {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "PRIMITIVE_NOT_FOUND", Message: "primitive not found: " + node.PrimitiveID, NodeID: node.ID})
			continue
		}

		primitive, err := v.registry.Get(node.PrimitiveID)
		if err != nil {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "PRIMITIVE_NOT_FOUND", Message: "primitive not found: " + node.PrimitiveID, NodeID: node.ID})
			continue
		}

		switch primitive.Metadata.Status {
		case model.StatusDeprecated:
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "PRIMITIVE_DEPRECATED", Message: "primitive is deprecated: " + node.PrimitiveID, NodeID: node.ID})
		case model.StatusDraft:
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "PRIMITIVE_DRAFT", Message: "cannot use draft primitive in production: " + node.PrimitiveID, NodeID: node.ID})
		}
	}

	return violations
}

func (v *Validator) validateInterface(plan *model.Plan) []model.Violation {
	var violations []model.Violation

	for _, node := range plan.Nodes {
		if !node.HasPrimitive() || !v.registry.Exists(node.PrimitiveID) {
			continue
		}

		_, errs := v.registry.ValidateInputs(node.PrimitiveID, node.Inputs)
		for _, msg := range errs {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "INTERFACE_VIOLATION", Message: msg, NodeID: node.ID})
		}
	}

	return violations
}

func (v *Validator) validateDependencies(plan *model.Plan) []model.Violation {
	var violations []model.Violation

	nodeIDs := make(map[string]struct{}, len(plan.Nodes))
	for _, node := range plan.Nodes {
		nodeIDs[node.ID] = struct{}{}
	}

	for _, edge := range plan.Edges {
		if _, ok := nodeIDs[edge.FromNode]; !ok {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "INVALID_EDGE_SOURCE", Message: "edge references non-existent node: " + edge.FromNode})
		}
		if _, ok := nodeIDs[edge.ToNode]; !ok {
			violations = append(violations, model.Violation{Level: model.SeverityError, Code: "INVALID_EDGE_TARGET", Message: "edge references non-existent node: " + edge.ToNode})
		}
	}

	if hasCycle(plan) {
		violations = append(violations, model.Violation{Level: model.SeverityError, Code: "CIRCULAR_DEPENDENCY", Message: "plan contains circular dependencies"})
	}

	return violations
}

// hasCycle builds the from→[to] adjacency over every declared node
// (including nodes with no edges at all) and runs depth-first search with
// a visited set and an on-stack set. One report covers the whole plan no
// matter how many distinct cycles exist.
func hasCycle(plan *model.Plan) bool {
	graph := make(map[string][]string, len(plan.Nodes))
	for _, node := range plan.Nodes {
		graph[node.ID] = nil
	}
	for _, edge := range plan.Edges {
		if _, ok := graph[edge.FromNode]; ok {
			graph[edge.FromNode] = append(graph[edge.FromNode], edge.ToNode)
		}
	}

	visited := make(map[string]bool, len(graph))
	onStack := make(map[string]bool, len(graph))

	var dfs func(node string) bool
	dfs = func(node string) bool {
		visited[node] = true
		onStack[node] = true

		for _, neighbor := range graph[node] {
			if !visited[neighbor] {
				if dfs(neighbor) {
					return true
				}
			} else if onStack[neighbor] {
				return true
			}
		}

		onStack[node] = false
		return false
	}

	for nodeID := range graph {
		if !visited[nodeID] {
			if dfs(nodeID) {
				return true
			}
		}
	}

	return false
}

func (v *Validator) validatePolicy(plan *model.Plan) []model.Violation {
	var warnings []model.Violation

	for _, pv := range v.policy.Evaluate(plan) {
		pv.Level = model.SeverityWarning
		warnings = append(warnings, pv)
	}

	fallbackCount := 0
	for _, node := range plan.Nodes {
		if node.HasFallback() {
			fallbackCount++
		}
	}
	if fallbackCount > 0 {
		warnings = append(warnings, model.Violation{Level: model.SeverityWarning, Code: "FALLBACK_USED", Message: "plan uses code fallback(s) - requires review"})
	}

	for _, node := range plan.Nodes {
		if node.HasFallback() && containsUnsafeConstruct(node.Fallback.Code) {
			warnings = append(warnings, model.Violation{Level: model.SeverityWarning, Code: "UNSAFE_CODE", Message: "fallback code contains potentially unsafe constructs", NodeID: node.ID})
		}
	}

	if plan.Settings.RiskLevel == model.RiskHigh {
		warnings = append(warnings, model.Violation{Level: model.SeverityWarning, Code: "HIGH_RISK_PLAN", Message: "plan is marked as high-risk - ensure proper approval"})
	}

	return warnings
}

func containsUnsafeConstruct(code string) bool {
	return strings.Contains(code, "eval(") || strings.Contains(code, "exec(")
}

// ValidateNode checks a single node in isolation, for callers (e.g. an
// interactive plan editor) that want node-level feedback before a
// full-plan validation pass. It runs the NO_PRIMITIVE_OR_FALLBACK and
// PRIMITIVE_NOT_FOUND checks of layer 2 and the interface check of layer
// 3; it does not check lifecycle status (draft/deprecated) or fallback
// gating, and a fallback-only node yields no violations.
func (v *Validator) ValidateNode(node model.PlanNode) []model.Violation {
	if !node.HasPrimitive() && !node.HasFallback() {
		return []model.Violation{{Level: model.SeverityError, Code: "NO_PRIMITIVE_OR_FALLBACK", Message: "node must have a primitive_id or fallback", NodeID: node.ID}}
	}

	if !node.HasPrimitive() {
		return nil
	}

	if !v.registry.Exists(node.PrimitiveID) {
		return []model.Violation{{Level: model.SeverityError, Code: "PRIMITIVE_NOT_FOUND", Message: "primitive not found: " + node.PrimitiveID, NodeID: node.ID}}
	}

	var violations []model.Violation
	_, errs := v.registry.ValidateInputs(node.PrimitiveID, node.Inputs)
	for _, msg := range errs {
		violations = append(violations, model.Violation{Level: model.SeverityError, Code: "INTERFACE_VIOLATION", Message: msg, NodeID: node.ID})
	}
	return violations
}

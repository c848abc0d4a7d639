package plan

import (
	"fmt"

	"github.com/maicrosoft/specmcp/internal/model"
)

// planJSON is the wire shape accepted by validate_plan/compile_plan's "plan"
// argument. model.Plan carries no json tags of its own (it is the
// validator/compiler's internal representation, not a wire format), so this
// DTO plays the same role here that the primitiveYAML/indexEntryYAML types
// play for the registry loader: parse the external shape, then build the
// internal model through its own constructors so every model invariant
// still runs.
type planJSON struct {
	Metadata planMetadataJSON `json:"metadata"`
	Settings planSettingsJSON `json:"settings"`
	Trigger  *triggerJSON     `json:"trigger"`
	Nodes    []planNodeJSON   `json:"nodes"`
	Edges    []edgeJSON       `json:"edges"`
}

type planMetadataJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type planSettingsJSON struct {
	AllowFallback bool   `json:"allow_fallback"`
	RiskLevel     string `json:"risk_level"`
}

type triggerJSON struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

type codeBlockJSON struct {
	Language      string            `json:"language"`
	Code          string            `json:"code"`
	Description   string            `json:"description"`
	InputsSchema  map[string]string `json:"inputs_schema"`
	OutputsSchema map[string]string `json:"outputs_schema"`
}

type planNodeJSON struct {
	ID          string         `json:"id"`
	PrimitiveID string         `json:"primitive_id"`
	Inputs      map[string]any `json:"inputs"`
	Fallback    *codeBlockJSON `json:"fallback"`
}

type edgeJSON struct {
	FromNode  string `json:"from_node"`
	ToNode    string `json:"to_node"`
	Condition string `json:"condition"`
}

// toModel builds a *model.Plan, running every constructor-level invariant
// (risk_level enum, fallback code length/language) along the way. Anything
// those constructors reject surfaces as an error here, before the Validator
// ever sees the plan.
func (p planJSON) toModel() (*model.Plan, error) {
	var trigger *model.Trigger
	if p.Trigger != nil {
		trigger = &model.Trigger{
			Kind:   model.TriggerKind(p.Trigger.Type),
			Config: p.Trigger.Config,
		}
	}

	nodes := make([]model.PlanNode, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		node := model.PlanNode{
			ID:          n.ID,
			PrimitiveID: n.PrimitiveID,
			Inputs:      n.Inputs,
		}
		if n.Fallback != nil {
			fb, err := model.NewCodeBlock(n.Fallback.Language, n.Fallback.Code, n.Fallback.Description, n.Fallback.InputsSchema, n.Fallback.OutputsSchema)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
			node.Fallback = fb
		}
		nodes = append(nodes, node)
	}

	edges := make([]model.Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, model.Edge{FromNode: e.FromNode, ToNode: e.ToNode, Condition: e.Condition})
	}

	settings := model.Settings{
		AllowFallback: p.Settings.AllowFallback,
		RiskLevel:     model.RiskLevel(p.Settings.RiskLevel),
	}
	meta := model.PlanMetadata{ID: p.Metadata.ID, Name: p.Metadata.Name, Version: p.Metadata.Version}

	return model.NewPlan(meta, settings, trigger, nodes, edges)
}

// violationJSON is the wire projection of a model.Violation:
// {level, code, message, node_id}.
type violationJSON struct {
	Level   model.Severity `json:"level"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	NodeID  string         `json:"node_id,omitempty"`
}

func toViolationJSON(vs []model.Violation) []violationJSON {
	out := make([]violationJSON, 0, len(vs))
	for _, v := range vs {
		out = append(out, violationJSON{Level: v.Level, Code: v.Code, Message: v.Message, NodeID: v.NodeID})
	}
	return out
}

// reportJSON is the wire shape returned by validate_plan.
type reportJSON struct {
	Valid    bool            `json:"valid"`
	Errors   []violationJSON `json:"errors"`
	Warnings []violationJSON `json:"warnings"`
}

func toReportJSON(r model.ValidationReport) reportJSON {
	return reportJSON{
		Valid:    r.Valid,
		Errors:   toViolationJSON(r.Violations),
		Warnings: toViolationJSON(r.Warnings),
	}
}

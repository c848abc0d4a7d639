package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maicrosoft/specmcp/internal/driver"
	"github.com/maicrosoft/specmcp/internal/mcp"
)

type validateParams struct {
	Plan json.RawMessage `json:"plan"`
}

// Validate implements the validate_plan tool: parse a plan document and run
// it through all five validator layers, returning the full diagnostic
// report without attempting compilation.
type Validate struct {
	driver *driver.Driver
}

func NewValidate(d *driver.Driver) *Validate {
	return &Validate{driver: d}
}

func (t *Validate) Name() string { return "validate_plan" }

func (t *Validate) Description() string {
	return "Validate a plan document against syntax, registry, interface, dependency, and policy rules. Returns errors and warnings without compiling."
}

func (t *Validate) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "plan": {
      "type": "object",
      "description": "Plan document to validate."
    }
  },
  "required": ["plan"]
}`)
}

func (t *Validate) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p validateParams
	if err := json.Unmarshal(params, &p); err != nil || p.Plan == nil {
		return mcp.ErrorResult("plan is required"), nil
	}

	var doc planJSON
	if err := json.Unmarshal(p.Plan, &doc); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid plan: %v", err)), nil
	}

	planModel, err := doc.toModel()
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("validation failed: %v", err)), nil
	}

	report := t.driver.Validator.Validate(planModel)
	return mcp.JSONResult(toReportJSON(report))
}

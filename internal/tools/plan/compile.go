package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maicrosoft/specmcp/internal/driver"
	"github.com/maicrosoft/specmcp/internal/mcp"
)

const defaultCompileTarget = "n8n"

type compileParams struct {
	Plan   json.RawMessage `json:"plan"`
	Target string          `json:"target,omitempty"`
}

// Compile implements the compile_plan tool: parse a plan document, validate
// it, and only on success lower it into the target workflow-engine
// document. A failed validation is returned as an {error, errors} result
// carrying the error-severity violations (warnings are not included), not
// as a tool error, so the caller sees why compilation was skipped.
type Compile struct {
	driver *driver.Driver
}

func NewCompile(d *driver.Driver) *Compile {
	return &Compile{driver: d}
}

func (t *Compile) Name() string { return "compile_plan" }

func (t *Compile) Description() string {
	return "Validate a plan document and, if valid, compile it into a target workflow engine document (n8n)."
}

func (t *Compile) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "plan": {
      "type": "object",
      "description": "Plan document to compile."
    },
    "target": {
      "type": "string",
      "enum": ["n8n"],
      "description": "Target compilation format.",
      "default": "n8n"
    }
  },
  "required": ["plan"]
}`)
}

func (t *Compile) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p compileParams
	if err := json.Unmarshal(params, &p); err != nil || p.Plan == nil {
		return mcp.ErrorResult("plan is required"), nil
	}
	if p.Target == "" {
		p.Target = defaultCompileTarget
	}

	var doc planJSON
	if err := json.Unmarshal(p.Plan, &doc); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid plan: %v", err)), nil
	}

	planModel, err := doc.toModel()
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("compilation failed: %v", err)), nil
	}

	report, compiled, err := t.driver.ValidateAndCompile(planModel, p.Target)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("compilation failed: %v", err)), nil
	}
	if !report.Valid {
		return mcp.JSONResult(struct {
			Error  string          `json:"error"`
			Errors []violationJSON `json:"errors"`
		}{
			Error:  "plan validation failed",
			Errors: toViolationJSON(report.Violations),
		})
	}

	return mcp.JSONResult(compiled)
}

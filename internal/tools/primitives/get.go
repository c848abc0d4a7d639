package primitives

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maicrosoft/specmcp/internal/mcp"
	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/registry"
)

type getParams struct {
	ID string `json:"id"`
}

// Get implements the get_primitive tool: a full, single-primitive lookup
// including its interface, compilation targets, constraints, and examples.
type Get struct {
	registry *registry.Registry
}

func NewGet(reg *registry.Registry) *Get {
	return &Get{registry: reg}
}

func (t *Get) Name() string { return "get_primitive" }

func (t *Get) Description() string {
	return "Fetch the full definition of a primitive by id, including its interface, compilation targets, constraints, and documentation examples."
}

func (t *Get) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "id": {
      "type": "string",
      "description": "The primitive id, e.g. P001, A012, M003, O001."
    }
  },
  "required": ["id"]
}`)
}

func (t *Get) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	if err := model.ValidatePrimitiveID(p.ID); err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	primitive, err := t.registry.Get(p.ID)
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	return mcp.JSONResult(primitive)
}

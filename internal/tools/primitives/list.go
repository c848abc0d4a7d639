// Package primitives implements the MCP tools that expose the Registry:
// listing, fetching, and searching the primitive catalog.
package primitives

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maicrosoft/specmcp/internal/mcp"
	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/registry"
)

type listParams struct {
	Kind     string `json:"kind,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

// List implements the list_primitives tool: a filtered listing of the
// registry index, metadata-only.
type List struct {
	registry *registry.Registry
}

func NewList(reg *registry.Registry) *List {
	return &List{registry: reg}
}

func (t *List) Name() string { return "list_primitives" }

func (t *List) Description() string {
	return "List primitives in the catalog, optionally filtered by kind (particle, atom, molecule, organism), category, and lifecycle status."
}

func (t *List) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "kind": {
      "type": "string",
      "enum": ["particle", "atom", "molecule", "organism"],
      "description": "Restrict the listing to one kind of primitive."
    },
    "category": {
      "type": "string",
      "description": "Restrict to a category, e.g. 'data', 'transform', 'control'."
    },
    "status": {
      "type": "string",
      "enum": ["draft", "stable", "deprecated", "any"],
      "description": "Restrict to a lifecycle status (default: stable). Pass 'any' to include every status."
    }
  }
}`)
}

func (t *List) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p listParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return mcp.ErrorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
	}

	status := p.Status
	switch status {
	case "":
		status = string(model.StatusStable)
	case "any":
		status = ""
	}

	entries, err := t.registry.List(model.Kind(p.Kind), model.Category(p.Category), model.Status(status))
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	return mcp.JSONResult(entries)
}

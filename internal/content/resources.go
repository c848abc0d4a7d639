package content

import "github.com/maicrosoft/specmcp/internal/mcp"

// --- specmcp://primitive-model resource ---

// PrimitiveModelResource exposes the primitive taxonomy and the plan/
// compiler data model as a reference resource. LLMs drafting a plan read
// this to understand what a node, edge, and primitive id mean.
type PrimitiveModelResource struct{}

func (r *PrimitiveModelResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "specmcp://primitive-model",
		Name:        "Primitive Model Reference",
		Description: "Reference for the primitive taxonomy (particle/atom/molecule/organism), the plan document shape, and the n8n compilation target",
		MimeType:    "text/markdown",
	}
}

func (r *PrimitiveModelResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "specmcp://primitive-model",
				MimeType: "text/markdown",
				Text:     primitiveModelContent,
			},
		},
	}, nil
}

// --- specmcp://validation-layers resource ---

// ValidationLayersResource exposes the five validator layers and the
// built-in policy rules as a reference resource.
type ValidationLayersResource struct{}

func (r *ValidationLayersResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "specmcp://validation-layers",
		Name:        "Validation Layers Reference",
		Description: "Reference of all five validator layers, their diagnostic codes, and the policy engine's built-in rules",
		MimeType:    "text/markdown",
	}
}

func (r *ValidationLayersResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "specmcp://validation-layers",
				MimeType: "text/markdown",
				Text:     validationLayersContent,
			},
		},
	}, nil
}

// --- specmcp://tool-reference resource ---

// ToolReferenceResource exposes a quick-reference card for the five MCP
// tools this server registers.
type ToolReferenceResource struct{}

func (r *ToolReferenceResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "specmcp://tool-reference",
		Name:        "SpecMCP Tool Reference",
		Description: "Quick-reference card for all SpecMCP tools with parameters and usage notes",
		MimeType:    "text/markdown",
	}
}

func (r *ToolReferenceResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "specmcp://tool-reference",
				MimeType: "text/markdown",
				Text:     toolReferenceContent,
			},
		},
	}, nil
}

// --- Static content ---

const primitiveModelContent = `# Primitive Model Reference

## Primitive Kinds

A primitive id matches ` + "`^[PAMO][0-9]{3}$`" + `. The leading letter is the kind
and must match the file's declared kind:

| Letter | Kind | Composition |
|--------|------|-------------|
| P | particle | atomic, no composition |
| A | atom | composed of particles |
| M | molecule | composed of atoms |
| O | organism | composed of molecules |

## Primitive Attributes

### Metadata
id, name, kind, version, status (` + "`draft`" + `/` + "`stable`" + `/` + "`deprecated`" + `),
description, category (one of ` + "`data, transform, control, storage, messaging, ai, observability, notify`" + `),
tags, and (for A/M/O) composition references to lower-kind primitives.

### Interface
Ordered input fields and output fields, plus a set of declared error codes.
Each input field has: name (unique within the primitive), type
(` + "`string, number, boolean, object, array, any, enum`" + `), enum values (only for
` + "`enum`" + `), required flag, default, description, and an opaque validation
constraints bag.

### Compilation targets
A map from target name (currently only ` + "`n8n`" + `) to a descriptor with at
least ` + "`node_type`" + ` and an optional ` + "`version`" + `.

### Constraints
` + "`timeout`" + ` (string), ` + "`retry_count`" + ` (0-10), ` + "`idempotent`" + ` (bool).

## Plan Document Shape

A plan has metadata (id, name, version), settings
(` + "`allow_fallback`" + `, ` + "`risk_level`" + `), an optional trigger
(` + "`webhook`" + `/` + "`schedule`" + `/` + "`manual`" + `/` + "`event`" + ` plus a config bag), an ordered node
list, and an ordered edge list.

A node has a unique id, either a ` + "`primitive_id`" + ` reference or a fallback
code block (never both, never neither — ` + "`NO_PRIMITIVE_OR_FALLBACK`" + `), and an
inputs map. A fallback block is ` + "`{language: python|javascript, code (<=500 chars), description, inputs_schema, outputs_schema}`" + `.

An edge is ` + "`{from_node, to_node, condition?}`" + `. Conditions are preserved
on the model but are not yet consumed by the compiler.

## Reference expressions

Any string input beginning with ` + "`{{`" + ` is a deferred reference and bypasses
static type checking. The canonical form is ` + "`{{ ref: NODE.FIELD }}`" + `
(` + "`FIELD`" + ` defaults to ` + "`body`" + ` when omitted). The compiler rewrites a
resolved reference into the target engine's own expression syntax, e.g.
` + "`$('{{ $node[\"NODE\"].json.FIELD }}')`" + ` for the n8n target.

## n8n Compilation Target

Every compiled document has ` + "`{name, nodes[], connections{}, active: false, settings, versionId, meta}`" + `.
A synthetic trigger node is always emitted first (manual/webhook/schedule/event).
Each plan node lowers via a declarative parameter map or, for the five
control-flow-ish primitives (transform, branch, loop, llm_call, log), a
custom handler that synthesizes inline pseudocode. Primitives with no
dispatch entry fall back to the primitive's own declared ` + "`n8n`" + ` compilation
target, and failing that, a generic pass-through code node. Fallback-
bearing nodes always compile to code nodes; python fallbacks get a stub
with a warning comment, since the target engine has no native python
execution.
`

const validationLayersContent = `# Validation Layers Reference

` + "`validate_plan`" + ` runs five layers unconditionally, in order, and returns a
single report. Violations appear in layer order, then plan/edge order
within a layer. A report is ` + "`valid`" + ` iff it contains no error-severity
violation; warnings never flip that flag.

## Layer 1 — Syntax

| Code | Meaning |
|------|---------|
| MISSING_PLAN_ID | plan.metadata.id is empty |
| MISSING_PLAN_NAME | plan.metadata.name is empty |
| EMPTY_PLAN | plan has zero nodes |
| DUPLICATE_NODE_ID | two nodes share an id |

## Layer 2 — Registry

| Code | Meaning |
|------|---------|
| NO_PRIMITIVE_OR_FALLBACK | node has neither a primitive_id nor a fallback |
| FALLBACK_NOT_ALLOWED | node has only a fallback but settings.allow_fallback is false |
| PRIMITIVE_NOT_FOUND | primitive_id is not in the registry |
| PRIMITIVE_DEPRECATED | referenced primitive's status is deprecated |
| PRIMITIVE_DRAFT | referenced primitive's status is draft (no exemption; strict) |

## Layer 3 — Interface

| Code | Meaning |
|------|---------|
| INTERFACE_VIOLATION | a node's inputs fail Registry.ValidateInputs (missing required field, type mismatch, bad enum value) |

## Layer 4 — Dependencies

| Code | Meaning |
|------|---------|
| INVALID_EDGE_SOURCE | edge.from_node names an unknown node |
| INVALID_EDGE_TARGET | edge.to_node names an unknown node |
| CIRCULAR_DEPENDENCY | the edge relation contains a cycle (reported once regardless of cycle count) |

## Layer 5 — Policy

All policy engine outputs are filed as warnings regardless of their
declared severity hint, plus these heuristics:

| Code | Meaning |
|------|---------|
| POLICY_<RULE_NAME> | a named policy rule's predicate returned false |
| POLICY_EVAL_ERROR | a policy predicate panicked/errored |
| FALLBACK_USED | the plan uses one or more code fallbacks |
| UNSAFE_CODE | a fallback's code contains ` + "`eval(`" + ` or ` + "`exec(`" + ` |
| HIGH_RISK_PLAN | settings.risk_level is high |

## Built-in Policy Rules

| Name | Predicate | Severity hint |
|------|-----------|---------------|
| max_nodes | \|nodes\| <= 50 | warning |
| fallback_limit | fallback-bearing nodes <= 3 | error-hint |
| no_high_risk_fallback | risk_level != high OR no fallback present | error-hint |
| trigger_required | trigger is set OR plan id starts with "test-" | warning |

Severity hints are informational only: every rule output is filed as a
warning at the validator seam (a deliberate, documented behavior, not a
bug). Rules can be added or removed at runtime via the policy engine's
` + "`AddRule`" + `/` + "`RemoveRule`" + `.
`

const toolReferenceContent = `# SpecMCP Tool Quick Reference

## Primitive Catalog Tools

### list_primitives
List the catalog, optionally filtered.
- **Optional**: kind (particle/atom/molecule/organism), category, status (default: stable; pass "any" for every status)
- **Returns**: metadata-only summaries

### get_primitive
Fetch one primitive by id.
- **Required**: id (e.g. "P001")
- **Returns**: the full primitive definition, or a not-found error

### search_primitives
Ranked free-text search over the catalog.
- **Required**: query
- **Optional**: limit (default 20)
- **Returns**: scored hits ({id, name, description, score}), highest first

## Plan Tools

### validate_plan
Run all five validation layers over a plan document.
- **Required**: plan
- **Returns**: ` + "`{valid, errors, warnings}`" + `

### compile_plan
Validate a plan and, only if valid, lower it to a target engine document.
- **Required**: plan
- **Optional**: target (default "n8n")
- **Returns**: the compiled document, or ` + "`{error, errors}`" + ` with the validation errors if invalid
`

// Package content provides MCP prompts and resources for the SpecMCP server.
package content

import "github.com/maicrosoft/specmcp/internal/mcp"

// --- author-primitive prompt ---

// AuthorPrimitivePrompt is an actionable prompt that walks a user through
// authoring a new primitive definition file.
type AuthorPrimitivePrompt struct{}

func (p *AuthorPrimitivePrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "author-primitive",
		Description: "Interactive guide for authoring a new primitive definition (particle, atom, molecule, or organism).",
		Arguments: []mcp.PromptArgument{
			{Name: "kind", Description: "particle, atom, molecule, or organism", Required: false},
		},
	}
}

func (p *AuthorPrimitivePrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	kind := arguments["kind"]
	return &mcp.PromptsGetResult{
		Description: "Guide for authoring a new primitive",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(buildAuthorPrimitiveGuide(kind)),
			},
		},
	}, nil
}

func buildAuthorPrimitiveGuide(kind string) string {
	focus := ""
	switch kind {
	case "particle":
		focus = "\nThe user asked specifically about a **particle**: an atomic primitive with no composition field. Skip the composition section below.\n"
	case "atom", "molecule", "organism":
		focus = "\nThe user asked specifically about an **" + kind + "**: it must declare a `composition` list of lower-kind primitive ids it builds on.\n"
	}

	return `# Author a Primitive
` + focus + `
You are helping a user define a new reusable workflow primitive. A
primitive is a YAML document loaded by the registry and referenced from
plans by id.

## Step 1: Choose an id and kind

The id must match ` + "`^[PAMO][0-9]{3}$`" + `. The leading letter fixes the kind
and must match what you declare in ` + "`metadata.type`" + `:

- ` + "`P`" + ` particle — atomic, no composition
- ` + "`A`" + ` atom — composed of particles
- ` + "`M`" + ` molecule — composed of atoms
- ` + "`O`" + ` organism — composed of molecules

Check ` + "`list_primitives`" + ` or ` + "`search_primitives`" + ` first to avoid a
duplicate id or an unnecessary near-duplicate of an existing primitive.

## Step 2: Fill in metadata

` + "`id, name, type (the kind), version, status (draft|stable|deprecated), description`" + `,
an optional ` + "`category`" + ` from the closed set
(` + "`data, transform, control, storage, messaging, ai, observability, notify`" + `),
and a free-form ` + "`tags`" + ` list.

## Step 3: Declare the interface

List ordered ` + "`inputs`" + ` (name, type, required, default, description,
enum_values if type is enum, an optional validation bag) and ordered
` + "`outputs`" + `. Input names must be unique. Declare any error codes the
primitive can raise under ` + "`interface.errors`" + `, each with a description
and a retryable flag.

## Step 4: Declare compilation targets

Under ` + "`compilation_targets`" + `, add at least an ` + "`n8n`" + ` entry with
` + "`node_type`" + ` (and optionally ` + "`version`" + `). This is what the compiler
falls back to when the primitive has no entry in its own built-in
dispatch table.

## Step 5: Constraints and examples

Set ` + "`constraints.timeout`" + `, ` + "`constraints.retry_count`" + ` (0-10), and
` + "`constraints.idempotent`" + `. Add one or two ` + "`examples`" + ` (input/output
pairs) for documentation tooling — these are never consulted by the
validator or compiler.

## Step 6: Register it

Add an entry to ` + "`_meta/registry.yaml`" + ` under the right section
(` + "`particles|atoms|molecules|organisms`" + `) with ` + "`id, path, name, category, status, tags`" + `,
pointing at the new file's relative path. Then confirm it loads with
` + "`get_primitive`" + `.
`
}

// --- author-plan prompt ---

// AuthorPlanPrompt is an actionable prompt that walks a user through
// drafting a plan that references the primitive catalog.
type AuthorPlanPrompt struct{}

func (p *AuthorPlanPrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "author-plan",
		Description: "Interactive guide for drafting a workflow plan against the primitive catalog, before validating and compiling it.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *AuthorPlanPrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for drafting a plan",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(authorPlanGuide),
			},
		},
	}, nil
}

const authorPlanGuide = `# Author a Plan

You are helping a user draft a plan: a DAG of nodes that each invoke a
catalog primitive (or, sparingly, an inline code fallback), wired together
with edges.

## Step 1: Find candidate primitives

Use ` + "`search_primitives`" + ` with a free-text description of each step
("send a http request", "cache lookup", "branch on a condition"). Prefer
` + "`stable`" + ` primitives; a ` + "`draft`" + ` or ` + "`deprecated`" + ` reference always
fails validation. Use ` + "`get_primitive`" + ` to confirm a candidate's exact
input field names, types, and required flags before wiring it into a node.

## Step 2: Draft nodes

Give every node a unique id and either a ` + "`primitive_id`" + ` or a fallback
code block — never both, never neither. Fill ` + "`inputs`" + ` with values
matching the primitive's declared interface. A string value can reference
another node's output with ` + "`{{ ref: NODE_ID.FIELD }}`" + ` (` + "`FIELD`" + ` defaults
to ` + "`body`" + `); this bypasses static type checking since the real value is
only known once the reference resolves.

Reach for a fallback only when no primitive fits, and only if the plan's
` + "`settings.allow_fallback`" + ` is (or will be) true — otherwise the node
fails validation with ` + "`FALLBACK_NOT_ALLOWED`" + `. Fallback code is capped at
500 characters and restricted to ` + "`python`" + ` or ` + "`javascript`" + `.

## Step 3: Wire edges and a trigger

Add an edge ` + "`{from_node, to_node}`" + ` for every dependency; an optional
` + "`condition`" + ` string is preserved but not yet consumed by the compiler.
Plan nodes with no incoming edge become the roots the compiled trigger
connects to directly. Set a ` + "`trigger`" + ` (` + "`manual`" + `, ` + "`webhook`" + `,
` + "`schedule`" + `, or ` + "`event`" + `, with its config) — omitting one defaults to
` + "`manual`" + ` at compile time.

## Step 4: Validate, then compile

Call ` + "`validate_plan`" + ` first. Fix every error (warnings don't block
compilation but are worth reviewing — ` + "`FALLBACK_USED`" + `, ` + "`UNSAFE_CODE`" + `,
and ` + "`HIGH_RISK_PLAN`" + ` especially). Only call ` + "`compile_plan`" + ` once
` + "`validate_plan`" + ` reports ` + "`valid: true`" + `; compiling an invalid plan
returns its validation errors instead of a compiled document.
`

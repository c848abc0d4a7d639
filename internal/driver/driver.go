// Package driver wires the Registry, Validator, and Compiler into a single
// façade for external surfaces (MCP tools, a CLI, an RPC handler) to
// consume without knowing how the three subsystems are constructed.
package driver

import (
	"fmt"

	"github.com/maicrosoft/specmcp/internal/compiler"
	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/policy"
	"github.com/maicrosoft/specmcp/internal/registry"
	"github.com/maicrosoft/specmcp/internal/validate"
)

// Driver composes a Registry, a Validator, a PolicyEngine, and a Compiler
// against a single primitives directory.
type Driver struct {
	Registry  *registry.Registry
	Policy    *policy.Engine
	Validator *validate.Validator
	Compiler  *compiler.Compiler
}

// New builds a Driver rooted at primitivesDir.
func New(primitivesDir string) *Driver {
	reg := registry.New(primitivesDir)
	eng := policy.NewEngine()
	return &Driver{
		Registry:  reg,
		Policy:    eng,
		Validator: validate.New(reg, eng),
		Compiler:  compiler.New(reg),
	}
}

// ValidateAndCompile validates plan and, only if it is valid, compiles it
// for target. It returns the report in both outcomes so a caller can
// surface why compilation was skipped.
func (d *Driver) ValidateAndCompile(plan *model.Plan, target string) (model.ValidationReport, *compiler.Document, error) {
	report := d.Validator.Validate(plan)
	if !report.Valid {
		return report, nil, nil
	}

	doc, err := d.Compiler.Compile(plan, target)
	if err != nil {
		return report, nil, fmt.Errorf("compiling plan %s: %w", plan.Metadata.ID, err)
	}
	return report, doc, nil
}

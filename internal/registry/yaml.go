// Package registry wraps the Loader with a lazy, memoized id → Primitive
// cache, and exposes the query surface (get, list, search, interface
// lookup, input type-checking) consumed by the Validator and Compiler.
package registry

import (
	"fmt"

	"github.com/maicrosoft/specmcp/internal/model"
)

// The types in this file are the YAML decoding shape for primitive
// definition files and the registry index. They are intentionally
// permissive — extra keys are tolerated and ignored by yaml.v3's default
// decoding, and an unrecognized input type defaults to "string".

type indexEntryYAML struct {
	ID       string   `yaml:"id"`
	Path     string   `yaml:"path"`
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Status   string   `yaml:"status"`
	Tags     []string `yaml:"tags"`
}

type registryIndexYAML struct {
	Particles []indexEntryYAML `yaml:"particles"`
	Atoms     []indexEntryYAML `yaml:"atoms"`
	Molecules []indexEntryYAML `yaml:"molecules"`
	Organisms []indexEntryYAML `yaml:"organisms"`
}

func (r registryIndexYAML) section(kind model.Kind) []indexEntryYAML {
	switch kind {
	case model.KindParticle:
		return r.Particles
	case model.KindAtom:
		return r.Atoms
	case model.KindMolecule:
		return r.Molecules
	case model.KindOrganism:
		return r.Organisms
	default:
		return nil
	}
}

type inputFieldYAML struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	EnumValues  []string       `yaml:"enum_values"`
	Required    bool           `yaml:"required"`
	Default     any            `yaml:"default"`
	Description string         `yaml:"description"`
	Validation  map[string]any `yaml:"validation"`
}

func (f inputFieldYAML) toModel() model.InputField {
	return model.InputField{
		Name:        f.Name,
		Type:        normalizeFieldType(f.Type),
		EnumValues:  f.EnumValues,
		Required:    f.Required,
		Default:     f.Default,
		Description: f.Description,
		Validation:  f.Validation,
	}
}

type outputFieldYAML struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

func (f outputFieldYAML) toModel() model.OutputField {
	return model.OutputField{
		Name:        f.Name,
		Type:        normalizeFieldType(f.Type),
		Description: f.Description,
	}
}

type errorDefYAML struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Retryable   bool   `yaml:"retryable"`
}

func (e errorDefYAML) toModel() model.ErrorDef {
	return model.ErrorDef{Code: e.Code, Description: e.Description, Retryable: e.Retryable}
}

type interfaceYAML struct {
	Inputs  []inputFieldYAML  `yaml:"inputs"`
	Outputs []outputFieldYAML `yaml:"outputs"`
	Errors  []errorDefYAML    `yaml:"errors"`
}

func (i interfaceYAML) toModel() model.Interface {
	inputs := make([]model.InputField, 0, len(i.Inputs))
	for _, in := range i.Inputs {
		inputs = append(inputs, in.toModel())
	}
	outputs := make([]model.OutputField, 0, len(i.Outputs))
	for _, out := range i.Outputs {
		outputs = append(outputs, out.toModel())
	}
	errs := make([]model.ErrorDef, 0, len(i.Errors))
	for _, e := range i.Errors {
		errs = append(errs, e.toModel())
	}
	return model.Interface{Inputs: inputs, Outputs: outputs, Errors: errs}
}

type compilationTargetYAML struct {
	NodeType string         `yaml:"node_type"`
	Version  string         `yaml:"version"`
	Extra    map[string]any `yaml:",inline"`
}

type constraintsYAML struct {
	Timeout    string `yaml:"timeout"`
	RetryCount int    `yaml:"retry_count"`
	Idempotent bool   `yaml:"idempotent"`
}

type compositionStepYAML struct {
	Particle string         `yaml:"particle"`
	Inputs   map[string]any `yaml:"inputs"`
	Outputs  map[string]any `yaml:"outputs"`
}

type exampleYAML struct {
	Name            string         `yaml:"name"`
	Inputs          map[string]any `yaml:"inputs"`
	ExpectedOutputs map[string]any `yaml:"expected_outputs"`
}

type metadataYAML struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	Version       string   `yaml:"version"`
	Status        string   `yaml:"status"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Tags          []string `yaml:"tags"`
	GeneratedFrom []string `yaml:"generated_from"`
	DependsOn     []string `yaml:"depends_on"`
}

type primitiveYAML struct {
	Metadata           metadataYAML                     `yaml:"metadata"`
	Interface          interfaceYAML                    `yaml:"interface"`
	CompilationTargets map[string]compilationTargetYAML `yaml:"compilation_targets"`
	Constraints        constraintsYAML                  `yaml:"constraints"`
	Composition        []compositionStepYAML            `yaml:"composition"`
	Examples           []exampleYAML                     `yaml:"examples"`
}

// normalizeFieldType maps a raw YAML type string to a known FieldType,
// defaulting to FieldString for anything unrecognized.
func normalizeFieldType(raw string) model.FieldType {
	switch model.FieldType(raw) {
	case model.FieldString, model.FieldNumber, model.FieldBoolean, model.FieldObject, model.FieldArray, model.FieldAny, model.FieldEnum:
		return model.FieldType(raw)
	default:
		return model.FieldString
	}
}

// toPrimitive converts the decoded YAML document into a validated
// model.Primitive, constructing it through model.NewPrimitive so the id
// regex and duplicate-input-name invariants are enforced uniformly.
func (doc primitiveYAML) toPrimitive() (*model.Primitive, error) {
	targets := make(map[string]model.CompilationTarget, len(doc.CompilationTargets))
	for name, t := range doc.CompilationTargets {
		targets[name] = model.CompilationTarget{NodeType: t.NodeType, Version: t.Version, Extra: t.Extra}
	}

	composition := make([]model.CompositionStep, 0, len(doc.Composition))
	for _, c := range doc.Composition {
		composition = append(composition, model.CompositionStep{Particle: c.Particle, Inputs: c.Inputs, Outputs: c.Outputs})
	}

	examples := make([]model.Example, 0, len(doc.Examples))
	for _, e := range doc.Examples {
		examples = append(examples, model.Example{Name: e.Name, Inputs: e.Inputs, ExpectedOutputs: e.ExpectedOutputs})
	}

	meta := model.Metadata{
		ID:            doc.Metadata.ID,
		Name:          doc.Metadata.Name,
		Version:       doc.Metadata.Version,
		Status:        model.Status(doc.Metadata.Status),
		Description:   doc.Metadata.Description,
		Category:      model.Category(doc.Metadata.Category),
		Tags:          doc.Metadata.Tags,
		GeneratedFrom: doc.Metadata.GeneratedFrom,
		DependsOn:     doc.Metadata.DependsOn,
	}
	if doc.Metadata.Type != "" {
		meta.Kind = model.Kind(doc.Metadata.Type)
	}

	constraints := model.Constraints{
		Timeout:    doc.Constraints.Timeout,
		RetryCount: doc.Constraints.RetryCount,
		Idempotent: doc.Constraints.Idempotent,
	}
	if constraints.Timeout == "" {
		constraints.Timeout = "30s"
	}

	p, err := model.NewPrimitive(meta, doc.Interface.toModel(), targets, constraints, composition, examples)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return p, nil
}

// Package model defines the immutable data types shared by the registry,
// validator, and compiler: primitives, plans, and validation diagnostics.
package model

import (
	"fmt"
	"regexp"
)

// Kind is the leading-letter classification of a primitive id.
type Kind string

const (
	KindParticle Kind = "particle"
	KindAtom     Kind = "atom"
	KindMolecule Kind = "molecule"
	KindOrganism Kind = "organism"
)

var kindByPrefix = map[byte]Kind{
	'P': KindParticle,
	'A': KindAtom,
	'M': KindMolecule,
	'O': KindOrganism,
}

// Status is a primitive's lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusStable     Status = "stable"
	StatusDeprecated Status = "deprecated"
)

// Category is one of a closed set of primitive categories.
type Category string

const (
	CategoryData          Category = "data"
	CategoryTransform     Category = "transform"
	CategoryControl       Category = "control"
	CategoryStorage       Category = "storage"
	CategoryMessaging     Category = "messaging"
	CategoryAI            Category = "ai"
	CategoryObservability Category = "observability"
	CategoryNotify        Category = "notify"
)

// FieldType is the declared type of an input or output field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
	FieldAny     FieldType = "any"
	FieldEnum    FieldType = "enum"
)

var primitiveIDPattern = regexp.MustCompile(`^[PAMO][0-9]{3}$`)

// ValidatePrimitiveID reports whether id matches the required `^[PAMO][0-9]{3}$`
// shape and that its leading letter implies a known Kind.
func ValidatePrimitiveID(id string) error {
	if !primitiveIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid primitive id %q", ErrMalformedPrimitive, id)
	}
	return nil
}

// KindOf returns the Kind implied by a primitive id's leading letter.
// The caller must have already validated the id with ValidatePrimitiveID.
func KindOf(id string) Kind {
	if id == "" {
		return ""
	}
	return kindByPrefix[id[0]]
}

// InputField describes one named input of a primitive's interface.
type InputField struct {
	Name        string
	Type        FieldType
	EnumValues  []string
	Required    bool
	Default     any
	Description string
	Validation  map[string]any
}

// OutputField describes one named output of a primitive's interface.
type OutputField struct {
	Name        string
	Type        FieldType
	Description string
}

// ErrorDef describes one error code a primitive may raise.
type ErrorDef struct {
	Code        string
	Description string
	Retryable   bool
}

// Interface is the ordered input/output/error contract of a primitive.
type Interface struct {
	Inputs  []InputField
	Outputs []OutputField
	Errors  []ErrorDef
}

// CompilationTarget is an opaque per-target descriptor. Only NodeType is
// required; the remaining fields are carried through for whichever custom
// handler or parameter map a given target defines.
type CompilationTarget struct {
	NodeType string
	Version  string
	Extra    map[string]any
}

// Constraints are declarative execution constraints a target engine may honor.
type Constraints struct {
	Timeout    string
	RetryCount int
	Idempotent bool
}

// CompositionStep records one particle used to build a higher-kind primitive,
// along with how its inputs/outputs are wired.
type CompositionStep struct {
	Particle string
	Inputs   map[string]any
	Outputs  map[string]any
}

// Example is a documentation-only input/output pair.
type Example struct {
	Name            string
	Inputs          map[string]any
	ExpectedOutputs map[string]any
}

// Metadata holds the descriptive, non-interface attributes of a primitive.
type Metadata struct {
	ID            string
	Name          string
	Kind          Kind
	Version       string
	Status        Status
	Description   string
	Category      Category
	Tags          []string
	GeneratedFrom []string
	DependsOn     []string
}

// Primitive is a single catalog entry: a particle, atom, molecule, or organism.
type Primitive struct {
	Metadata           Metadata
	Interface          Interface
	CompilationTargets map[string]CompilationTarget
	Constraints        Constraints
	Composition        []CompositionStep
	Examples           []Example
}

// Summary is the metadata-only projection of a Primitive returned by
// listing and search operations.
type Summary struct {
	ID          string
	Name        string
	Kind        Kind
	Category    Category
	Status      Status
	Description string
	Tags        []string
}

// NewPrimitive validates and constructs a Primitive, enforcing invariant 2
// (unique input field names within the primitive) and the id/kind match.
func NewPrimitive(meta Metadata, iface Interface, targets map[string]CompilationTarget, constraints Constraints, composition []CompositionStep, examples []Example) (*Primitive, error) {
	if err := ValidatePrimitiveID(meta.ID); err != nil {
		return nil, err
	}
	impliedKind := KindOf(meta.ID)
	if meta.Kind == "" {
		meta.Kind = impliedKind
	} else if meta.Kind != impliedKind {
		return nil, fmt.Errorf("%w: primitive %s declares kind %q but id implies %q", ErrMalformedPrimitive, meta.ID, meta.Kind, impliedKind)
	}

	seen := make(map[string]struct{}, len(iface.Inputs))
	for _, in := range iface.Inputs {
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("%w: primitive %s has duplicate input field %q", ErrMalformedPrimitive, meta.ID, in.Name)
		}
		seen[in.Name] = struct{}{}
	}

	if targets == nil {
		targets = map[string]CompilationTarget{}
	}

	return &Primitive{
		Metadata:           meta,
		Interface:          iface,
		CompilationTargets: targets,
		Constraints:        constraints,
		Composition:        composition,
		Examples:           examples,
	}, nil
}

// ToSummary projects a Primitive down to its metadata-only view.
func (p *Primitive) ToSummary() Summary {
	return Summary{
		ID:          p.Metadata.ID,
		Name:        p.Metadata.Name,
		Kind:        p.Metadata.Kind,
		Category:    p.Metadata.Category,
		Status:      p.Metadata.Status,
		Description: p.Metadata.Description,
		Tags:        p.Metadata.Tags,
	}
}

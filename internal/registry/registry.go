package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/refexpr"
)

// Entry is a metadata-only projection of one catalog item, as returned by
// listing and search operations (the path a primitive is stored under is
// an implementation detail and is not exposed here).
type Entry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Kind     model.Kind    `json:"kind"`
	Category model.Category `json:"category"`
	Status   model.Status  `json:"status"`
	Tags     []string      `json:"tags,omitempty"`
}

// Registry is the memoized, queryable front for a Loader. It is safe for
// concurrent use: the MCP tools call into a single shared Registry instance
// from request-handling goroutines.
type Registry struct {
	loader *Loader

	mu    sync.RWMutex
	cache map[string]*model.Primitive
}

// New builds a Registry backed by a Loader rooted at dir.
func New(dir string) *Registry {
	return &Registry{
		loader: NewLoader(dir),
		cache:  make(map[string]*model.Primitive),
	}
}

// Get returns the primitive for id, loading and caching it on first access.
func (r *Registry) Get(id string) (*model.Primitive, error) {
	r.mu.RLock()
	if p, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	p, err := r.loader.LoadPrimitive(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[id] = p
	r.mu.Unlock()

	return p, nil
}

// Exists reports whether a primitive with the given id can be loaded.
func (r *Registry) Exists(id string) bool {
	_, err := r.Get(id)
	return err == nil
}

// List returns index entries filtered by kind/category/status. An empty
// string for any filter means "no constraint on this field."
func (r *Registry) List(kind model.Kind, category model.Category, status model.Status) ([]Entry, error) {
	return r.loader.ListEntries(kind, category, status)
}

// ListStable is a convenience wrapper around List that filters to the
// stable status, matching the registry's default listing behavior.
func (r *Registry) ListStable(kind model.Kind, category model.Category) ([]Entry, error) {
	return r.loader.ListEntries(kind, category, model.StatusStable)
}

// GetParticles returns every stable particle, skipping (not aborting on)
// any entry that fails to load.
func (r *Registry) GetParticles(warn func(id string, err error)) ([]*model.Primitive, error) {
	entries, err := r.loader.ListEntries(model.KindParticle, "", model.StatusStable)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Primitive, 0, len(entries))
	for _, entry := range entries {
		p, err := r.Get(entry.ID)
		if err != nil {
			if warn != nil {
				warn(entry.ID, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// SearchByTag returns index entries carrying tag, case-insensitively,
// across every kind and status.
func (r *Registry) SearchByTag(tag string) ([]Entry, error) {
	entries, err := r.loader.ListEntries("", "", "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(tag)
	var out []Entry
	for _, entry := range entries {
		for _, t := range entry.Tags {
			if strings.ToLower(t) == needle {
				out = append(out, entry)
				break
			}
		}
	}
	return out, nil
}

// SearchByName returns index entries whose name or description contains
// query, case-insensitively. The index itself carries no description, so a
// name miss falls through to loading the full primitive to check its
// description before giving up on the entry.
func (r *Registry) SearchByName(query string) ([]Entry, error) {
	entries, err := r.loader.ListEntries("", "", "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var out []Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), needle) {
			out = append(out, entry)
			continue
		}
		if p, err := r.Get(entry.ID); err == nil && strings.Contains(strings.ToLower(p.Metadata.Description), needle) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// GetInterface returns the interface definition of a primitive.
func (r *Registry) GetInterface(id string) (model.Interface, error) {
	p, err := r.Get(id)
	if err != nil {
		return model.Interface{}, err
	}
	return p.Interface, nil
}

// hasExpressionEscape reports whether value is a string beginning with the
// `{{` reference-expression marker, which bypasses static type checking
// because its real type is only known once the expression is resolved at
// compile/run time.
func hasExpressionEscape(value any) bool {
	s, ok := value.(string)
	return ok && refexpr.IsDeferred(s)
}

// ValidateInputs checks a set of candidate input values against a
// primitive's declared interface: required fields must be present, and
// present fields must match their declared type or enum set, unless the
// value is a deferred `{{ ref: ... }}` expression.
func (r *Registry) ValidateInputs(id string, inputs map[string]any) (bool, []string) {
	p, err := r.Get(id)
	if err != nil {
		return false, []string{err.Error()}
	}

	var errs []string
	for _, in := range p.Interface.Inputs {
		value, present := inputs[in.Name]
		if in.Required && !present {
			errs = append(errs, fmt.Sprintf("Missing required input: %s", in.Name))
			continue
		}
		if !present {
			continue
		}
		if hasExpressionEscape(value) {
			continue
		}

		switch in.Type {
		case model.FieldString:
			if _, ok := value.(string); !ok {
				errs = append(errs, fmt.Sprintf("Input %s must be string, got %T", in.Name, value))
			}
		case model.FieldNumber:
			switch value.(type) {
			case int, int64, float32, float64:
			default:
				errs = append(errs, fmt.Sprintf("Input %s must be number, got %T", in.Name, value))
			}
		case model.FieldBoolean:
			if _, ok := value.(bool); !ok {
				errs = append(errs, fmt.Sprintf("Input %s must be boolean, got %T", in.Name, value))
			}
		case model.FieldEnum:
			if len(in.EnumValues) > 0 {
				s, ok := value.(string)
				if !ok || !contains(in.EnumValues, s) {
					errs = append(errs, fmt.Sprintf("Input %s must be one of %v", in.Name, in.EnumValues))
				}
			}
		}
	}

	return len(errs) == 0, errs
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// ClearCache empties the memoized primitive cache.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*model.Primitive)
}

package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/maicrosoft/specmcp/internal/model"
	"gopkg.in/yaml.v3"
)

// Loader reads primitive definitions off disk. It holds no cache of its
// own — Registry is the layer that memoizes — so every call re-reads the
// index file.
type Loader struct {
	root string
}

// NewLoader builds a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{root: dir}
}

// FindPrimitivesDir searches the conventional locations for a primitives
// catalog, in order: an explicit override, a location relative to the
// running executable, ./primitives relative to the current working
// directory, and ~/.specmcp/primitives. A candidate only counts if it
// exists and contains a _meta subdirectory.
func FindPrimitivesDir(override string) (string, error) {
	var candidates []string
	if override != "" {
		candidates = append(candidates, override)
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "..", "primitives"))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, "primitives"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".specmcp", "primitives"))
	}

	for _, candidate := range candidates {
		meta := filepath.Join(candidate, "_meta")
		if info, err := os.Stat(meta); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: could not find a primitives directory under any of %v", model.ErrRegistryNotFound, candidates)
}

func (l *Loader) indexPath() string {
	return filepath.Join(l.root, "_meta", "registry.yaml")
}

// LoadIndex reads and parses the registry index file.
func (l *Loader) LoadIndex() (registryIndexYAML, error) {
	var idx registryIndexYAML
	raw, err := os.ReadFile(l.indexPath())
	if err != nil {
		return idx, fmt.Errorf("%w: reading registry index: %v", model.ErrRegistryNotFound, err)
	}
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return idx, fmt.Errorf("%w: parsing registry index: %v", model.ErrMalformedPrimitive, err)
	}
	return idx, nil
}

func (l *Loader) findEntry(idx registryIndexYAML, id string) (indexEntryYAML, error) {
	kind := model.KindOf(id)
	for _, entry := range idx.section(kind) {
		if entry.ID == id {
			return entry, nil
		}
	}
	return indexEntryYAML{}, fmt.Errorf("%w: %s", model.ErrPrimitiveNotFound, id)
}

// LoadPrimitive loads and validates a single primitive by id.
func (l *Loader) LoadPrimitive(id string) (*model.Primitive, error) {
	if err := model.ValidatePrimitiveID(id); err != nil {
		return nil, err
	}

	idx, err := l.LoadIndex()
	if err != nil {
		return nil, err
	}

	entry, err := l.findEntry(idx, id)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(l.root, entry.Path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: primitive file for %s: %v", model.ErrPrimitiveNotFound, id, err)
	}

	var doc primitiveYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", model.ErrMalformedPrimitive, path, err)
	}

	return doc.toPrimitive()
}

// LoadAllOfKind loads every primitive listed under the index section for
// kind, skipping and warning on (rather than aborting for) any entry that
// fails to load — one bad file never poisons the batch.
func (l *Loader) LoadAllOfKind(kind model.Kind, warn func(id string, err error)) ([]*model.Primitive, error) {
	idx, err := l.LoadIndex()
	if err != nil {
		return nil, err
	}

	entries := idx.section(kind)
	out := make([]*model.Primitive, 0, len(entries))
	for _, entry := range entries {
		p, err := l.LoadPrimitive(entry.ID)
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

// ListEntries returns index entries across all kinds, optionally filtered
// by kind, category, and status, mirroring list_primitives' filter
// semantics: a zero value for a filter means "no constraint."
func (l *Loader) ListEntries(kind model.Kind, category model.Category, status model.Status) ([]Entry, error) {
	idx, err := l.LoadIndex()
	if err != nil {
		return nil, err
	}

	var kinds []model.Kind
	if kind != "" {
		kinds = []model.Kind{kind}
	} else {
		kinds = []model.Kind{model.KindParticle, model.KindAtom, model.KindMolecule, model.KindOrganism}
	}

	var out []Entry
	for _, k := range kinds {
		for _, entry := range idx.section(k) {
			if category != "" && entry.Category != string(category) {
				continue
			}
			if status != "" && entry.Status != string(status) {
				continue
			}
			out = append(out, Entry{
				ID:       entry.ID,
				Name:     entry.Name,
				Kind:     k,
				Category: model.Category(entry.Category),
				Status:   model.Status(entry.Status),
				Tags:     entry.Tags,
			})
		}
	}
	return out, nil
}

package registry

import (
	"testing"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadPrimitive(t *testing.T) {
	l := NewLoader("testdata/primitives")

	p, err := l.LoadPrimitive("P001")
	require.NoError(t, err)
	assert.Equal(t, "http_call", p.Metadata.Name)
	assert.Equal(t, model.StatusStable, p.Metadata.Status)
	assert.Len(t, p.Interface.Inputs, 3)
}

func TestLoader_LoadPrimitive_InvalidID(t *testing.T) {
	l := NewLoader("testdata/primitives")
	_, err := l.LoadPrimitive("X001")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedPrimitive)
}

func TestLoader_LoadPrimitive_NotFound(t *testing.T) {
	l := NewLoader("testdata/primitives")
	_, err := l.LoadPrimitive("P555")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPrimitiveNotFound)
}

func TestLoader_LoadAllOfKind_SkipsFailuresButWarns(t *testing.T) {
	l := NewLoader("testdata/primitives")

	var warned []string
	particles, err := l.LoadAllOfKind(model.KindParticle, func(id string, err error) {
		warned = append(warned, id)
	})
	require.NoError(t, err)
	assert.Len(t, particles, 2)
	assert.Empty(t, warned)
}

func TestLoader_ListEntries(t *testing.T) {
	l := NewLoader("testdata/primitives")

	entries, err := l.ListEntries(model.KindParticle, model.CategoryData, model.StatusDraft)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "P002", entries[0].ID)
}

func TestFindPrimitivesDir_UsesOverrideWhenPresent(t *testing.T) {
	dir, err := FindPrimitivesDir("testdata/primitives")
	require.NoError(t, err)
	assert.Equal(t, "testdata/primitives", dir)
}

func TestFindPrimitivesDir_ErrorsWhenNothingFound(t *testing.T) {
	_, err := FindPrimitivesDir("testdata/does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrRegistryNotFound)
}

package registry

import (
	"testing"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return New("testdata/primitives")
}

func TestRegistry_GetCachesAndReturnsPrimitive(t *testing.T) {
	r := testRegistry(t)

	p, err := r.Get("P001")
	require.NoError(t, err)
	assert.Equal(t, "http_call", p.Metadata.Name)
	assert.Equal(t, model.KindParticle, p.Metadata.Kind)

	again, err := r.Get("P001")
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestRegistry_GetUnknownID(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Get("P999")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPrimitiveNotFound)
}

func TestRegistry_Exists(t *testing.T) {
	r := testRegistry(t)
	assert.True(t, r.Exists("P001"))
	assert.False(t, r.Exists("P999"))
}

func TestRegistry_ListFiltersByStatus(t *testing.T) {
	r := testRegistry(t)

	stable, err := r.List(model.KindParticle, "", model.StatusStable)
	require.NoError(t, err)
	require.Len(t, stable, 1)
	assert.Equal(t, "P001", stable[0].ID)

	all, err := r.List(model.KindParticle, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegistry_SearchByTag(t *testing.T) {
	r := testRegistry(t)
	results, err := r.SearchByTag("HTTP")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P001", results[0].ID)
}

func TestRegistry_SearchByName(t *testing.T) {
	r := testRegistry(t)
	results, err := r.SearchByName("call")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P001", results[0].ID)
}

func TestRegistry_SearchByName_MatchesDescription(t *testing.T) {
	r := testRegistry(t)
	results, err := r.SearchByName("HTTP request")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P001", results[0].ID)
}

func TestRegistry_ValidateInputs(t *testing.T) {
	r := testRegistry(t)

	ok, errs := r.ValidateInputs("P001", map[string]any{"url": "https://x"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	ok, errs = r.ValidateInputs("P001", map[string]any{})
	assert.False(t, ok)
	assert.Len(t, errs, 1)

	ok, errs = r.ValidateInputs("P001", map[string]any{"url": 5})
	assert.False(t, ok)
	assert.Len(t, errs, 1)

	ok, _ = r.ValidateInputs("P001", map[string]any{"url": "{{ ref: prior.body }}"})
	assert.True(t, ok)
}

func TestRegistry_GetInterface(t *testing.T) {
	r := testRegistry(t)
	iface, err := r.GetInterface("P001")
	require.NoError(t, err)
	require.Len(t, iface.Inputs, 3)
	assert.Equal(t, "url", iface.Inputs[0].Name)
	assert.True(t, iface.Inputs[0].Required)
}

func TestRegistry_ListStable(t *testing.T) {
	r := testRegistry(t)
	entries, err := r.ListStable(model.KindParticle, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "P001", entries[0].ID)
}

func TestRegistry_GetParticles(t *testing.T) {
	r := testRegistry(t)
	particles, err := r.GetParticles(nil)
	require.NoError(t, err)
	require.Len(t, particles, 1)
	assert.Equal(t, "P001", particles[0].Metadata.ID)
}

func TestRegistry_ClearCache(t *testing.T) {
	r := testRegistry(t)
	p1, err := r.Get("P001")
	require.NoError(t, err)

	r.ClearCache()

	p2, err := r.Get("P001")
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)
	assert.Equal(t, p1.Metadata.ID, p2.Metadata.ID)
}

package driver

import (
	"testing"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_ValidateAndCompile_HappyPath(t *testing.T) {
	d := New("../registry/testdata/primitives")

	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "Hello", Version: "1.0.0"},
		model.Settings{},
		&model.Trigger{Kind: model.TriggerManual},
		[]model.PlanNode{{ID: "call_it", PrimitiveID: "P001", Inputs: map[string]any{"url": "https://example.com"}}},
		nil,
	)
	require.NoError(t, err)

	report, doc, err := d.ValidateAndCompile(plan, "n8n")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	require.NotNil(t, doc)
	assert.Len(t, doc.Nodes, 2)
}

func TestDriver_ValidateAndCompile_SkipsCompilationWhenInvalid(t *testing.T) {
	d := New("../registry/testdata/primitives")

	plan, err := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P555"}}, nil)
	require.NoError(t, err)

	report, doc, err := d.ValidateAndCompile(plan, "n8n")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Nil(t, doc)
}

func TestDriver_ValidateAndCompile_DraftPrimitiveBlocks(t *testing.T) {
	d := New("../registry/testdata/primitives")

	plan, err := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P002", Inputs: map[string]any{"payload": map[string]any{}}}}, nil)
	require.NoError(t, err)

	report, doc, err := d.ValidateAndCompile(plan, "n8n")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Nil(t, doc)
}

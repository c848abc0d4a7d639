package plan

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/maicrosoft/specmcp/internal/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver(t *testing.T) *driver.Driver {
	t.Helper()
	return driver.New("../../registry/testdata/primitives")
}

const happyPlan = `{
  "plan": {
    "metadata": {"id": "plan-1", "name": "fetch then log", "version": "1.0.0"},
    "settings": {"allow_fallback": false, "risk_level": "low"},
    "trigger": {"type": "manual", "config": {}},
    "nodes": [
      {"id": "n1", "primitive_id": "P001", "inputs": {"url": "https://example.com"}}
    ],
    "edges": []
  }
}`

func TestValidate_HappyPathIsValid(t *testing.T) {
	tool := NewValidate(testDriver(t))
	result, err := tool.Execute(context.Background(), json.RawMessage(happyPlan))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, `"valid": true`)
}

func TestValidate_MissingPlanIsAnErrorResult(t *testing.T) {
	tool := NewValidate(testDriver(t))
	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestValidate_UnknownPrimitiveReportsError(t *testing.T) {
	tool := NewValidate(testDriver(t))
	body := `{"plan":{"metadata":{"id":"p","name":"n","version":"1"},"nodes":[{"id":"n1","primitive_id":"P999"}],"edges":[]}}`
	result, err := tool.Execute(context.Background(), json.RawMessage(body))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "PRIMITIVE_NOT_FOUND")
}

func TestCompile_HappyPathProducesDocument(t *testing.T) {
	tool := NewCompile(testDriver(t))
	result, err := tool.Execute(context.Background(), json.RawMessage(happyPlan))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "httpRequest")
}

func TestCompile_InvalidPlanReturnsValidationErrorsNotACrash(t *testing.T) {
	tool := NewCompile(testDriver(t))
	body := `{"plan":{"metadata":{"id":"p","name":"n","version":"1"},"nodes":[{"id":"n1","primitive_id":"P999"}],"edges":[]}}`
	result, err := tool.Execute(context.Background(), json.RawMessage(body))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "plan validation failed")
}

func TestCompile_UnsupportedTargetIsAnErrorResult(t *testing.T) {
	tool := NewCompile(testDriver(t))
	body := `{"plan":{"metadata":{"id":"p","name":"n","version":"1"},"nodes":[{"id":"n1","primitive_id":"P001","inputs":{"url":"x"}}],"edges":[]},"target":"zapier"}`
	result, err := tool.Execute(context.Background(), json.RawMessage(body))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

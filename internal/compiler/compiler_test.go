package compiler

import (
	"strings"
	"testing"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_S1_HappyPath(t *testing.T) {
	c := New(nil)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "Hello", Version: "1.0.0"},
		model.Settings{},
		&model.Trigger{Kind: model.TriggerManual},
		[]model.PlanNode{{ID: "log_it", PrimitiveID: "P010", Inputs: map[string]any{"level": "info", "message": "hi"}}},
		nil,
	)
	require.NoError(t, err)

	doc, err := c.Compile(plan, "n8n")
	require.NoError(t, err)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Trigger", doc.Nodes[0].Name)
	assert.Contains(t, doc.Nodes[0].Type, "manualTrigger")
	assert.Equal(t, "Log It", doc.Nodes[1].Name)
	assert.Equal(t, "n8n-nodes-base.code", doc.Nodes[1].Type)

	conn, ok := doc.Connections["Trigger"]
	require.True(t, ok)
	require.Len(t, conn.Main, 1)
	require.Len(t, conn.Main[0], 1)
	assert.Equal(t, "Log It", conn.Main[0][0].Node)
}

func TestCompile_S6_WebhookTrigger(t *testing.T) {
	c := New(nil)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{},
		&model.Trigger{Kind: model.TriggerWebhook, Config: map[string]any{"path": "/my-webhook"}},
		[]model.PlanNode{{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil,
	)
	require.NoError(t, err)

	doc, err := c.Compile(plan, "n8n")
	require.NoError(t, err)

	trigger := doc.Nodes[0]
	assert.Contains(t, trigger.Type, "webhook")
	assert.Equal(t, "/my-webhook", trigger.Parameters["path"])

	conn := doc.Connections["Trigger"]
	require.Len(t, conn.Main[0], 1)
	assert.Equal(t, "A", conn.Main[0][0].Node)
}

func TestCompile_UnsupportedTarget(t *testing.T) {
	c := New(nil)
	plan, _ := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil)

	_, err := c.Compile(plan, "zapier")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedTarget)
}

func TestCompile_DeterministicModuloIDs(t *testing.T) {
	c := New(nil)
	plan, _ := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil)

	docA, err := c.Compile(plan, "n8n")
	require.NoError(t, err)
	docB, err := c.Compile(plan, "n8n")
	require.NoError(t, err)

	for i := range docA.Nodes {
		docA.Nodes[i].ID = ""
		docB.Nodes[i].ID = ""
	}
	docA.VersionID = ""
	docB.VersionID = ""

	assert.Equal(t, docA, docB)
}

func TestToJSON_ProducesImportableDocument(t *testing.T) {
	c := New(nil)
	plan, err := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil)
	require.NoError(t, err)

	out, err := c.ToJSON(plan, "n8n")
	require.NoError(t, err)
	assert.Contains(t, out, `"connections"`)
	assert.Contains(t, out, `"versionId"`)
	assert.Contains(t, out, "n8n-nodes-base.httpRequest")
}

func TestCompileTransform_MapOperation(t *testing.T) {
	c := New(nil)
	node := model.PlanNode{ID: "double_it", PrimitiveID: "P004", Inputs: map[string]any{
		"operation": "map",
		"template":  "item * 2",
	}}

	n, err := c.compileNode(node)
	require.NoError(t, err)
	assert.Equal(t, "Double It", n.Name)
	code := n.Parameters["jsCode"].(string)
	assert.Contains(t, code, "item * 2")
	assert.Contains(t, code, "Transform: map operation")
}

func TestCompileBranch(t *testing.T) {
	c := New(nil)
	node := model.PlanNode{ID: "check", PrimitiveID: "P005", Inputs: map[string]any{"condition": "x > 1"}}

	n, err := c.compileNode(node)
	require.NoError(t, err)
	assert.Equal(t, "n8n-nodes-base.if", n.Type)
}

func TestCompileFallback_JavascriptWrapsVerbatim(t *testing.T) {
	c := New(nil)
	cb, err := model.NewCodeBlock("javascript", "return 42;", "answer", nil, nil)
	require.NoError(t, err)

	n, err := c.compileNode(model.PlanNode{ID: "custom", Fallback: cb})
	require.NoError(t, err)
	code := n.Parameters["jsCode"].(string)
	assert.Contains(t, code, "return 42;")
	assert.Contains(t, code, "answer")
}

func TestCompileFallback_PythonGetsStub(t *testing.T) {
	c := New(nil)
	cb, err := model.NewCodeBlock("python", "return 42", "answer", nil, nil)
	require.NoError(t, err)

	n, err := c.compileNode(model.PlanNode{ID: "custom", Fallback: cb})
	require.NoError(t, err)
	code := n.Parameters["jsCode"].(string)
	assert.Contains(t, code, "WARNING")
	assert.Contains(t, code, "return 42")
}

func TestCompileGeneric_UnknownPrimitive(t *testing.T) {
	c := New(nil)
	n, err := c.compileNode(model.PlanNode{ID: "weird", PrimitiveID: "P099", Inputs: map[string]any{"x": 1}})
	require.NoError(t, err)
	assert.Equal(t, "n8n-nodes-base.code", n.Type)
	assert.True(t, strings.Contains(n.Parameters["jsCode"].(string), "P099"))
}

func TestResolveReference(t *testing.T) {
	resolved := resolveReference("{{ ref: prior_step.body }}")
	assert.Contains(t, resolved, `$node["prior_step"].json.body`)

	resolved = resolveReference("{{ ref: prior_step }}")
	assert.Contains(t, resolved, `$node["prior_step"].json.body`)

	unchanged := resolveReference("plain string")
	assert.Equal(t, "plain string", unchanged)
}

func TestMapParameters_NestedDottedTarget(t *testing.T) {
	params := mapParameters(map[string]any{"headers": map[string]any{"a": "b"}}, map[string]string{"headers": "options.headers"})
	options, ok := params["options"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": "b"}, options["headers"])
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Log It", sanitizeName("log_it"))
	assert.Equal(t, "Http Call", sanitizeName("http_call"))
}

package validate

import (
	"fmt"
	"testing"

	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry is a minimal in-memory inputChecker, so these tests never
// touch disk or depend on the registry package's own loading behavior.
type fakeRegistry struct {
	primitives map[string]*model.Primitive
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{primitives: map[string]*model.Primitive{}}
}

func (f *fakeRegistry) add(p *model.Primitive) {
	f.primitives[p.Metadata.ID] = p
}

func (f *fakeRegistry) Exists(id string) bool {
	_, ok := f.primitives[id]
	return ok
}

func (f *fakeRegistry) Get(id string) (*model.Primitive, error) {
	p, ok := f.primitives[id]
	if !ok {
		return nil, fmt.Errorf("not found: %s", id)
	}
	return p, nil
}

func (f *fakeRegistry) ValidateInputs(id string, inputs map[string]any) (bool, []string) {
	p, ok := f.primitives[id]
	if !ok {
		return false, []string{"not found"}
	}
	var errs []string
	for _, in := range p.Interface.Inputs {
		if in.Required {
			if _, present := inputs[in.Name]; !present {
				errs = append(errs, fmt.Sprintf("Missing required input: %s", in.Name))
			}
		}
	}
	return len(errs) == 0, errs
}

func httpCallPrimitive(t *testing.T, status model.Status) *model.Primitive {
	t.Helper()
	p, err := model.NewPrimitive(
		model.Metadata{ID: "P001", Name: "http_call", Version: "1.0.0", Status: status, Description: "d"},
		model.Interface{Inputs: []model.InputField{{Name: "url", Type: model.FieldString, Required: true}}},
		nil, model.Constraints{}, nil, nil,
	)
	require.NoError(t, err)
	return p
}

func newValidatorWith(t *testing.T, primitives ...*model.Primitive) *Validator {
	t.Helper()
	reg := newFakeRegistry()
	for _, p := range primitives {
		reg.add(p)
	}
	return &Validator{registry: reg, policy: policy.NewEngine()}
}

func hasCode(violations []model.Violation, code string) bool {
	for _, v := range violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_S1_HappyPath(t *testing.T) {
	logPrim, err := model.NewPrimitive(
		model.Metadata{ID: "P010", Name: "log", Version: "1.0.0", Status: model.StatusStable, Description: "d"},
		model.Interface{Inputs: []model.InputField{{Name: "level"}, {Name: "message"}}},
		nil, model.Constraints{}, nil, nil,
	)
	require.NoError(t, err)

	v := newValidatorWith(t, logPrim)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "Hello", Version: "1.0.0"},
		model.Settings{},
		&model.Trigger{Kind: model.TriggerManual},
		[]model.PlanNode{{ID: "log_it", PrimitiveID: "P010", Inputs: map[string]any{"level": "info", "message": "hi"}}},
		nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
}

func TestValidate_S2_UnknownPrimitive(t *testing.T) {
	v := newValidatorWith(t)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P999"}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.False(t, report.Valid)
	assert.True(t, hasCode(report.Violations, "PRIMITIVE_NOT_FOUND"))
	assert.False(t, hasCode(report.Violations, "INTERFACE_VIOLATION"))
}

func TestValidate_S3_MissingRequiredInput(t *testing.T) {
	v := newValidatorWith(t, httpCallPrimitive(t, model.StatusStable))
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P001", Inputs: map[string]any{"method": "GET"}}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.False(t, report.Valid)
	found := false
	for _, viol := range report.Violations {
		if viol.Code == "INTERFACE_VIOLATION" {
			assert.Contains(t, viol.Message, "url")
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_S4_Cycle(t *testing.T) {
	p := httpCallPrimitive(t, model.StatusStable)
	v := newValidatorWith(t, p)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{
			{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}},
			{ID: "b", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}},
			{ID: "c", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}},
		},
		[]model.Edge{{FromNode: "a", ToNode: "b"}, {FromNode: "b", ToNode: "c"}, {FromNode: "c", ToNode: "a"}},
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	count := 0
	for _, viol := range report.Violations {
		if viol.Code == "CIRCULAR_DEPENDENCY" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidate_S5_FallbackGating(t *testing.T) {
	cb, err := model.NewCodeBlock("javascript", "return 1", "t", nil, nil)
	require.NoError(t, err)

	v := newValidatorWith(t)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{AllowFallback: false}, nil,
		[]model.PlanNode{{ID: "n1", Fallback: cb}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.False(t, report.Valid)
	assert.True(t, hasCode(report.Violations, "FALLBACK_NOT_ALLOWED"))

	plan.Settings.AllowFallback = true
	report = v.Validate(plan)
	assert.True(t, report.Valid)
	assert.True(t, hasCode(report.Warnings, "FALLBACK_USED"))
}

func TestValidate_DraftPrimitiveIsAlwaysAnError(t *testing.T) {
	v := newValidatorWith(t, httpCallPrimitive(t, model.StatusDraft))
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.False(t, report.Valid)
	assert.True(t, hasCode(report.Violations, "PRIMITIVE_DRAFT"))
}

func TestValidate_S6_WebhookTriggerDoesNotBlockCompilation(t *testing.T) {
	v := newValidatorWith(t, httpCallPrimitive(t, model.StatusStable))
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, &model.Trigger{Kind: model.TriggerWebhook, Config: map[string]any{"path": "/my-webhook"}},
		[]model.PlanNode{{ID: "n1", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.True(t, report.Valid)
}

func TestValidateNode_SingleNodeFeedback(t *testing.T) {
	v := newValidatorWith(t, httpCallPrimitive(t, model.StatusStable))

	violations := v.ValidateNode(model.PlanNode{ID: "n1"})
	require.Len(t, violations, 1)
	assert.Equal(t, "NO_PRIMITIVE_OR_FALLBACK", violations[0].Code)

	violations = v.ValidateNode(model.PlanNode{ID: "n1", PrimitiveID: "P999"})
	require.Len(t, violations, 1)
	assert.Equal(t, "PRIMITIVE_NOT_FOUND", violations[0].Code)

	violations = v.ValidateNode(model.PlanNode{ID: "n1", PrimitiveID: "P001"})
	require.Len(t, violations, 1)
	assert.Equal(t, "INTERFACE_VIOLATION", violations[0].Code)

	violations = v.ValidateNode(model.PlanNode{ID: "n1", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}})
	assert.Empty(t, violations)
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	v := newValidatorWith(t)
	cb, err := model.NewCodeBlock("javascript", "1", "d", nil, nil)
	require.NoError(t, err)
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{AllowFallback: true}, nil,
		[]model.PlanNode{{ID: "dup", Fallback: cb}, {ID: "dup", Fallback: cb}}, nil,
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.True(t, hasCode(report.Violations, "DUPLICATE_NODE_ID"))
}

func TestValidate_EmptyPlan(t *testing.T) {
	v := newValidatorWith(t)
	plan, err := model.NewPlan(model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil, nil, nil)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.True(t, hasCode(report.Violations, "EMPTY_PLAN"))
}

func TestValidate_InvalidEdgeEndpoints(t *testing.T) {
	v := newValidatorWith(t, httpCallPrimitive(t, model.StatusStable))
	plan, err := model.NewPlan(
		model.PlanMetadata{ID: "p1", Name: "n"}, model.Settings{}, nil,
		[]model.PlanNode{{ID: "a", PrimitiveID: "P001", Inputs: map[string]any{"url": "x"}}},
		[]model.Edge{{FromNode: "a", ToNode: "ghost"}},
	)
	require.NoError(t, err)

	report := v.Validate(plan)
	assert.True(t, hasCode(report.Violations, "INVALID_EDGE_TARGET"))
}

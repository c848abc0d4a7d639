package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maicrosoft/specmcp/internal/model"
	"github.com/maicrosoft/specmcp/internal/refexpr"
)

// primitiveLookup is the narrow slice of Registry behavior the compiler
// needs: a fallback lookup of a primitive's own declared compilation
// target when a plan node's primitive isn't in the built-in dispatch table.
type primitiveLookup interface {
	Get(id string) (*model.Primitive, error)
}

// Compiler lowers validated plans into target-engine workflow documents.
type Compiler struct {
	registry primitiveLookup
}

// New builds a Compiler. registry may be nil; it is only consulted as a
// fallback for primitives absent from the built-in dispatch table.
func New(registry primitiveLookup) *Compiler {
	return &Compiler{registry: registry}
}

const (
	initialX = 250
	initialY = 300
	stepX    = 250
	stepY    = 100
)

// Compile lowers plan into a Document for target. The only supported
// target is "n8n"; any other name returns ErrUnsupportedTarget.
func (c *Compiler) Compile(plan *model.Plan, target string) (*Document, error) {
	if target != "n8n" {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedTarget, target)
	}

	var nodes []Node
	nodeIDMap := make(map[string]string, len(plan.Nodes)+1)

	trigger := c.compileTrigger(plan)
	trigger.Position = [2]int{initialX, initialY}
	nodes = append(nodes, trigger)
	nodeIDMap["__trigger__"] = trigger.Name

	xPos := initialX
	for i, planNode := range plan.Nodes {
		xPos += stepX
		n, err := c.compileNode(planNode)
		if err != nil {
			return nil, err
		}
		n.Position = [2]int{xPos, initialY + (i%3)*stepY}
		nodes = append(nodes, n)
		nodeIDMap[planNode.ID] = n.Name
	}

	connections := buildConnections(plan, nodeIDMap, trigger.Name)

	doc := &Document{
		Name:        plan.Metadata.Name,
		Nodes:       nodes,
		Connections: connections,
		Active:      false,
		Settings:    map[string]any{"executionOrder": "v1"},
		VersionID:   uuid.NewString(),
		Meta: map[string]string{
			"plan_id":      plan.Metadata.ID,
			"plan_version": plan.Metadata.Version,
		},
	}
	return doc, nil
}

// ToJSON compiles plan for target and returns the document as an indented
// JSON string, ready to hand to the engine's import endpoint.
func (c *Compiler) ToJSON(plan *model.Plan, target string) (string, error) {
	doc, err := c.Compile(plan, target)
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling workflow document: %w", err)
	}
	return string(b), nil
}

func (c *Compiler) compileTrigger(plan *model.Plan) Node {
	triggerKind := "manual"
	var config map[string]any

	if plan.Trigger != nil {
		triggerKind = string(plan.Trigger.Kind)
		config = plan.Trigger.Config
	}

	def, ok := n8nTriggerDispatch[triggerKind]
	if !ok {
		def = n8nTriggerDispatch["manual"]
	}

	parameters := make(map[string]any, len(def.parameters))
	for k, v := range def.parameters {
		parameters[k] = v
	}

	switch triggerKind {
	case "schedule":
		if cron, ok := config["cron"]; ok {
			parameters["rule"] = map[string]any{"cron": cron}
		}
	case "webhook":
		if path, ok := config["path"]; ok {
			parameters["path"] = path
		}
	}

	return newNode("Trigger", def.nodeType, def.typeVersion, parameters)
}

func newNode(name, nodeType string, typeVersion int, parameters map[string]any) Node {
	return Node{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        nodeType,
		Parameters:  parameters,
		TypeVersion: typeVersion,
	}
}

func (c *Compiler) compileNode(node model.PlanNode) (Node, error) {
	if node.HasFallback() {
		return c.compileFallback(node), nil
	}

	if !node.HasPrimitive() {
		return Node{}, fmt.Errorf("%w: node %s has no primitive_id or fallback", model.ErrUnsupportedNode, node.ID)
	}

	def, ok := n8nDispatch[node.PrimitiveID]
	if !ok {
		return c.compileViaRegistryTarget(node), nil
	}

	if def.customHandler != nil {
		return def.customHandler(c, node), nil
	}

	parameters := mapParameters(node.Inputs, def.paramMap)
	return newNode(sanitizeName(node.ID), def.nodeType, def.typeVersion, parameters), nil
}

// compileViaRegistryTarget falls back to a primitive's own declared n8n
// compilation target before giving up and emitting a fully generic
// pass-through node.
func (c *Compiler) compileViaRegistryTarget(node model.PlanNode) Node {
	if c.registry != nil {
		if primitive, err := c.registry.Get(node.PrimitiveID); err == nil {
			if target, ok := primitive.CompilationTargets["n8n"]; ok && target.NodeType != "" {
				parameters := mapParameters(node.Inputs, nil)
				version := 1
				return newNode(sanitizeName(node.ID), target.NodeType, version, parameters)
			}
		}
	}
	return c.compileGeneric(node)
}

func (c *Compiler) compileFallback(node model.PlanNode) Node {
	code := wrapFallbackCode(node.Fallback)
	return newNode(sanitizeName(node.ID), "n8n-nodes-base.code", 2, map[string]any{
		"mode":   "runOnceForAllItems",
		"jsCode": code,
	})
}

func wrapFallbackCode(fallback *model.CodeBlock) string {
	switch fallback.Language {
	case "javascript":
		return strings.TrimSpace(fmt.Sprintf(`
// Fallback code: %s
// Inputs: %s
// Outputs: %s

%s
`, fallback.Description, schemaComment(fallback.InputsSchema), schemaComment(fallback.OutputsSchema), fallback.Code))
	case "python":
		// The target engine has no native python execution; this is a
		// documented limitation, not a defect.
		return strings.TrimSpace(fmt.Sprintf(`
// Fallback: python code (requires external execution)
// Description: %s
// WARNING: python fallback not directly executable in this engine

const pythonCode = %s;
// TODO: send to a python execution service
return $input.all();
`, fallback.Description, "`"+fallback.Code+"`"))
	default:
		return fallback.Code
	}
}

func schemaComment(schema map[string]string) string {
	if len(schema) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(schema))
	for k, v := range schema {
		parts = append(parts, fmt.Sprintf("%q:%q", k, v))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (c *Compiler) compileGeneric(node model.PlanNode) Node {
	code := strings.TrimSpace(fmt.Sprintf(`
// Generic node for primitive: %s
// Inputs: %v
return $input.all();
`, node.PrimitiveID, node.Inputs))

	return newNode(sanitizeName(node.ID), "n8n-nodes-base.code", 2, map[string]any{
		"mode":   "runOnceForAllItems",
		"jsCode": code,
	})
}

func sanitizeName(id string) string {
	return strings.Title(strings.ReplaceAll(id, "_", " ")) //nolint:staticcheck // title-casing node display names, not prose
}

// mapParameters rewrites plan input values into target parameter names via
// paramMap (falling back to the plan's own input name when unmapped), and
// resolves any `{{ ref: ... }}` placeholder values along the way. A dotted
// target parameter name (e.g. "options.timeout") builds a nested object.
func mapParameters(inputs map[string]any, paramMap map[string]string) map[string]any {
	parameters := map[string]any{}

	for name, value := range inputs {
		target := name
		if mapped, ok := paramMap[name]; ok {
			target = mapped
		}

		if s, ok := value.(string); ok {
			value = resolveReference(s)
		}

		assignNested(parameters, strings.Split(target, "."), value)
	}

	return parameters
}

func assignNested(root map[string]any, path []string, value any) {
	current := root
	for _, part := range path[:len(path)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}

// resolveReference rewrites a `{{ ref: NODE.FIELD }}` placeholder embedded
// anywhere in value into the target engine's expression syntax. Values
// without a recognizable placeholder are returned unchanged.
func resolveReference(value string) string {
	nodeID, field, match, ok := refexpr.Find(value)
	if !ok {
		return value
	}
	expr := fmt.Sprintf(`$('{{ $node["%s"].json.%s }}')`, nodeID, field)
	return strings.ReplaceAll(value, match, expr)
}

func buildConnections(plan *model.Plan, nodeIDMap map[string]string, triggerName string) map[string]Connection {
	connections := map[string]Connection{}

	incoming := make(map[string]struct{}, len(plan.Edges))
	for _, edge := range plan.Edges {
		incoming[edge.ToNode] = struct{}{}
	}

	var firstNodes []string
	for _, node := range plan.Nodes {
		if _, has := incoming[node.ID]; !has {
			firstNodes = append(firstNodes, node.ID)
		}
	}

	if len(firstNodes) > 0 {
		targets := make([]ConnectionTarget, 0, len(firstNodes))
		for _, id := range firstNodes {
			targets = append(targets, ConnectionTarget{Node: nodeIDMap[id], Type: "main", Index: 0})
		}
		connections[triggerName] = Connection{Main: [][]ConnectionTarget{targets}}
	}

	for _, edge := range plan.Edges {
		sourceName, sourceOK := nodeIDMap[edge.FromNode]
		targetName, targetOK := nodeIDMap[edge.ToNode]
		if !sourceOK || !targetOK {
			continue
		}

		conn, ok := connections[sourceName]
		if !ok {
			conn = Connection{Main: [][]ConnectionTarget{{}}}
		}
		conn.Main[0] = append(conn.Main[0], ConnectionTarget{Node: targetName, Type: "main", Index: 0})
		connections[sourceName] = conn
	}

	return connections
}

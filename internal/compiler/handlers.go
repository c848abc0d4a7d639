package compiler

import (
	"fmt"
	"strings"

	"github.com/maicrosoft/specmcp/internal/model"
)

// The five custom handlers below synthesize code-style (or IF-style)
// target nodes whose shape a flat parameter map cannot express. Each
// pulls its inputs straight from the plan node with a hand-rolled default.

func stringInput(inputs map[string]any, name, fallback string) string {
	if v, ok := inputs[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func anyInput(inputs map[string]any, name string, fallback any) any {
	if v, ok := inputs[name]; ok {
		return v
	}
	return fallback
}

func (c *Compiler) compileTransform(node model.PlanNode) Node {
	operation := stringInput(node.Inputs, "operation", "map")
	source := resolveReference(stringInput(node.Inputs, "source", "$input.all()"))
	template := stringInput(node.Inputs, "template", "")
	condition := stringInput(node.Inputs, "condition", "true")

	var code string
	switch operation {
	case "map":
		body := template
		if body == "" {
			body = "item"
		}
		code = fmt.Sprintf(`// Transform: map operation
const items = %s;
const results = items.map(item => {
  return %s;
});
return results.map(json => ({json}));`, source, body)
	case "filter":
		code = fmt.Sprintf(`// Transform: filter operation
const items = %s;
const results = items.filter(item => {
  return %s;
});
return results.map(json => ({json}));`, source, condition)
	case "reduce":
		body := template
		if body == "" {
			body = "return acc;"
		}
		initial := stringInput(node.Inputs, "initial", "{}")
		code = fmt.Sprintf(`// Transform: reduce operation
const items = %s;
const result = items.reduce((acc, item) => {
  %s
}, %s);
return [{json: result}];`, source, body, initial)
	case "flatten":
		code = fmt.Sprintf(`// Transform: flatten operation
const items = %s;
const results = items.flat();
return results.map(json => ({json}));`, source)
	default:
		code = fmt.Sprintf(`// Transform: %s
const items = %s;
return items.map(json => ({json}));`, operation, source)
	}

	return newNode(sanitizeName(node.ID), "n8n-nodes-base.code", 2, map[string]any{
		"mode":   "runOnceForAllItems",
		"jsCode": strings.TrimSpace(code),
	})
}

func (c *Compiler) compileBranch(node model.PlanNode) Node {
	condition := stringInput(node.Inputs, "condition", "true")
	return newNode(sanitizeName(node.ID), "n8n-nodes-base.if", 2, map[string]any{
		"conditions": map[string]any{
			"options": map[string]any{
				"caseSensitive": true,
				"leftValue":     "",
			},
			"conditions": []map[string]any{
				{
					"leftValue": "={{ " + condition + " }}",
					"rightValue": "",
					"operator": map[string]any{
						"type":      "boolean",
						"operation": "true",
					},
				},
			},
			"combinator": "and",
		},
	})
}

func (c *Compiler) compileLoop(node model.PlanNode) Node {
	batchSize := anyInput(node.Inputs, "batch_size", 1)
	return newNode(sanitizeName(node.ID), "n8n-nodes-base.splitInBatches", 3, map[string]any{
		"batchSize": batchSize,
		"options":   map[string]any{},
	})
}

func (c *Compiler) compileLLMCall(node model.PlanNode) Node {
	prompt := stringInput(node.Inputs, "prompt", "")
	llmModel := stringInput(node.Inputs, "model", "gpt-4")
	systemPrompt := stringInput(node.Inputs, "system_prompt", "")
	temperature := anyInput(node.Inputs, "temperature", 0.7)
	maxTokens := anyInput(node.Inputs, "max_tokens", 1000)

	return newNode(sanitizeName(node.ID), "@n8n/n8n-nodes-langchain.openAi", 1, map[string]any{
		"resource":  "chat",
		"operation": "message",
		"model":     llmModel,
		"messages": map[string]any{
			"values": []map[string]any{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": prompt},
			},
		},
		"options": map[string]any{
			"temperature": temperature,
			"maxTokens":   maxTokens,
		},
	})
}

func (c *Compiler) compileLog(node model.PlanNode) Node {
	level := stringInput(node.Inputs, "level", "info")
	message := stringInput(node.Inputs, "message", "")
	data := anyInput(node.Inputs, "data", map[string]any{})

	code := fmt.Sprintf(`// Log: %s
console.log('%s: %s');
console.log('Data:', %v);

return $input.all();`, strings.ToUpper(level), strings.ToUpper(level), message, data)

	return newNode(sanitizeName(node.ID), "n8n-nodes-base.code", 2, map[string]any{
		"mode":   "runOnceForAllItems",
		"jsCode": strings.TrimSpace(code),
	})
}

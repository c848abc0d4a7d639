package compiler

import "github.com/maicrosoft/specmcp/internal/model"

// primitiveTarget describes how one primitive id lowers to an n8n node:
// either a declarative parameter map, or a custom handler for the five
// control-flow-ish primitives whose shape a flat map can't express.
type primitiveTarget struct {
	nodeType      string
	typeVersion   int
	paramMap      map[string]string
	customHandler func(c *Compiler, node model.PlanNode) Node
}

// n8nDispatch is the primitive-id → n8n node descriptor table: ten
// particles, five of which (transform, branch, loop, llm_call, log) need a
// custom handler because their target shape isn't a flat field rename.
var n8nDispatch = map[string]primitiveTarget{
	"P001": { // http_call
		nodeType:    "n8n-nodes-base.httpRequest",
		typeVersion: 4,
		paramMap: map[string]string{
			"method":       "method",
			"url":          "url",
			"headers":      "headerParameters",
			"body":         "body",
			"query_params": "queryParameters",
			"timeout":      "timeout",
			"auth":         "authentication",
		},
	},
	"P002": { // db_query
		nodeType:    "n8n-nodes-base.postgres",
		typeVersion: 2,
		paramMap: map[string]string{
			"query":     "query",
			"operation": "operation",
		},
	},
	"P003": { // file_op
		nodeType:    "n8n-nodes-base.readWriteFile",
		typeVersion: 1,
		paramMap: map[string]string{
			"operation": "operation",
			"path":      "filePath",
			"content":   "fileContent",
		},
	},
	"P004": { // transform
		nodeType:      "n8n-nodes-base.code",
		typeVersion:   2,
		customHandler: (*Compiler).compileTransform,
	},
	"P005": { // branch
		nodeType:      "n8n-nodes-base.if",
		typeVersion:   2,
		customHandler: (*Compiler).compileBranch,
	},
	"P006": { // loop
		nodeType:      "n8n-nodes-base.splitInBatches",
		typeVersion:   3,
		customHandler: (*Compiler).compileLoop,
	},
	"P007": { // llm_call
		nodeType:      "@n8n/n8n-nodes-langchain.openAi",
		typeVersion:   1,
		customHandler: (*Compiler).compileLLMCall,
	},
	"P008": { // cache
		nodeType:    "n8n-nodes-base.redis",
		typeVersion: 1,
		paramMap: map[string]string{
			"operation": "operation",
			"key":       "key",
			"value":     "value",
			"ttl":       "expire",
		},
	},
	"P009": { // queue
		nodeType:    "n8n-nodes-base.rabbitmq",
		typeVersion: 1,
		paramMap: map[string]string{
			"operation": "operation",
			"queue":     "queue",
			"message":   "content",
		},
	},
	"P010": { // log
		nodeType:      "n8n-nodes-base.code",
		typeVersion:   2,
		customHandler: (*Compiler).compileLog,
	},
}

type triggerTarget struct {
	nodeType    string
	typeVersion int
	parameters  map[string]any
}

var n8nTriggerDispatch = map[string]triggerTarget{
	"webhook": {
		nodeType:    "n8n-nodes-base.webhook",
		typeVersion: 2,
		parameters: map[string]any{
			"httpMethod":   "POST",
			"path":         "webhook",
			"responseMode": "responseNode",
		},
	},
	"schedule": {
		nodeType:    "n8n-nodes-base.scheduleTrigger",
		typeVersion: 1,
		parameters: map[string]any{
			"rule": map[string]any{
				"interval": []map[string]any{{"field": "hours", "hoursInterval": 1}},
			},
		},
	},
	"manual": {
		nodeType:    "n8n-nodes-base.manualTrigger",
		typeVersion: 1,
		parameters:  map[string]any{},
	},
	"event": {
		nodeType:    "n8n-nodes-base.webhook",
		typeVersion: 2,
		parameters: map[string]any{
			"httpMethod": "POST",
			"path":       "event",
		},
	},
}

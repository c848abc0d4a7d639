// Package compiler lowers a validated plan's DAG into the wire-level JSON
// document of a target workflow engine. The only target implemented is n8n.
package compiler

// Node is one emitted workflow-engine node.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Position    [2]int         `json:"position"`
	Parameters  map[string]any `json:"parameters"`
	TypeVersion int            `json:"typeVersion"`
}

// ConnectionTarget is one edge endpoint inside a Connection's main slot.
type ConnectionTarget struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// Connection groups the outputs of a single source node. Main is a list of
// output slots, each a list of targets — the target engine's shape for
// supporting multiple named outputs per node, though this compiler only
// ever populates the first ("main") slot.
type Connection struct {
	Main [][]ConnectionTarget `json:"main"`
}

// Document is the full compiled workflow, ready to hand to the target
// engine's import endpoint.
type Document struct {
	Name        string                `json:"name"`
	Nodes       []Node                `json:"nodes"`
	Connections map[string]Connection `json:"connections"`
	Active      bool                  `json:"active"`
	Settings    map[string]any        `json:"settings"`
	VersionID   string                `json:"versionId"`
	Meta        map[string]string     `json:"meta"`
}

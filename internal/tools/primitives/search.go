package primitives

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/maicrosoft/specmcp/internal/mcp"
	"github.com/maicrosoft/specmcp/internal/registry"
)

const defaultSearchLimit = 20

type searchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Result is one scored hit returned by search_primitives.
type Result struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// Search implements the search_primitives tool: a ranked, free-text search
// over the catalog used by the natural-language planning wrapper to find
// candidate primitives for a plan it is drafting.
type Search struct {
	registry *registry.Registry
}

func NewSearch(reg *registry.Registry) *Search {
	return &Search{registry: reg}
}

func (t *Search) Name() string { return "search_primitives" }

func (t *Search) Description() string {
	return "Rank primitives against a free-text query by relevance: name and description substring hits, and exact tag matches."
}

func (t *Search) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Free-text search query, e.g. 'send a http request' or 'cache lookup'."
    },
    "limit": {
      "type": "integer",
      "description": "Max results to return (default 20).",
      "default": 20
    }
  },
  "required": ["query"]
}`)
}

func (t *Search) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p searchParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if p.Limit <= 0 {
		p.Limit = defaultSearchLimit
	}

	entries, err := t.registry.List("", "", "")
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	var results []Result
	for _, entry := range entries {
		primitive, err := t.registry.Get(entry.ID)
		if err != nil {
			continue
		}

		summary := primitive.ToSummary()
		score := Score(p.Query, summary.Name, summary.Description, summary.Tags)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			ID:          summary.ID,
			Name:        summary.Name,
			Description: summary.Description,
			Score:       score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > p.Limit {
		results = results[:p.Limit]
	}

	return mcp.JSONResult(results)
}

// Score computes the additive relevance heuristic against a primitive's
// name, description, and tags: +10 if the lowercased query is a substring
// of the name; +3 per query word found in the name; +2 per query word
// found in the description; +5 per tag exactly equal (case-insensitive)
// to any query word.
func Score(query, name, description string, tags []string) int {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return 0
	}
	nameLower := strings.ToLower(name)
	descLower := strings.ToLower(description)
	words := strings.Fields(queryLower)

	score := 0
	if strings.Contains(nameLower, queryLower) {
		score += 10
	}
	for _, w := range words {
		if strings.Contains(nameLower, w) {
			score += 3
		}
		if strings.Contains(descLower, w) {
			score += 2
		}
	}
	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		for _, w := range words {
			if tagLower == w {
				score += 5
			}
		}
	}
	return score
}

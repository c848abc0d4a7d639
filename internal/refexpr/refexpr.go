// Package refexpr implements the `{{ ref: NODE.FIELD }}` reference
// micro-language shared by two call sites: the registry's input
// type-checking escape hatch and the compiler's rewriting into a target
// engine's expression syntax. It is defined once here rather than
// pattern-matched inline at each site.
package refexpr

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`\{\{\s*ref:\s*([^}]+)\s*\}\}`)

const defaultField = "body"

// IsDeferred reports whether s (once surrounding whitespace is trimmed)
// begins with the `{{` marker, meaning it names a deferred expression
// whose real runtime type isn't known until the target engine evaluates it.
func IsDeferred(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "{{")
}

// Find locates the first `{{ ref: NODE.FIELD }}` placeholder in s. FIELD
// is optional and defaults to "body" when the reference names only a node
// id. match is the full matched placeholder text (including the braces),
// suitable for a literal string replacement.
func Find(s string) (nodeID, field, match string, ok bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", false
	}

	ref := strings.TrimSpace(m[1])
	parts := strings.SplitN(ref, ".", 2)
	nodeID = parts[0]
	field = defaultField
	if len(parts) > 1 {
		field = parts[1]
	}
	return nodeID, field, m[0], true
}

// Package ident extracts workflow identifiers from source text.
package ident

import "regexp"

// workflowIDRe matches an assignment like workflow_id = "1234abcd-...".
// Single or double quotes, case-insensitive, whitespace around '=' optional.
var workflowIDRe = regexp.MustCompile(`(?i)workflow_id\s*=\s*['"]([0-9a-f][0-9a-f-]*)['"]`)

// WorkflowID returns the first workflow identifier assigned in text.
// The second return is false when no assignment is present.
func WorkflowID(text string) (string, bool) {
	m := workflowIDRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

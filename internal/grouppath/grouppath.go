// Package grouppath normalizes and validates hierarchical group names.
//
// Group names arrive from user input and from the sync metadata marker, and
// may be backslash-delimited or carry repeated separators. Every operation
// that builds a filesystem path or a remote group name from one of these
// strings must normalize and validate it first.
package grouppath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsafeSegment is returned when a path contains an empty, ".", or ".."
// segment.
var ErrUnsafeSegment = fmt.Errorf("group path contains an unsafe segment")

// Path is a normalized group path: an ordered list of non-empty segments plus
// a flag recording whether the raw input had a leading slash.
type Path struct {
	Segments []string
	Rooted   bool
}

// Normalize converts a raw group name into canonical form. Backslashes become
// forward slashes, empty segments (repeated, leading, or trailing separators)
// are dropped, and the leading-slash flag is recorded separately.
// Normalize never fails; safety is checked by Validate.
func Normalize(raw string) Path {
	s := strings.ReplaceAll(raw, "\\", "/")
	p := Path{Rooted: strings.HasPrefix(s, "/")}
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			p.Segments = append(p.Segments, seg)
		}
	}
	return p
}

// String returns the canonical forward-slash form.
func (p Path) String() string {
	joined := strings.Join(p.Segments, "/")
	if p.Rooted {
		return "/" + joined
	}
	return joined
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Validate rejects paths containing traversal segments. A path is safe iff
// every segment is non-empty and not equal to "." or "..".
func (p Path) Validate() error {
	for _, seg := range p.Segments {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrUnsafeSegment, seg)
		}
	}
	return nil
}

// FullName combines a base group path with user-entered input. Overlap between
// the tail of base and the head of input is merged so the shared portion is
// not duplicated: base "proj/groupA" + input "groupA/sub" yields
// "proj/groupA/sub", and input that already starts with the whole base is used
// as-is. The Rooted flag propagates if either side had one.
func FullName(base, input Path) Path {
	out := Path{Rooted: base.Rooted || input.Rooted}

	// Largest k where base's last k segments equal input's first k.
	max := len(base.Segments)
	if len(input.Segments) < max {
		max = len(input.Segments)
	}
	overlap := 0
	for k := max; k > 0; k-- {
		if segmentsEqual(base.Segments[len(base.Segments)-k:], input.Segments[:k]) {
			overlap = k
			break
		}
	}

	out.Segments = append(out.Segments, base.Segments...)
	out.Segments = append(out.Segments, input.Segments[overlap:]...)
	return out
}

// LocalDir resolves the workspace directory that corresponds to full, given
// that the workspace root was materialized from base. When full extends base,
// the segments beyond base are joined onto root; otherwise root itself is
// returned.
func LocalDir(root string, base, full Path) string {
	if len(full.Segments) <= len(base.Segments) {
		return root
	}
	if !segmentsEqual(base.Segments, full.Segments[:len(base.Segments)]) {
		return root
	}
	rel := full.Segments[len(base.Segments):]
	return filepath.Join(append([]string{root}, rel...)...)
}

func segmentsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

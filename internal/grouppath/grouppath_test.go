package grouppath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		rooted bool
	}{
		{name: "plain", raw: "proj/groupA", want: "proj/groupA"},
		{name: "backslashes", raw: `proj\groupA\sub`, want: "proj/groupA/sub"},
		{name: "mixed separators", raw: `proj\groupA/sub`, want: "proj/groupA/sub"},
		{name: "repeated slashes", raw: "proj//groupA///sub", want: "proj/groupA/sub"},
		{name: "trailing slash", raw: "proj/groupA/", want: "proj/groupA"},
		{name: "leading slash", raw: "/proj/groupA", want: "/proj/groupA", rooted: true},
		{name: "leading backslash", raw: `\proj\groupA`, want: "/proj/groupA", rooted: true},
		{name: "only slashes", raw: "///", want: "/", rooted: true},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.raw)
			assert.Equal(t, tt.want, p.String())
			assert.Equal(t, tt.rooted, p.Rooted)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{`proj\groupA`, "proj//groupA/", "/a/b/c", "a", ""}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once.String())
		assert.Equal(t, once, twice, "input %q", raw)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		raw    string
		unsafe bool
	}{
		{raw: "proj/groupA", unsafe: false},
		{raw: "a/./b", unsafe: true},
		{raw: "../a", unsafe: true},
		{raw: "a/b/..", unsafe: true},
		{raw: `..\a`, unsafe: true},
		{raw: "a/..hidden", unsafe: false}, // "..hidden" is a real name
		{raw: "", unsafe: false},           // empty path has no segments to reject
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := Normalize(tt.raw).Validate()
			if tt.unsafe {
				require.ErrorIs(t, err, ErrUnsafeSegment)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		input string
		want  string
	}{
		{name: "shared prefix merged", base: "proj/groupA", input: "groupA/sub", want: "proj/groupA/sub"},
		{name: "plain relative", base: "proj/groupA", input: "sub", want: "proj/groupA/sub"},
		{name: "input starts with base", base: "proj/groupA", input: "proj/groupA/sub", want: "proj/groupA/sub"},
		{name: "no overlap deep", base: "proj/groupA", input: "x/y", want: "proj/groupA/x/y"},
		{name: "empty input", base: "proj/groupA", input: "", want: "proj/groupA"},
		{name: "empty base", base: "", input: "sub", want: "sub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullName(Normalize(tt.base), Normalize(tt.input))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFullNameRootedPropagates(t *testing.T) {
	got := FullName(Normalize("/proj"), Normalize("sub"))
	assert.True(t, got.Rooted)
	assert.Equal(t, "/proj/sub", got.String())

	got = FullName(Normalize("proj"), Normalize("/sub"))
	assert.True(t, got.Rooted)
}

func TestLocalDir(t *testing.T) {
	root := filepath.FromSlash("/ws")

	tests := []struct {
		name string
		base string
		full string
		want string
	}{
		{name: "extends base", base: "g", full: "g/a/b", want: filepath.Join(root, "a", "b")},
		{name: "equals base", base: "g", full: "g", want: root},
		{name: "does not extend base", base: "g", full: "other/a", want: root},
		{name: "multi-segment base", base: "proj/groupA", full: "proj/groupA/sub", want: filepath.Join(root, "sub")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalDir(root, Normalize(tt.base), Normalize(tt.full))
			assert.Equal(t, tt.want, got)
		})
	}
}

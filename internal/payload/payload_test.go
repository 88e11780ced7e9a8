package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"status": "ok"}`,
			want:  `{"status": "ok"}`,
		},
		{
			name:  "bare array",
			input: `[1, 2, 3]`,
			want:  `[1, 2, 3]`,
		},
		{
			name:  "whitespace around value",
			input: "\n  {\"a\": 1}\n\n",
			want:  `{"a": 1}`,
		},
		{
			name:  "log lines before payload",
			input: "Building workflow...\nUploading assets\n{\"workflow_id\": \"abc\", \"status\": \"deployed\"}",
			want:  `{"workflow_id": "abc", "status": "deployed"}`,
		},
		{
			name:  "log lines after payload",
			input: "{\"runs\": []}\nDone in 3.2s\n",
			want:  `{"runs": []}`,
		},
		{
			name:  "array with surrounding noise",
			input: "fetching...\n[{\"run_id\": 1}, {\"run_id\": 2}]\nok",
			want:  `[{"run_id": 1}, {"run_id": 2}]`,
		},
		{
			name:  "braces inside string values",
			input: "note\n{\"msg\": \"literal } and { inside\"}\ntrailing",
			want:  `{"msg": "literal } and { inside"}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: "x {\"msg\": \"she said \\\"}\\\"\"} y",
			want:  `{"msg": "she said \"}\""}`,
		},
		{
			name:  "nested objects",
			input: "log\n{\"a\": {\"b\": [1, {\"c\": 2}]}}\n",
			want:  `{"a": {"b": [1, {"c": 2}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// Trailing log lines with stray brackets defeat the naive first/last heuristic
// but not the balanced scan.
func TestExtractStrayBracketsAfterPayload(t *testing.T) {
	input := "{\"status\": \"failed\"}\nTraceback (most recent call last):\n  File \"tool.py\", line 1\nKeyError: 'x'}\n"
	got, err := Extract(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "failed"}`, string(got))
}

func TestExtractStrayBracketsBeforePayload(t *testing.T) {
	input := "warn: unmatched } in template\n{\"ok\": true}\n"
	got, err := Extract(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(got))
}

func TestExtractNoPayload(t *testing.T) {
	inputs := []string{
		"",
		"plain log output with no json",
		"half open { never closed",
		"{not json at all}",
		"] [",
	}
	for _, in := range inputs {
		_, err := Extract(in)
		require.ErrorIs(t, err, ErrNoPayload, "input %q", in)
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		WorkflowID string `json:"workflow_id"`
	}
	err := Decode("deploying...\n{\"workflow_id\": \"abc-123\"}\n", &out)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", out.WorkflowID)
}

func TestDecodeTypeMismatch(t *testing.T) {
	var out []int
	err := Decode(`{"a": 1}`, &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPayload)
}

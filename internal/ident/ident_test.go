package ident

import "testing"

func TestWorkflowID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "double quotes",
			input: `workflow_id = "1234abcd-5678-90ef-aaaa-bbbbccccdddd"`,
			want:  "1234abcd-5678-90ef-aaaa-bbbbccccdddd",
			found: true,
		},
		{
			name:  "single quotes no spaces",
			input: `workflow_id='1234abcd-5678-90ef-aaaa-bbbbccccdddd'`,
			want:  "1234abcd-5678-90ef-aaaa-bbbbccccdddd",
			found: true,
		},
		{
			name:  "case insensitive",
			input: `WORKFLOW_ID = "deadbeef-0000-1111-2222-333344445555"`,
			want:  "deadbeef-0000-1111-2222-333344445555",
			found: true,
		},
		{
			name: "embedded in source",
			input: "import wftool\n\nworkflow_id = \"1234abcd-5678-90ef-aaaa-bbbbccccdddd\"\n\ndef report():\n    pass\n",
			want:  "1234abcd-5678-90ef-aaaa-bbbbccccdddd",
			found: true,
		},
		{
			name:  "first match wins",
			input: "workflow_id = 'aaaa-bbbb'\nworkflow_id = 'cccc-dddd'\n",
			want:  "aaaa-bbbb",
			found: true,
		},
		{
			name:  "no assignment",
			input: "def report():\n    return 42\n",
			found: false,
		},
		{
			name:  "unquoted value ignored",
			input: "workflow_id = some_variable",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := WorkflowID(tt.input)
			if found != tt.found {
				t.Fatalf("WorkflowID() found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("WorkflowID() = %q, want %q", got, tt.want)
			}
		})
	}
}

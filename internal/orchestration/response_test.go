package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResponseMarkers(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		success bool
		failure bool
	}{
		{"check mark", "✅ Successfully created project 'Atlas' with identifier 'ATLAS'", true, false},
		{"list marker", "📋 Projects in workspace 'Acme':\n- Atlas (ATLAS)", true, false},
		{"cross mark", "❌ Issue #7 not found in this workspace.", false, true},
		{"failure word wins", "✅ partial but Failed overall", false, true},
		{"warning is neither", "⚠️ Issue #7 was already assigned to Alice.", false, false},
		{"plain advice", "Consider splitting the work into two cycles.", false, false},
		{"cycle marker", "📅 Cycles in workspace 'Acme':", true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := FormatResponse(tc.text)
			assert.Equal(t, tc.success, resp.Success, "success")
			assert.Equal(t, tc.failure, resp.Failure, "failure")
			assert.Equal(t, tc.text, resp.Response)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}

func TestInferOperationType(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Multi-step operation results:\nStep 1: ✅ done", "multi_step"},
		{"✅ Successfully created issue #3: 'Fix login' in project 'Atlas'", "create"},
		{"✅ Successfully updated issue #3 'Fix login' - priority set to high.", "update"},
		{"Labels removed from the board", "delete"},
		{"Showing all cycles for the current project", "list"},
		{"📋 Projects in workspace 'Acme':", "general"},
		{"Here is some general advice.", "general"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, inferOperationType(tc.text), tc.text)
	}
}

func TestFormatResponseHTML(t *testing.T) {
	resp := FormatResponse("line one\nline two")
	assert.Equal(t, "line one<br/>line two", resp.ResponseHTML)
}

package orchestration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/workspace-management/internal/ai"
	"github.com/nhle/workspace-management/tests/testutil"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"intent": "UNKNOWN"}`, `{"intent": "UNKNOWN"}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFence(tc.in), tc.in)
	}
}

func TestClassifyIntentNilClient(t *testing.T) {
	o := New(nil, nil, nil, Options{}, zerolog.Nop())

	result, err := o.classifyIntent(context.Background(), "anything", "{}")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
	assert.Equal(t, IntentUnknown, result.Intent)
}

func TestClassifyIntentParsesFencedJSON(t *testing.T) {
	fake := &testutil.FakeAI{
		Responses: []string{"```json\n{\"intent\": \"CREATE_ISSUE\", \"confidence\": 0.85}\n```"},
	}
	o := New(nil, fake, nil, Options{}, zerolog.Nop())

	result, err := o.classifyIntent(context.Background(), "file a bug", "{}")
	require.NoError(t, err)
	assert.Equal(t, IntentCreateIssue, result.Intent)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestClassifyIntentEmptyIntentDefaultsToUnknown(t *testing.T) {
	fake := &testutil.FakeAI{Responses: []string{`{"confidence": 0.9}`}}
	o := New(nil, fake, nil, Options{}, zerolog.Nop())

	result, err := o.classifyIntent(context.Background(), "hmm", "{}")
	require.NoError(t, err)
	assert.Equal(t, IntentUnknown, result.Intent)
}

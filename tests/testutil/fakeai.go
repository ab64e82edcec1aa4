package testutil

import (
	"context"
	"errors"
)

// FakeAI is a scripted ai.Client: each Complete call pops the next
// response (or error) in order. It records every prompt it receives.
type FakeAI struct {
	Responses []string
	Errs      []error
	Prompts   []string
}

// ErrFakeExhausted is returned when the script runs out of responses.
var ErrFakeExhausted = errors.New("fake ai: no scripted responses left")

// Complete returns the next scripted response. A nil entry in Errs (or
// a short Errs slice) means the call succeeds.
func (f *FakeAI) Complete(_ context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)

	idx := len(f.Prompts) - 1
	if idx < len(f.Errs) && f.Errs[idx] != nil {
		return "", f.Errs[idx]
	}
	if idx < len(f.Responses) {
		return f.Responses[idx], nil
	}
	return "", ErrFakeExhausted
}

// Calls reports how many completions were requested.
func (f *FakeAI) Calls() int {
	return len(f.Prompts)
}

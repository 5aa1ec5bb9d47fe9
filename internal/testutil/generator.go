package testutil

import (
	"context"
	"sync"
)

// FakeGenerator records calls and answers with canned text.
type FakeGenerator struct {
	mu      sync.Mutex
	Calls   []GenerateCall
	Text    string
	Err     error
	Release chan struct{}
}

type GenerateCall struct {
	Prompt string
	Model  string
	Stream bool
}

func (f *FakeGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	return f.record(ctx, GenerateCall{Prompt: prompt, Model: model})
}

func (f *FakeGenerator) GenerateStream(ctx context.Context, prompt, model string) (string, error) {
	return f.record(ctx, GenerateCall{Prompt: prompt, Model: model, Stream: true})
}

func (f *FakeGenerator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

func (f *FakeGenerator) record(ctx context.Context, call GenerateCall) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	release := f.Release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return f.Text, f.Err
}

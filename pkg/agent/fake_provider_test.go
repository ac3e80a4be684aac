package agent

import (
	"context"

	"realestate-buyer-be/pkg/llm"
)

// fakeProvider scripts model behaviour for agent tests.
type fakeProvider struct {
	chatResponse string
	chatErr      error

	streamTokens []string
	streamErr    error // returned after the scripted tokens are emitted

	lastHistory []llm.Message
	lastOptions llm.Options
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	f.lastOptions = llm.Options{}
	for _, o := range options {
		o(&f.lastOptions)
	}
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatResponse, nil
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, onToken llm.TokenFunc, options ...llm.Option) error {
	f.lastHistory = history
	f.lastOptions = llm.Options{}
	for _, o := range options {
		o(&f.lastOptions)
	}
	for _, token := range f.streamTokens {
		if err := onToken(token); err != nil {
			return err
		}
	}
	return f.streamErr
}

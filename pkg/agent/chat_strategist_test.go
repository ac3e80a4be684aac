package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestStreamReplyForwardsTokensInOrder(t *testing.T) {
	provider := &fakeProvider{streamTokens: []string{"Tell ", "me ", "more."}}
	strategist := NewChatStrategist(provider, discardLogger())

	var got []string
	err := strategist.StreamReply(context.Background(), nil, nil, func(token string) error {
		got = append(got, token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Tell ", "me ", "more."}, got)
}

func TestStreamReplyEmitsApologyOnProviderFailure(t *testing.T) {
	provider := &fakeProvider{streamErr: errors.New("upstream down")}
	strategist := NewChatStrategist(provider, discardLogger())

	var got []string
	err := strategist.StreamReply(context.Background(), nil, nil, func(token string) error {
		got = append(got, token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{FallbackReply}, got)
}

func TestStreamReplyAppendsApologyOnMidStreamFailure(t *testing.T) {
	provider := &fakeProvider{
		streamTokens: []string{"Let's "},
		streamErr:    errors.New("connection reset"),
	}
	strategist := NewChatStrategist(provider, discardLogger())

	var got []string
	err := strategist.StreamReply(context.Background(), nil, nil, func(token string) error {
		got = append(got, token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Let's ", FallbackReply}, got)
}

func TestStreamReplyReturnsEmitErrorWithoutApology(t *testing.T) {
	provider := &fakeProvider{streamTokens: []string{"one", "two"}}
	strategist := NewChatStrategist(provider, discardLogger())

	sinkErr := errors.New("client went away")
	calls := 0
	err := strategist.StreamReply(context.Background(), nil, nil, func(token string) error {
		calls++
		return sinkErr
	})

	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 1, calls, "no further emits after the sink breaks")
}

func TestStreamReplyBuildsSystemPromptFromPreferences(t *testing.T) {
	provider := &fakeProvider{streamTokens: []string{"ok"}}
	strategist := NewChatStrategist(provider, discardLogger())

	preferences := []PreferenceContext{
		{Category: "budget", Value: "Up to $500k", Confidence: "high"},
	}
	history := []ChatTurn{
		{Role: "user", Content: "Hi Mia"},
	}

	err := strategist.StreamReply(context.Background(), history, preferences, func(string) error { return nil })
	require.NoError(t, err)

	require.Len(t, provider.lastHistory, 2)
	system := provider.lastHistory[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "budget: Up to $500k (confidence: high)")
	assert.Equal(t, "user", provider.lastHistory[1].Role)
}

func TestPreferencesContextEmpty(t *testing.T) {
	got := preferencesContext(nil)
	assert.True(t, strings.Contains(got, "No preferences"), got)
}

package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-buyer-be/internal/constant"
	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/pkg/serverutils"
	"realestate-buyer-be/pkg/agent"

	"github.com/google/uuid"
)

const extractionResponse = `{
	"preferences": [
		{"category": "budget", "value": "Up to $650,000", "confidence": "high"},
		{"category": "bedrooms", "value": "At least 3", "confidence": "certain"}
	],
	"summary": "Family buyer with a firm budget."
}`

func newSessionServiceForTest(provider *fakeLLM) (ISessionService, *fakeFactory, *fakePublisher, *gocache.Cache) {
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	cache := gocache.New(time.Minute, time.Minute)
	parser := agent.NewTranscriptParser(provider, log.New(io.Discard, "", 0))
	svc := NewSessionService(factory, parser, publisher, cache, nopLogger{})
	return svc, factory, publisher, cache
}

func longTranscript(length int) string {
	return strings.Repeat("a", length)
}

func TestCreateStartsInParsing(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{})

	res, err := svc.Create(context.Background(), &dto.CreateSessionRequest{BuyerName: "  Dana Miller  "})

	require.NoError(t, err)
	assert.Equal(t, "parsing", res.Status)
	require.NotNil(t, res.BuyerName)
	assert.Equal(t, "Dana Miller", *res.BuyerName)

	shown, err := svc.Show(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, res.Id, shown.Id)
}

func TestCreateWithoutBuyerName(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{})

	res, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})

	require.NoError(t, err)
	assert.Nil(t, res.BuyerName)
}

func TestShowUnknownSession(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{})

	_, err := svc.Show(context.Background(), uuid.New())

	assert.ErrorIs(t, err, constant.ErrSessionNotFound)
}

func TestUploadTranscriptUnknownSession(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})

	_, err := svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: uuid.New(),
		RawText:   longTranscript(constant.MinTranscriptLength),
	})

	assert.ErrorIs(t, err, constant.ErrSessionNotFound)
}

func TestUploadTranscriptRejectsShortText(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(constant.MinTranscriptLength - 1),
	})

	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, constant.ErrCodeTranscriptTooShort, apiErr.Code)
}

func TestUploadTranscriptCountsCharactersNotBytes(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	// 50 characters but 100 bytes in UTF-8
	_, err = svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   strings.Repeat("é", 50),
	})

	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, constant.ErrCodeTranscriptTooShort, apiErr.Code)

	res, err := svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   strings.Repeat("é", constant.MinTranscriptLength),
	})
	require.NoError(t, err)
	assert.Equal(t, "parsed", res.Status)
}

func TestUploadTranscriptAcceptsMinimumLength(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	res, err := svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(constant.MinTranscriptLength),
	})

	require.NoError(t, err)
	assert.Equal(t, "parsed", res.Status)
}

func TestUploadTranscriptExtractsAndAdvances(t *testing.T) {
	svc, factory, publisher, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	res, err := svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(200),
	})

	require.NoError(t, err)
	assert.Equal(t, session.Id, res.SessionId)
	assert.Equal(t, "parsed", res.Status)
	assert.Equal(t, 2, res.PreferencesCount)

	preferences, err := svc.ListPreferences(context.Background(), session.Id)
	require.NoError(t, err)
	require.Len(t, preferences, 2)
	for _, p := range preferences {
		assert.Equal(t, constant.SourceTranscript, p.Source)
	}

	shown, err := svc.Show(context.Background(), session.Id)
	require.NoError(t, err)
	require.NotNil(t, shown.Summary)
	assert.Equal(t, "Family buyer with a firm budget.", *shown.Summary)

	require.Len(t, factory.store.transcripts, 1)
	assert.Equal(t, session.Id, factory.store.transcripts[0].SessionId)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, constant.EventTranscriptParsed, events[0].EventType)
	assert.Equal(t, session.Id, events[0].SessionId)
}

func TestUploadTranscriptCoercesInvalidConfidence(t *testing.T) {
	svc, factory, _, _ := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(200),
	})
	require.NoError(t, err)

	byCategory := map[string]string{}
	for _, p := range factory.store.preferences {
		byCategory[p.Category] = p.Confidence
	}
	assert.Equal(t, constant.ConfidenceHigh, byCategory["budget"])
	// "certain" is not a known level and collapses to low
	assert.Equal(t, constant.ConfidenceLow, byCategory["bedrooms"])
}

func TestUploadTranscriptDegradesOnExtractionFailure(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{chatErr: errors.New("model offline")})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	res, err := svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(200),
	})

	require.NoError(t, err)
	assert.Equal(t, "parsed", res.Status)
	assert.Equal(t, 0, res.PreferencesCount)
}

func TestUploadTranscriptInvalidatesPreferenceCache(t *testing.T) {
	svc, _, _, cache := newSessionServiceForTest(&fakeLLM{chatResponse: extractionResponse})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	cache.Set(session.Id.String(), []agent.PreferenceContext{{Category: "stale"}}, gocache.DefaultExpiration)

	_, err = svc.UploadTranscript(context.Background(), &dto.UploadTranscriptRequest{
		SessionId: session.Id,
		RawText:   longTranscript(200),
	})
	require.NoError(t, err)

	_, found := cache.Get(session.Id.String())
	assert.False(t, found)
}

func TestListPreferencesOrdersByConfidence(t *testing.T) {
	svc, factory, _, _ := newSessionServiceForTest(&fakeLLM{})
	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	seed := []*entity.Preference{
		{Id: uuid.New(), SessionId: session.Id, Category: "parking", Value: "Garage", Confidence: constant.ConfidenceLow},
		{Id: uuid.New(), SessionId: session.Id, Category: "budget", Value: "$650k", Confidence: constant.ConfidenceHigh},
		{Id: uuid.New(), SessionId: session.Id, Category: "bedrooms", Value: "3+", Confidence: constant.ConfidenceMedium},
		{Id: uuid.New(), SessionId: session.Id, Category: "area", Value: "North side", Confidence: constant.ConfidenceHigh},
	}
	factory.store.preferences = append(factory.store.preferences, seed...)

	preferences, err := svc.ListPreferences(context.Background(), session.Id)

	require.NoError(t, err)
	require.Len(t, preferences, 4)
	assert.Equal(t, "area", preferences[0].Category)
	assert.Equal(t, "budget", preferences[1].Category)
	assert.Equal(t, "bedrooms", preferences[2].Category)
	assert.Equal(t, "parking", preferences[3].Category)
}

func TestListEventsUnknownSession(t *testing.T) {
	svc, _, _, _ := newSessionServiceForTest(&fakeLLM{})

	_, err := svc.ListEvents(context.Background(), uuid.New())

	assert.ErrorIs(t, err, constant.ErrSessionNotFound)
}

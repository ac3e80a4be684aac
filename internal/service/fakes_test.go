package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/contract"
	"realestate-buyer-be/internal/repository/specification"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/llm"
)

// ---- logger ----

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// ---- activity publisher ----

type fakePublisher struct {
	mu       sync.Mutex
	messages []dto.SessionActivityMessage
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	var msg dto.SessionActivityMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakePublisher) published() []dto.SessionActivityMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.SessionActivityMessage(nil), f.messages...)
}

// ---- llm provider ----

type fakeLLM struct {
	chatResponse string
	chatErr      error
	streamTokens []string
	streamErr    error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatResponse, nil
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, onToken llm.TokenFunc, options ...llm.Option) error {
	for _, token := range f.streamTokens {
		if err := onToken(token); err != nil {
			return err
		}
	}
	return f.streamErr
}

// ---- in-memory repositories ----

// memStore backs every fake repository. Specifications are interpreted
// structurally, the small subset the services actually use.
type memStore struct {
	mu          sync.Mutex
	sessions    []*entity.Session
	transcripts []*entity.Transcript
	preferences []*entity.Preference
	messages    []*entity.ChatMessage
	profiles    []*entity.BuyerProfile
	events      []*entity.SessionEvent
}

type fakeFactory struct {
	store *memStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &memStore{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) TranscriptRepository() contract.TranscriptRepository {
	return &fakeTranscriptRepo{store: u.store}
}
func (u *fakeUow) PreferenceRepository() contract.PreferenceRepository {
	return &fakePreferenceRepo{store: u.store}
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepo{store: u.store}
}
func (u *fakeUow) BuyerProfileRepository() contract.BuyerProfileRepository {
	return &fakeBuyerProfileRepo{store: u.store}
}
func (u *fakeUow) SessionEventRepository() contract.SessionEventRepository {
	return &fakeSessionEventRepo{store: u.store}
}

func matchID(id uuid.UUID, specs []specification.Specification) bool {
	for _, sp := range specs {
		if byID, ok := sp.(specification.ByID); ok && id != byID.ID {
			return false
		}
	}
	return true
}

func matchSessionID(sessionId uuid.UUID, specs []specification.Specification) bool {
	for _, sp := range specs {
		if bySession, ok := sp.(specification.BySessionID); ok && sessionId != bySession.SessionID {
			return false
		}
	}
	return true
}

type fakeSessionRepo struct{ store *memStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			copied := *session
			r.store.sessions[i] = &copied
			return nil
		}
	}
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if matchID(s.Id, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Session, 0, len(r.store.sessions))
	for _, s := range r.store.sessions {
		if matchID(s.Id, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeTranscriptRepo struct{ store *memStore }

func (r *fakeTranscriptRepo) Create(ctx context.Context, transcript *entity.Transcript) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *transcript
	r.store.transcripts = append(r.store.transcripts, &copied)
	return nil
}

func (r *fakeTranscriptRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, tr := range r.store.transcripts {
		if matchID(tr.Id, specs) && matchSessionID(tr.SessionId, specs) {
			copied := *tr
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTranscriptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*entity.Transcript{}
	for _, tr := range r.store.transcripts {
		if matchSessionID(tr.SessionId, specs) {
			copied := *tr
			out = append(out, &copied)
		}
	}
	return out, nil
}

var confidenceRank = map[string]int{"high": 0, "medium": 1, "low": 2}

type fakePreferenceRepo struct{ store *memStore }

func (r *fakePreferenceRepo) Create(ctx context.Context, preference *entity.Preference) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *preference
	r.store.preferences = append(r.store.preferences, &copied)
	return nil
}

func (r *fakePreferenceRepo) CreateBatch(ctx context.Context, preferences []*entity.Preference) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range preferences {
		copied := *p
		r.store.preferences = append(r.store.preferences, &copied)
	}
	return nil
}

func (r *fakePreferenceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Preference, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*entity.Preference{}
	orderByConfidence := false
	for _, sp := range specs {
		if _, ok := sp.(specification.OrderByConfidence); ok {
			orderByConfidence = true
		}
	}
	for _, p := range r.store.preferences {
		if matchSessionID(p.SessionId, specs) {
			copied := *p
			out = append(out, &copied)
		}
	}
	if orderByConfidence {
		sort.SliceStable(out, func(i, j int) bool {
			ri, oki := confidenceRank[out[i].Confidence]
			rj, okj := confidenceRank[out[j].Confidence]
			if !oki {
				ri = 3
			}
			if !okj {
				rj = 3
			}
			if ri != rj {
				return ri < rj
			}
			return out[i].Category < out[j].Category
		})
	}
	return out, nil
}

func (r *fakePreferenceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeChatMessageRepo struct{ store *memStore }

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*entity.ChatMessage{}
	for _, m := range r.store.messages {
		if matchSessionID(m.SessionId, specs) {
			copied := *m
			out = append(out, &copied)
		}
	}

	orderFields := []string{}
	for _, sp := range specs {
		if order, ok := sp.(specification.OrderBy); ok {
			orderFields = append(orderFields, order.Field)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, field := range orderFields {
			switch field {
			case "turn_number":
				if out[i].TurnNumber != out[j].TurnNumber {
					return out[i].TurnNumber < out[j].TurnNumber
				}
			case "created_at":
				if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
					return out[i].CreatedAt.Before(out[j].CreatedAt)
				}
			}
		}
		return false
	})
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeBuyerProfileRepo struct{ store *memStore }

func (r *fakeBuyerProfileRepo) Create(ctx context.Context, profile *entity.BuyerProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *profile
	r.store.profiles = append(r.store.profiles, &copied)
	return nil
}

func (r *fakeBuyerProfileRepo) Update(ctx context.Context, profile *entity.BuyerProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.profiles {
		if p.Id == profile.Id {
			copied := *profile
			r.store.profiles[i] = &copied
			return nil
		}
	}
	copied := *profile
	r.store.profiles = append(r.store.profiles, &copied)
	return nil
}

func (r *fakeBuyerProfileRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.BuyerProfile, error) {
	return r.FindOne(ctx, specification.BySessionID{SessionID: sessionId})
}

func (r *fakeBuyerProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BuyerProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.profiles {
		if matchID(p.Id, specs) && matchSessionID(p.SessionId, specs) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSessionEventRepo struct{ store *memStore }

func (r *fakeSessionEventRepo) Create(ctx context.Context, event *entity.SessionEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *event
	r.store.events = append(r.store.events, &copied)
	return nil
}

func (r *fakeSessionEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []*entity.SessionEvent{}
	for _, e := range r.store.events {
		if matchSessionID(e.SessionId, specs) {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
	"topweb-backend/internal/store"
)

type fakeKV struct {
	data map[string]string
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type fakeChatbot struct {
	lastHistory []domain.ChatMessage
}

func (f *fakeChatbot) GenerateResponse(ctx context.Context, message string, history []domain.ChatMessage) string {
	f.lastHistory = history
	return "canned reply"
}

func (f *fakeChatbot) AnalyzeSentiment(ctx context.Context, message string) domain.Sentiment {
	return domain.Sentiment{Rating: 4, Confidence: 0.8}
}

type fakeChatsRepo struct {
	bySession map[string]*domain.ChatConversation
	nextID    int
}

func (f *fakeChatsRepo) CreateConversation(ctx context.Context, sessionID string, messages []domain.ChatMessage) (*domain.ChatConversation, error) {
	f.nextID++
	conv := &domain.ChatConversation{ID: f.nextID, SessionID: sessionID, Messages: messages}
	f.bySession[sessionID] = conv
	return conv, nil
}

func (f *fakeChatsRepo) GetConversationBySession(ctx context.Context, sessionID string) (*domain.ChatConversation, error) {
	conv, ok := f.bySession[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return conv, nil
}

func (f *fakeChatsRepo) UpdateConversationMessages(ctx context.Context, id int, messages []domain.ChatMessage) (*domain.ChatConversation, error) {
	for _, conv := range f.bySession {
		if conv.ID == id {
			conv.Messages = messages
			return conv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newChatTestHandler() (*ChatHandler, *fakeChatbot, *fakeChatsRepo, *fakeKV) {
	chatbot := &fakeChatbot{}
	chats := &fakeChatsRepo{bySession: map[string]*domain.ChatConversation{}}
	kv := &fakeKV{data: map[string]string{}}
	return NewChatHandler(chatbot, chats, kv, zap.NewNop()), chatbot, chats, kv
}

func TestHandleChat_NewSession(t *testing.T) {
	h, _, chats, kv := newChatTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"tell me about seo","sessionId":"sess-1"}`))
	w := httptest.NewRecorder()
	h.HandleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"response":"canned reply"`) {
		t.Fatalf("expected chatbot reply, got: %s", body)
	}
	if !strings.Contains(body, `"rating":4`) || !strings.Contains(body, `"confidence":0.8`) {
		t.Fatalf("expected sentiment in response, got: %s", body)
	}

	conv := chats.bySession["sess-1"]
	if conv == nil || len(conv.Messages) != 2 {
		t.Fatalf("expected persisted conversation with 2 messages, got: %+v", conv)
	}
	if conv.Messages[0].Role != "user" || conv.Messages[1].Role != "assistant" {
		t.Fatalf("unexpected message roles: %+v", conv.Messages)
	}
	if _, ok := kv.data[chatCachePrefix+"sess-1"]; !ok {
		t.Fatalf("expected conversation cached, cache: %v", kv.data)
	}
}

func TestHandleChat_ExistingSessionAppends(t *testing.T) {
	h, chatbot, chats, _ := newChatTestHandler()
	chats.bySession["sess-1"] = &domain.ChatConversation{
		ID:        7,
		SessionID: "sess-1",
		Messages: []domain.ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"what about ppc?","sessionId":"sess-1"}`))
	w := httptest.NewRecorder()
	h.HandleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(chatbot.lastHistory) != 2 {
		t.Fatalf("expected prior history passed to chatbot, got %d messages", len(chatbot.lastHistory))
	}
	if got := len(chats.bySession["sess-1"].Messages); got != 4 {
		t.Fatalf("expected 4 messages after append, got %d", got)
	}
}

func TestHandleChat_HistoryServedFromCache(t *testing.T) {
	h, chatbot, chats, kv := newChatTestHandler()
	// Cache holds the conversation; the repo needs it too so the update lands.
	chats.bySession["sess-1"] = &domain.ChatConversation{ID: 3, SessionID: "sess-1"}
	kv.data[chatCachePrefix+"sess-1"] = `{"id":3,"sessionId":"sess-1","messages":[{"role":"user","content":"cached"}]}`

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"more","sessionId":"sess-1"}`))
	w := httptest.NewRecorder()
	h.HandleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(chatbot.lastHistory) != 1 || chatbot.lastHistory[0].Content != "cached" {
		t.Fatalf("expected history from cache, got: %+v", chatbot.lastHistory)
	}
}

func TestHandleChat_CorruptCacheEntryDropped(t *testing.T) {
	h, chatbot, chats, kv := newChatTestHandler()
	chats.bySession["sess-1"] = &domain.ChatConversation{
		ID:        5,
		SessionID: "sess-1",
		Messages:  []domain.ChatMessage{{Role: "user", Content: "from-db"}},
	}
	kv.data[chatCachePrefix+"sess-1"] = `{not json`

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"hi","sessionId":"sess-1"}`))
	w := httptest.NewRecorder()
	h.HandleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// History came from Postgres, not the broken cache entry.
	if len(chatbot.lastHistory) != 1 || chatbot.lastHistory[0].Content != "from-db" {
		t.Fatalf("expected history from repo, got: %+v", chatbot.lastHistory)
	}
	// The broken entry was replaced by the refreshed conversation.
	if cached := kv.data[chatCachePrefix+"sess-1"]; strings.Contains(cached, "{not json") {
		t.Fatalf("expected corrupt cache entry replaced, got: %s", cached)
	}
}

func TestHandleChat_RequiresMessageAndSession(t *testing.T) {
	h, _, _, _ := newChatTestHandler()

	cases := []string{
		`{"sessionId":"sess-1"}`,
		`{"message":"hi"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.HandleChat(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"topweb-backend/internal/domain"
)

type fakeCompletion struct {
	reply string
	err   error
	last  CompletionRequest
}

func (f *fakeCompletion) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.last = req
	return f.reply, f.err
}

func TestGenerateResponse_UsesModelReply(t *testing.T) {
	ai := &fakeCompletion{reply: "Sure, our SEO plans start at $220/month."}
	svc := NewChatbotService(ai, zap.NewNop())

	got := svc.GenerateResponse(context.Background(), "tell me about seo", nil)

	assert.Equal(t, "Sure, our SEO plans start at $220/month.", got)
	assert.Equal(t, "system", ai.last.Messages[0].Role)
	assert.Equal(t, "user", ai.last.Messages[len(ai.last.Messages)-1].Role)
	assert.Equal(t, 800, ai.last.MaxTokens)
}

func TestGenerateResponse_IncludesHistory(t *testing.T) {
	ai := &fakeCompletion{reply: "ok"}
	svc := NewChatbotService(ai, zap.NewNop())

	history := []domain.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	svc.GenerateResponse(context.Background(), "what about ppc?", history)

	assert.Len(t, ai.last.Messages, 4)
	assert.Equal(t, "hi", ai.last.Messages[1].Content)
	assert.Equal(t, "assistant", ai.last.Messages[2].Role)
}

func TestGenerateResponse_FallsBackOnError(t *testing.T) {
	ai := &fakeCompletion{err: errors.New("rate limited")}
	svc := NewChatbotService(ai, zap.NewNop())

	got := svc.GenerateResponse(context.Background(), "how much does seo cost?", nil)

	assert.Contains(t, got, "$220/month")
}

func TestSmartFallback_PriorityOrder(t *testing.T) {
	svc := NewChatbotService(&fakeCompletion{}, zap.NewNop())

	// Mentions both SEO and price; the SEO rule wins.
	got := svc.SmartFallback("what is the price of your seo package?")
	assert.Contains(t, got, "Great question about SEO")

	got = svc.SmartFallback("how much do you charge?")
	assert.Contains(t, got, "service prices")
}

func TestSmartFallback_CaseInsensitive(t *testing.T) {
	svc := NewChatbotService(&fakeCompletion{}, zap.NewNop())

	got := svc.SmartFallback("I NEED A WEBSITE")
	assert.Contains(t, got, "custom websites")
}

func TestSmartFallback_Rules(t *testing.T) {
	svc := NewChatbotService(&fakeCompletion{}, zap.NewNop())

	cases := []struct {
		message string
		want    string
	}{
		{"help with my google business listing", "Google My Business"},
		{"do you run facebook pages?", "Social Media Campaign"},
		{"I want to run ads", "PPC Campaign"},
		{"looking for a virtual assistant", "AI Virtual Assistants"},
		{"what's your phone number?", "217 Flinders St"},
		{"hello there", "How can I help you today?"},
	}
	for _, tc := range cases {
		got := svc.SmartFallback(tc.message)
		if !strings.Contains(got, tc.want) {
			t.Errorf("SmartFallback(%q): expected response containing %q, got %q", tc.message, tc.want, got)
		}
	}
}

func TestAnalyzeSentiment_ParsesAndClamps(t *testing.T) {
	cases := []struct {
		name           string
		reply          string
		err            error
		wantRating     int
		wantConfidence float64
	}{
		{"in range", `{"rating": 4, "confidence": 0.9}`, nil, 4, 0.9},
		{"rounds rating", `{"rating": 4.6, "confidence": 0.5}`, nil, 5, 0.5},
		{"clamps high", `{"rating": 9, "confidence": 1.7}`, nil, 5, 1},
		{"clamps low", `{"rating": -2, "confidence": -0.3}`, nil, 1, 0},
		{"malformed json", `five stars!`, nil, 3, 0.5},
		{"api error", "", errors.New("timeout"), 3, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewChatbotService(&fakeCompletion{reply: tc.reply, err: tc.err}, zap.NewNop())

			got := svc.AnalyzeSentiment(context.Background(), "great service")

			assert.Equal(t, tc.wantRating, got.Rating)
			assert.InDelta(t, tc.wantConfidence, got.Confidence, 0.0001)
		})
	}
}

func TestAnalyzeSentiment_RequestsJSONObject(t *testing.T) {
	ai := &fakeCompletion{reply: `{"rating": 3, "confidence": 0.5}`}
	svc := NewChatbotService(ai, zap.NewNop())

	svc.AnalyzeSentiment(context.Background(), "fine")

	assert.True(t, ai.last.JSONObject)
}

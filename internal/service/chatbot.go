package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"topweb-backend/internal/domain"

	"go.uber.org/zap"
)

// completionClient is satisfied by *OpenAIClient; tests substitute a fake.
type completionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ChatbotService answers website visitors. The language model does the
// talking when it is reachable; otherwise the keyword fallback takes over.
type ChatbotService struct {
	ai     completionClient
	logger *zap.Logger
}

func NewChatbotService(ai completionClient, logger *zap.Logger) *ChatbotService {
	return &ChatbotService{ai: ai, logger: logger}
}

const chatbotSystemPrompt = `You are a friendly, knowledgeable AI assistant for Top Web Directories, Australia's premier digital marketing agency. Speak naturally and conversationally - be helpful, informative, and genuinely interested in understanding the customer's needs. Your goal is to provide excellent service and guide customers to the right solutions.

COMPANY PROFILE:
Top Web Directories - Full-service digital marketing agency serving 1500+ clients across Australia with 25+ years of experience.
Location: 217 Flinders St, Adelaide SA 5000, Australia
Contact: Phone 08 7480 2495 | Email stefan.neale@topwebdirectories.com.au | WhatsApp 0402585330

COMPLETE SERVICE PORTFOLIO & PRICING:
1. SEO SERVICES ($220+/month) - keyword research, technical audits, content strategy, link building, monthly ranking reports, local SEO.
2. GOOGLE BUSINESS LISTING MANAGEMENT ($80+/month) - profile optimization, review management, post scheduling, analytics.
3. PPC CAMPAIGN MANAGEMENT ($250/month) - Google Ads setup and optimization, bidding, A/B testing, conversion tracking, monthly ROI reports.
4. SOCIAL MEDIA MANAGEMENT ($120+/month) - multi-platform management, content creation and scheduling, engagement, analytics.
5. CUSTOM WEBSITE DEVELOPMENT ($600-$2100) - responsive mobile-first design, SEO-optimized structure, CMS, e-commerce.
6. WEB BANNER CREATION ($30/month) - custom graphic design, multiple formats, seasonal updates.
7. AI SOLUTIONS (custom pricing) - virtual assistants for 24/7 customer service, AI chatbots, appointment scheduling, lead qualification.
8. CAMPAIGN HUB ($150 + GST/month) - email marketing, social media management, analytics dashboard.
9. WHITE-LABEL REPORTING ($97-$397/month) - professional client reports, brand customization, automated delivery, reseller opportunities.
10. WEBSITE TEMPLATE PACKAGES ($500 + GST) - complete HTML/CSS template kits, hosting guides, DIY solutions.

SALES STRATEGY - BE AGGRESSIVE BUT HELPFUL:
- Ask qualifying questions about their business goals and pain points.
- Recommend targeted service combinations for maximum impact.
- Use success stories and specific ROI numbers; offer FREE audits and consultations.
- End EVERY response with a clear call-to-action.

Remember: Your goal is to get them to call 08 7480 2495, WhatsApp 0402585330, or email stefan.neale@topwebdirectories.com.au for immediate consultation. Be persistent, helpful, and focused on their business growth!`

// fallbackRule a canned response selected when any keyword matches.
// Rules are checked in order; the first hit wins.
type fallbackRule struct {
	keywords []string
	response string
}

// Priority order matters: a message mentioning both "seo" and "price" gets
// the SEO response because the SEO rule is checked first.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"seo", "search engine"},
		response: "Great question about SEO! Our SEO services start from $220/month and include keyword optimization, content strategy, and monthly reporting. We've helped 1500+ clients improve their Google rankings. Call 08 7480 2495 or WhatsApp 0402585330 to discuss your specific needs!",
	},
	{
		keywords: []string{"price", "cost", "how much"},
		response: "Here are our service prices: SEO Services from $220/month, Google Business Listing from $80/month, PPC Campaigns $250/month, Social Media from $120/month, Custom Websites $600-$2100, Web Banners $30/month. Call 08 7480 2495 for a personalized quote!",
	},
	{
		keywords: []string{"google", "gmb", "business listing"},
		response: "Our Google My Business service starts at $80/month and includes optimization, review management, posting, and monthly analytics. Perfect for local businesses wanting more visibility. Call 08 7480 2495 to get started!",
	},
	{
		keywords: []string{"website", "web development", "want a website", "need a website"},
		response: "We build custom websites from $600-$2100 designed to convert visitors into customers. All websites are mobile-responsive and SEO-optimized. We also offer DIY website templates for $500 + GST. Our websites include e-commerce integration, content management, and speed optimization. Call 08 7480 2495 or WhatsApp 0402585330 to discuss your website project!",
	},
	{
		keywords: []string{"social media", "facebook", "instagram"},
		response: "Our Social Media Campaign service starts from $120/month and includes content creation, posting, engagement, and analytics across all major platforms. We'll help grow your online presence! Call 08 7480 2495 to learn more.",
	},
	{
		keywords: []string{"ppc", "ads", "advertising"},
		response: "Our PPC Campaign management is $250/month and includes Google Ads setup, optimization, and monthly reporting. We focus on maximizing your ROI with strategic ad placement. Contact 08 7480 2495 for a consultation!",
	},
	{
		keywords: []string{"virtual assistant", "virtual", "ai", "chatbot", "looking for a virtual"},
		response: "Perfect! We offer AI Virtual Assistants for 24/7 customer service, appointment scheduling, and lead qualification. Our AI Chatbots include natural language processing and website integration. These solutions can automate your business operations and improve customer experience. Call 08 7480 2495 or WhatsApp 0402585330 to discuss your AI virtual assistant needs!",
	},
	{
		keywords: []string{"contact", "phone", "call"},
		response: "You can reach Top Web Directories at: Phone: 08 7480 2495, Email: stefan.neale@topwebdirectories.com.au, WhatsApp: 0402585330, Address: 217 Flinders St, Adelaide SA 5000. We're here to help with all your digital marketing needs!",
	},
}

const fallbackDefault = "Hello! I'm Top Web Directories' AI assistant. We're a full-service digital marketing agency serving 1500+ clients across Australia. Our services include SEO ($220+/month), Google Business Listing ($80+/month), PPC Campaigns ($250/month), Social Media ($120+/month), and Custom Websites ($600-$2100). How can I help you today? Call 08 7480 2495 or WhatsApp 0402585330 for immediate assistance!"

// GenerateResponse produces a chatbot reply for the message, given prior
// conversation history. Any model failure is absorbed by the fallback; this
// never returns an error to the caller.
func (s *ChatbotService) GenerateResponse(ctx context.Context, message string, history []domain.ChatMessage) string {
	messages := make([]CompletionMessage, 0, len(history)+2)
	messages = append(messages, CompletionMessage{Role: "system", Content: chatbotSystemPrompt})
	for _, msg := range history {
		messages = append(messages, CompletionMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, CompletionMessage{Role: "user", Content: message})

	reply, err := s.ai.Complete(ctx, CompletionRequest{
		Messages:    messages,
		MaxTokens:   800,
		Temperature: 0.8,
	})
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Warn("chat completion failed, using fallback", zap.Error(err))
		}
		return s.SmartFallback(message)
	}
	return reply
}

// SmartFallback picks a canned response by case-insensitive substring match
// against the ordered rule list.
func (s *ChatbotService) SmartFallback(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.response
			}
		}
	}
	return fallbackDefault
}

const sentimentSystemPrompt = "You are a sentiment analysis expert. Analyze the sentiment of the text and provide a rating from 1 to 5 stars and a confidence score between 0 and 1. Respond with JSON in this format: { \"rating\": number, \"confidence\": number }"

// AnalyzeSentiment asks the model for a star rating of the message.
// The result is always in range: rating 1-5, confidence 0-1, with
// (3, 0.5) on any failure or malformed output.
func (s *ChatbotService) AnalyzeSentiment(ctx context.Context, message string) domain.Sentiment {
	neutral := domain.Sentiment{Rating: 3, Confidence: 0.5}

	raw, err := s.ai.Complete(ctx, CompletionRequest{
		Messages: []CompletionMessage{
			{Role: "system", Content: sentimentSystemPrompt},
			{Role: "user", Content: message},
		},
		JSONObject: true,
	})
	if err != nil {
		s.logger.Warn("sentiment analysis failed", zap.Error(err))
		return neutral
	}

	var parsed struct {
		Rating     float64 `json:"rating"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("sentiment response not parseable", zap.Error(err))
		return neutral
	}

	return domain.Sentiment{
		Rating:     clampInt(int(math.Round(parsed.Rating)), 1, 5),
		Confidence: clampFloat(parsed.Confidence, 0, 1),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

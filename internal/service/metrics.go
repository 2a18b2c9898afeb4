package service

import (
	"context"
	"fmt"
	"math/rand"

	"topweb-backend/internal/domain"
)

// ServicePayload is what a metrics source produces for one service in one
// month; it fills the Metrics/Summary/Recommendations fields of the report
// envelope.
type ServicePayload struct {
	Metrics         any
	Summary         any
	Recommendations []string
}

// MetricsSource supplies the per-service performance numbers for a client's
// monthly report. The production deployment is expected to plug in real
// analytics integrations; RandomMetricsSource stands in until then.
type MetricsSource interface {
	Fetch(ctx context.Context, client *domain.Client, serviceType, month string) (*ServicePayload, error)
}

// RandomMetricsSource generates plausible numbers in fixed per-service
// ranges. Not seeded deterministically; every run yields fresh figures.
type RandomMetricsSource struct {
	rng *rand.Rand
}

func NewRandomMetricsSource(rng *rand.Rand) *RandomMetricsSource {
	return &RandomMetricsSource{rng: rng}
}

var _ MetricsSource = (*RandomMetricsSource)(nil)

func (s *RandomMetricsSource) Fetch(ctx context.Context, client *domain.Client, serviceType, month string) (*ServicePayload, error) {
	switch serviceType {
	case domain.ServiceSEO:
		return s.seo(), nil
	case domain.ServicePPC:
		return s.ppc(), nil
	case domain.ServiceSocial:
		return s.social(), nil
	case domain.ServiceChatbot:
		return s.chatbot(), nil
	case domain.ServiceGMB:
		return s.gmb(), nil
	default:
		return nil, fmt.Errorf("unknown service type %q", serviceType)
	}
}

func (s *RandomMetricsSource) seo() *ServicePayload {
	return &ServicePayload{
		Metrics: domain.SEOMetrics{
			OrganicTraffic: s.rng.Intn(5000) + 2000,
			KeywordRankings: domain.KeywordRankings{
				TopTen:    s.rng.Intn(15) + 5,
				TopThree:  s.rng.Intn(8) + 2,
				FirstPage: s.rng.Intn(25) + 10,
			},
			Backlinks:      s.rng.Intn(50) + 100,
			TechnicalScore: s.rng.Intn(20) + 80,
		},
		Summary: domain.SEOSummary{
			TrafficGrowth:       fmt.Sprintf("%d%%", s.rng.Intn(30)+10),
			RankingImprovements: s.rng.Intn(10) + 5,
			IssuesFixed:         s.rng.Intn(5) + 2,
		},
		Recommendations: []string{
			"Continue content optimization for target keywords",
			"Build high-quality backlinks from industry sites",
			"Improve page loading speed for better user experience",
			"Expand local SEO presence with location-based content",
		},
	}
}

func (s *RandomMetricsSource) ppc() *ServicePayload {
	return &ServicePayload{
		Metrics: domain.PPCMetrics{
			Impressions:    s.rng.Intn(50000) + 20000,
			Clicks:         s.rng.Intn(2000) + 800,
			Conversions:    s.rng.Intn(100) + 50,
			Spend:          s.rng.Intn(2000) + 1000,
			CPC:            fmt.Sprintf("%.2f", s.rng.Float64()*3+1),
			CTR:            fmt.Sprintf("%.2f", s.rng.Float64()*5+2),
			ConversionRate: fmt.Sprintf("%.2f", s.rng.Float64()*8+3),
		},
		Summary: domain.PPCSummary{
			ROI:               fmt.Sprintf("%d%%", s.rng.Intn(200)+150),
			CostPerConversion: fmt.Sprintf("%.2f", s.rng.Float64()*50+20),
			QualityScore:      fmt.Sprintf("%.1f", s.rng.Float64()*3+7),
		},
		Recommendations: []string{
			"Optimize ad copy for higher click-through rates",
			"Expand successful keyword campaigns",
			"Implement negative keywords to reduce wasted spend",
			"Test new ad extensions for better visibility",
		},
	}
}

func (s *RandomMetricsSource) social() *ServicePayload {
	return &ServicePayload{
		Metrics: domain.SocialMetrics{
			Followers: domain.SocialFollowers{
				Facebook:  s.rng.Intn(1000) + 500,
				Instagram: s.rng.Intn(800) + 300,
				LinkedIn:  s.rng.Intn(500) + 200,
			},
			Engagement: domain.SocialEngagement{
				Likes:    s.rng.Intn(500) + 200,
				Comments: s.rng.Intn(100) + 50,
				Shares:   s.rng.Intn(80) + 30,
			},
			Reach:       s.rng.Intn(10000) + 5000,
			Impressions: s.rng.Intn(20000) + 10000,
		},
		Summary: domain.SocialSummary{
			FollowerGrowth: fmt.Sprintf("%d%%", s.rng.Intn(15)+5),
			EngagementRate: fmt.Sprintf("%.1f%%", s.rng.Float64()*5+3),
			TopPostReach:   s.rng.Intn(2000) + 1000,
		},
		Recommendations: []string{
			"Increase video content for higher engagement",
			"Post consistently during peak audience hours",
			"Engage with followers through stories and polls",
			"Collaborate with local influencers for reach",
		},
	}
}

func (s *RandomMetricsSource) chatbot() *ServicePayload {
	return &ServicePayload{
		Metrics: domain.ChatbotMetrics{
			TotalConversations:   s.rng.Intn(500) + 200,
			AverageSessionLength: fmt.Sprintf("%d:%02d", s.rng.Intn(5)+3, s.rng.Intn(60)),
			LeadsGenerated:       s.rng.Intn(50) + 20,
			SatisfactionScore:    fmt.Sprintf("%.1f", s.rng.Float64()*1.5+3.5),
			TopQuestions: []string{
				"What are your SEO prices?",
				"Do you build websites?",
				"How can I improve my Google ranking?",
				"What social media services do you offer?",
				"Can you help with Google Ads?",
			},
		},
		Summary: domain.ChatbotSummary{
			ResponseRate:       fmt.Sprintf("%d%%", s.rng.Intn(10)+90),
			ResolutionRate:     fmt.Sprintf("%d%%", s.rng.Intn(20)+75),
			LeadConversionRate: fmt.Sprintf("%d%%", s.rng.Intn(15)+10),
		},
		Recommendations: []string{
			"Add more FAQ responses for common service questions",
			"Implement appointment booking through the chatbot",
			"Train responses for seasonal service promotions",
			"Enable proactive chat triggers on pricing pages",
		},
	}
}

func (s *RandomMetricsSource) gmb() *ServicePayload {
	return &ServicePayload{
		Metrics: domain.GMBMetrics{
			Views:         s.rng.Intn(3000) + 1500,
			Searches:      s.rng.Intn(1500) + 800,
			CallClicks:    s.rng.Intn(80) + 30,
			DirectionReqs: s.rng.Intn(120) + 60,
			WebsiteClicks: s.rng.Intn(300) + 150,
			ReviewsGained: s.rng.Intn(10) + 2,
			AverageRating: fmt.Sprintf("%.1f", s.rng.Float64()*0.8+4.2),
		},
		Summary: domain.GMBSummary{
			VisibilityGrowth: fmt.Sprintf("%d%%", s.rng.Intn(25)+8),
			CustomerActions:  s.rng.Intn(400) + 200,
			ReviewResponse:   fmt.Sprintf("%d%%", s.rng.Intn(15)+85),
		},
		Recommendations: []string{
			"Respond to all new reviews within 24 hours",
			"Post weekly updates with photos of recent work",
			"Add seasonal offers to the business profile",
			"Keep opening hours current across holidays",
		},
	}
}

package domain

import (
	"encoding/json"
	"time"
)

// Report aligns with scripts/schema.sql reports.
// Row content is immutable after insert; only EmailSent/EmailSentAt are
// mutated, exactly once, by the delivery pipeline.
type Report struct {
	ID          int             `json:"id"`
	ClientID    int             `json:"clientId"`
	ServiceType string          `json:"serviceType"` // seo | ppc | gmb | social | chatbot
	ReportMonth string          `json:"reportMonth"` // YYYY-MM
	Data        json.RawMessage `json:"data"`
	EmailSent   bool            `json:"emailSent"`
	EmailSentAt *time.Time      `json:"emailSentAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ReportData is the persisted payload envelope shared by every service type.
// Metrics and Summary shapes vary per service (see the *Metrics/*Summary
// structs below); the mapping is static and known at generation time.
type ReportData struct {
	ClientID        int      `json:"clientId"`
	BusinessName    string   `json:"businessName"`
	ReportMonth     string   `json:"reportMonth"`
	Metrics         any      `json:"metrics"`
	Summary         any      `json:"summary"`
	Recommendations []string `json:"recommendations"`
	GeneratedAt     string   `json:"generatedAt"` // RFC 3339
}

type KeywordRankings struct {
	TopTen    int `json:"topTen"`
	TopThree  int `json:"topThree"`
	FirstPage int `json:"firstPage"`
}

type SEOMetrics struct {
	OrganicTraffic  int             `json:"organicTraffic"`
	KeywordRankings KeywordRankings `json:"keywordRankings"`
	Backlinks       int             `json:"backlinks"`
	TechnicalScore  int             `json:"technicalScore"`
}

type SEOSummary struct {
	TrafficGrowth       string `json:"trafficGrowth"`
	RankingImprovements int    `json:"rankingImprovements"`
	IssuesFixed         int    `json:"issuesFixed"`
}

type PPCMetrics struct {
	Impressions    int    `json:"impressions"`
	Clicks         int    `json:"clicks"`
	Conversions    int    `json:"conversions"`
	Spend          int    `json:"spend"`
	CPC            string `json:"cpc"`
	CTR            string `json:"ctr"`
	ConversionRate string `json:"conversionRate"`
}

type PPCSummary struct {
	ROI               string `json:"roi"`
	CostPerConversion string `json:"costPerConversion"`
	QualityScore      string `json:"qualityScore"`
}

type SocialFollowers struct {
	Facebook  int `json:"facebook"`
	Instagram int `json:"instagram"`
	LinkedIn  int `json:"linkedin"`
}

type SocialEngagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

type SocialMetrics struct {
	Followers   SocialFollowers  `json:"followers"`
	Engagement  SocialEngagement `json:"engagement"`
	Reach       int              `json:"reach"`
	Impressions int              `json:"impressions"`
}

type SocialSummary struct {
	FollowerGrowth string `json:"followerGrowth"`
	EngagementRate string `json:"engagementRate"`
	TopPostReach   int    `json:"topPostReach"`
}

type ChatbotMetrics struct {
	TotalConversations   int      `json:"totalConversations"`
	AverageSessionLength string   `json:"averageSessionLength"` // m:ss
	LeadsGenerated       int      `json:"leadsGenerated"`
	SatisfactionScore    string   `json:"satisfactionScore"`
	TopQuestions         []string `json:"topQuestions"`
}

type ChatbotSummary struct {
	ResponseRate       string `json:"responseRate"`
	ResolutionRate     string `json:"resolutionRate"`
	LeadConversionRate string `json:"leadConversionRate"`
}

type GMBMetrics struct {
	Views         int    `json:"views"`
	Searches      int    `json:"searches"`
	CallClicks    int    `json:"callClicks"`
	DirectionReqs int    `json:"directionRequests"`
	WebsiteClicks int    `json:"websiteClicks"`
	ReviewsGained int    `json:"reviewsGained"`
	AverageRating string `json:"averageRating"`
}

type GMBSummary struct {
	VisibilityGrowth string `json:"visibilityGrowth"`
	CustomerActions  int    `json:"customerActions"`
	ReviewResponse   string `json:"reviewResponseRate"`
}

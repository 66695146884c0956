package analysis

import (
	"strings"

	"github.com/techtitanians/sentiboard/internal/models"
)

// useCaseRule scores one category by counting keyword hits in the text and
// applying the category weight. Rules are evaluated in order; on tied
// weighted scores the earlier rule wins.
type useCaseRule struct {
	name     string
	weight   float64
	keywords []string
}

var useCaseRules = []useCaseRule{
	{
		name:   "Product Review Classification",
		weight: 1.2,
		keywords: []string{
			"product", "quality", "price", "feature", "bought", "purchased",
			"taste", "tastes", "flavor", "food", "meal", "dish", "restaurant",
			"delivery", "order", "item", "goods", "material", "build", "design",
			"works", "performance", "value", "money", "worth", "recommend",
			"disappointed", "satisfied", "amazing", "terrible", "excellent",
			"poor", "cheap", "expensive", "fish", "chicken", "beef", "pizza",
			"burger", "coffee", "tea", "bread", "cake", "sweet", "sour",
			"bitter", "salty", "spicy", "fresh", "stale", "delicious",
			"disgusting", "yummy", "nasty", "cooked", "raw", "hot", "cold",
			"warm", "crispy", "soft", "hard", "juicy", "dry",
		},
	},
	{
		name:   "Social Media Analysis",
		weight: 1.0,
		keywords: []string{
			"post", "posted", "tweet", "comment", "like", "share", "follow",
			"hashtag", "instagram", "facebook", "twitter", "snapchat", "tiktok",
			"social", "viral", "trending", "story", "stories",
		},
	},
	{
		name:   "Customer Feedback Analysis",
		weight: 1.1,
		keywords: []string{
			"review", "feedback", "rating", "experience", "service", "staff",
			"team", "visit", "visited", "customer", "client", "overall",
			"satisfaction", "recommend", "suggestion",
		},
	},
	{
		name:   "Brand Monitoring",
		weight: 1.0,
		keywords: []string{
			"brand", "company", "reputation", "market", "competitor",
			"business", "organization", "corporate", "enterprise", "firm",
		},
	},
	{
		name:   "Market Research",
		weight: 1.0,
		keywords: []string{
			"market", "trend", "industry", "consumer", "demand", "analysis",
			"research", "study", "survey", "data", "statistics",
		},
	},
	{
		name:   "Customer Service Optimization",
		weight: 1.1,
		keywords: []string{
			"support", "help", "issue", "problem", "resolution", "solve",
			"fix", "assistance", "ticket", "contact", "complaint", "refund",
			"return",
		},
	},
	{
		name:   "Competitive Intelligence",
		weight: 1.0,
		keywords: []string{
			"competitor", "versus", "vs", "compared", "alternative", "better",
			"worse", "competition", "rival", "against",
		},
	},
}

// DetermineUseCase tags text with the category whose weighted keyword hit
// count is highest. Texts matching no category fall back to the default
// use case. Matching is substring based on the lowercased text, so
// "tasteless" still counts a hit for "taste".
func DetermineUseCase(text string) string {
	lowered := strings.ToLower(text)

	bestName := models.UseCaseDefault
	bestScore := 0.0
	for _, rule := range useCaseRules {
		hits := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				hits++
			}
		}
		score := float64(hits) * rule.weight
		if score > bestScore {
			bestScore = score
			bestName = rule.name
		}
	}
	return bestName
}

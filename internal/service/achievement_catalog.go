package service

import (
	"fmt"

	"anoa.com/campquest/internal/model"
)

// RequirementType selects which UserStats counter a requirement compares
// against. Every type used in the catalog must have an accessor registered
// below; an unregistered type is a construction-time error, not a silent
// runtime skip.
type RequirementType string

const (
	ReqBlogPosts           RequirementType = "blog_posts"
	ReqComments            RequirementType = "comments"
	ReqListings            RequirementType = "listings"
	ReqOffers              RequirementType = "offers"
	ReqReviews             RequirementType = "reviews"
	ReqConversations       RequirementType = "conversations_started"
	ReqLogins              RequirementType = "logins"
	ReqLoginStreak         RequirementType = "login_streak"
	ReqProfileCompleteness RequirementType = "profile_completeness"
)

type Requirement struct {
	Type    RequirementType
	Count   int    // threshold, 0 means 1
	Compare string // eq/gte/lte/gt, empty means gte
}

// AchievementDefinition is one entry of the compiled-in catalog.
type AchievementDefinition struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Category    string
	Tier        string
	XP          int
	Requirement Requirement
}

var statAccessors = map[RequirementType]func(*model.UserStats) int{
	ReqBlogPosts:           func(s *model.UserStats) int { return s.BlogPosts },
	ReqComments:            func(s *model.UserStats) int { return s.Comments },
	ReqListings:            func(s *model.UserStats) int { return s.Listings },
	ReqOffers:              func(s *model.UserStats) int { return s.Offers },
	ReqReviews:             func(s *model.UserStats) int { return s.Reviews },
	ReqConversations:       func(s *model.UserStats) int { return s.ConversationsStarted },
	ReqLogins:              func(s *model.UserStats) int { return s.Logins },
	ReqLoginStreak:         func(s *model.UserStats) int { return s.LoginStreak },
	ReqProfileCompleteness: func(s *model.UserStats) int { return s.ProfileCompleteness },
}

// achievementCatalog is the immutable, version-controlled achievement list.
// Codes are stable identifiers and are never reused. Declaration order is the
// seeding and evaluation order.
var achievementCatalog = []AchievementDefinition{
	// Contribution
	{
		Code: "FIRST_BLOG_POST", Name: "First Words", Icon: "✍️",
		Description: "Publish your first blog post.",
		Category:    model.CategoryContribution, Tier: model.TierBronze, XP: 50,
		Requirement: Requirement{Type: ReqBlogPosts, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "BLOG_REGULAR", Name: "Regular Columnist", Icon: "📰",
		Description: "Publish 10 blog posts.",
		Category:    model.CategoryContribution, Tier: model.TierSilver, XP: 150,
		Requirement: Requirement{Type: ReqBlogPosts, Count: 10, Compare: model.CompareGte},
	},
	{
		Code: "BLOG_VETERAN", Name: "Prolific Author", Icon: "🖋️",
		Description: "Publish 50 blog posts.",
		Category:    model.CategoryContribution, Tier: model.TierGold, XP: 500,
		Requirement: Requirement{Type: ReqBlogPosts, Count: 50, Compare: model.CompareGte},
	},
	{
		Code: "FIRST_COMMENT", Name: "Joining In", Icon: "💬",
		Description: "Leave your first comment.",
		Category:    model.CategoryContribution, Tier: model.TierBronze, XP: 25,
		Requirement: Requirement{Type: ReqComments, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "ACTIVE_COMMENTER", Name: "Conversationalist", Icon: "🗣️",
		Description: "Leave 25 comments.",
		Category:    model.CategoryContribution, Tier: model.TierSilver, XP: 100,
		Requirement: Requirement{Type: ReqComments, Count: 25, Compare: model.CompareGte},
	},

	// Marketplace
	{
		Code: "FIRST_LISTING", Name: "Open for Business", Icon: "🏪",
		Description: "Create your first marketplace listing.",
		Category:    model.CategoryMarketplace, Tier: model.TierBronze, XP: 50,
		Requirement: Requirement{Type: ReqListings, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "MERCHANT", Name: "Merchant", Icon: "⚖️",
		Description: "Create 10 marketplace listings.",
		Category:    model.CategoryMarketplace, Tier: model.TierSilver, XP: 200,
		Requirement: Requirement{Type: ReqListings, Count: 10, Compare: model.CompareGte},
	},
	{
		Code: "FIRST_OFFER", Name: "Negotiator", Icon: "🤝",
		Description: "Make your first offer.",
		Category:    model.CategoryMarketplace, Tier: model.TierBronze, XP: 25,
		Requirement: Requirement{Type: ReqOffers, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "DEAL_MAKER", Name: "Deal Maker", Icon: "💼",
		Description: "Make 20 offers.",
		Category:    model.CategoryMarketplace, Tier: model.TierGold, XP: 300,
		Requirement: Requirement{Type: ReqOffers, Count: 20, Compare: model.CompareGte},
	},
	{
		Code: "FIRST_REVIEW", Name: "Honest Feedback", Icon: "⭐",
		Description: "Leave your first review.",
		Category:    model.CategoryMarketplace, Tier: model.TierBronze, XP: 25,
		Requirement: Requirement{Type: ReqReviews, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "TRUSTED_REVIEWER", Name: "Trusted Reviewer", Icon: "🏅",
		Description: "Leave 10 reviews.",
		Category:    model.CategoryMarketplace, Tier: model.TierSilver, XP: 150,
		Requirement: Requirement{Type: ReqReviews, Count: 10, Compare: model.CompareGte},
	},

	// Social
	{
		Code: "FIRST_CONVERSATION", Name: "Breaking the Ice", Icon: "👋",
		Description: "Start your first conversation.",
		Category:    model.CategorySocial, Tier: model.TierBronze, XP: 25,
		Requirement: Requirement{Type: ReqConversations, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "CONNECTOR", Name: "Connector", Icon: "🕸️",
		Description: "Start conversations with 10 different members.",
		Category:    model.CategorySocial, Tier: model.TierGold, XP: 250,
		Requirement: Requirement{Type: ReqConversations, Count: 10, Compare: model.CompareGte},
	},

	// Engagement
	{
		Code: "FIRST_LOGIN", Name: "Welcome Aboard", Icon: "🚪",
		Description: "Sign in for the first time.",
		Category:    model.CategoryEngagement, Tier: model.TierBronze, XP: 10,
		Requirement: Requirement{Type: ReqLogins, Count: 1, Compare: model.CompareGte},
	},
	{
		Code: "LOGIN_STREAK_7", Name: "One Week Strong", Icon: "🔥",
		Description: "Sign in 7 days in a row.",
		Category:    model.CategoryEngagement, Tier: model.TierSilver, XP: 100,
		Requirement: Requirement{Type: ReqLoginStreak, Count: 7, Compare: model.CompareGte},
	},
	{
		Code: "LOGIN_STREAK_30", Name: "Campfire Keeper", Icon: "🏕️",
		Description: "Sign in 30 days in a row.",
		Category:    model.CategoryEngagement, Tier: model.TierGold, XP: 400,
		Requirement: Requirement{Type: ReqLoginStreak, Count: 30, Compare: model.CompareGte},
	},
	{
		Code: "DEDICATED_MEMBER", Name: "Dedicated Member", Icon: "💎",
		Description: "Sign in 100 times.",
		Category:    model.CategoryEngagement, Tier: model.TierLegendary, XP: 1000,
		Requirement: Requirement{Type: ReqLogins, Count: 100, Compare: model.CompareGte},
	},

	// Special
	{
		Code: "PROFILE_COMPLETE", Name: "All Set Up", Icon: "✅",
		Description: "Fill in your full profile.",
		Category:    model.CategorySpecial, Tier: model.TierSilver, XP: 75,
		Requirement: Requirement{Type: ReqProfileCompleteness, Count: 100, Compare: model.CompareEq},
	},
}

func init() {
	if err := validateCatalog(); err != nil {
		panic(err)
	}
}

// validateCatalog enforces the catalog invariants at process start: unique
// codes and a registered accessor for every requirement type.
func validateCatalog() error {
	seen := make(map[string]bool, len(achievementCatalog))
	for _, def := range achievementCatalog {
		if def.Code == "" {
			return fmt.Errorf("achievement catalog: empty code (name %q)", def.Name)
		}
		if seen[def.Code] {
			return fmt.Errorf("achievement catalog: duplicate code %q", def.Code)
		}
		seen[def.Code] = true

		if _, ok := statAccessors[def.Requirement.Type]; !ok {
			return fmt.Errorf("achievement catalog: %s has unknown requirement type %q", def.Code, def.Requirement.Type)
		}
		if def.XP < 0 {
			return fmt.Errorf("achievement catalog: %s has negative xp", def.Code)
		}
	}
	return nil
}

// Catalog returns the full definition list in declaration order.
func Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

// CatalogByCode does an exact-match lookup; absence is not an error.
func CatalogByCode(code string) (AchievementDefinition, bool) {
	for _, def := range achievementCatalog {
		if def.Code == code {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}

// CatalogByCategory filters the catalog, preserving declaration order.
func CatalogByCategory(category string) []AchievementDefinition {
	var out []AchievementDefinition
	for _, def := range achievementCatalog {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// CatalogByTier filters the catalog, preserving declaration order.
func CatalogByTier(tier string) []AchievementDefinition {
	var out []AchievementDefinition
	for _, def := range achievementCatalog {
		if def.Tier == tier {
			out = append(out, def)
		}
	}
	return out
}

// statValue resolves a stored requirement type against a stats snapshot.
// Returns false for types with no registered accessor (catalog/evaluator
// drift); callers skip those.
func statValue(stats *model.UserStats, reqType string) (int, bool) {
	accessor, ok := statAccessors[RequirementType(reqType)]
	if !ok {
		return 0, false
	}
	return accessor(stats), true
}

// requirementSatisfied applies the comparison operator; an absent operator
// means gte, an absent threshold means 1.
func requirementSatisfied(compare string, value, threshold int) bool {
	if threshold <= 0 {
		threshold = 1
	}
	switch compare {
	case model.CompareEq:
		return value == threshold
	case model.CompareGt:
		return value > threshold
	case model.CompareLte:
		return value <= threshold
	default:
		return value >= threshold
	}
}

package tokenomics

import "trading-assistant/internal/domain"

// Community covers social reach and development activity.
type Community struct {
	TwitterFollowers   float64 `json:"twitter_followers"`
	RedditSubscribers  float64 `json:"reddit_subscribers"`
	TelegramUsers      float64 `json:"telegram_users"`
	SocialScore        string  `json:"social_score"`
	GitHubStars        float64 `json:"github_stars"`
	GitHubForks        float64 `json:"github_forks"`
	GitHubCommits4w    float64 `json:"github_commits_4w"`
	GitHubContributors float64 `json:"github_contributors"`
	DevelopmentScore   string  `json:"development_score"`
}

func DeriveCommunity(snap *domain.CoinSnapshot) Community {
	cd, dd := snap.CommunityData, snap.DeveloperData
	c := Community{
		TwitterFollowers:   cd.TwitterFollowers.Or(0),
		RedditSubscribers:  cd.RedditSubscribers.Or(0),
		TelegramUsers:      cd.TelegramChannelUserCount.Or(0),
		GitHubStars:        dd.Stars.Or(0),
		GitHubForks:        dd.Forks.Or(0),
		GitHubCommits4w:    dd.CommitCount4Weeks.Or(0),
		GitHubContributors: dd.Subscribers.Or(0),
	}
	c.SocialScore = SocialScore(c.TwitterFollowers, c.RedditSubscribers, c.TelegramUsers)
	c.DevelopmentScore = DevelopmentScore(c.GitHubCommits4w, c.GitHubContributors, c.GitHubStars)
	return c
}

type tier struct {
	min    float64
	points int
}

// tierPoints returns the points of the first tier whose minimum v reaches.
func tierPoints(v float64, tiers []tier) int {
	for _, t := range tiers {
		if v >= t.min {
			return t.points
		}
	}
	return 0
}

var (
	twitterTiers  = []tier{{1_000_000, 30}, {100_000, 20}, {10_000, 10}}
	redditTiers   = []tier{{500_000, 25}, {50_000, 15}, {5_000, 8}}
	telegramTiers = []tier{{100_000, 20}, {10_000, 10}, {1_000, 5}}

	commitTiers      = []tier{{100, 40}, {50, 25}, {10, 15}, {1, 5}}
	contributorTiers = []tier{{100, 30}, {20, 20}, {5, 10}}
	starTiers        = []tier{{10_000, 30}, {1_000, 20}, {100, 10}}
)

func SocialScore(twitter, reddit, telegram float64) string {
	score := tierPoints(twitter, twitterTiers) + tierPoints(reddit, redditTiers) + tierPoints(telegram, telegramTiers)
	switch {
	case score >= 50:
		return "Excellent (Very High Engagement)"
	case score >= 30:
		return "Good (High Engagement)"
	case score >= 15:
		return "Fair (Moderate Engagement)"
	default:
		return "Poor (Low Engagement)"
	}
}

func DevelopmentScore(commits, contributors, stars float64) string {
	score := tierPoints(commits, commitTiers) + tierPoints(contributors, contributorTiers) + tierPoints(stars, starTiers)
	switch {
	case score >= 70:
		return "Very Active (High Development)"
	case score >= 40:
		return "Active (Regular Development)"
	case score >= 20:
		return "Moderate (Some Development)"
	default:
		return "Low (Minimal Development)"
	}
}

func (Community) GroupName() string { return "community_development" }

func (c Community) Entries() []domain.Metric {
	return []domain.Metric{
		{Key: KeyTwitterFollowers, Value: countOrNA(c.TwitterFollowers)},
		{Key: KeyRedditSubscribers, Value: countOrNA(c.RedditSubscribers)},
		{Key: KeyTelegramUsers, Value: countOrNA(c.TelegramUsers)},
		{Key: KeySocialScore, Value: c.SocialScore},
		{Key: KeyGitHubStars, Value: countOrNA(c.GitHubStars)},
		{Key: KeyGitHubForks, Value: countOrNA(c.GitHubForks)},
		{Key: KeyGitHubCommits, Value: countOrNA(c.GitHubCommits4w)},
		{Key: KeyGitHubContributors, Value: countOrNA(c.GitHubContributors)},
		{Key: KeyDevelopment, Value: c.DevelopmentScore},
	}
}

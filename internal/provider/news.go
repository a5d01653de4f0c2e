package provider

import (
	"context"
	"fmt"

	"trading-assistant/internal/domain"

	"github.com/rs/zerolog/log"
)

// HeadlineSource is anything that can list market headlines.
type HeadlineSource interface {
	Configured() bool
	FetchHeadlines(ctx context.Context) ([]domain.Headline, error)
}

// NewsFeed asks its sources in order and returns the first non-empty
// headline list.
type NewsFeed struct {
	sources []HeadlineSource
}

// NewNewsFeed keeps only the configured sources. It returns nil when none
// is configured so callers can treat news as an absent capability.
func NewNewsFeed(sources ...HeadlineSource) *NewsFeed {
	var active []HeadlineSource
	for _, s := range sources {
		if s != nil && s.Configured() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return &NewsFeed{sources: active}
}

func (f *NewsFeed) FetchHeadlines(ctx context.Context) ([]domain.Headline, error) {
	lastErr := fmt.Errorf("news: %w", domain.ErrUnavailable)
	for _, s := range f.sources {
		items, err := s.FetchHeadlines(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Msg("headline source failed, trying next")
			lastErr = err
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return nil, lastErr
}

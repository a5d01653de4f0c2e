package resolver

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"trading-assistant/internal/cache"
	"trading-assistant/internal/domain"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultCoinID = "bitcoin"

	// Fuzzy matches must score strictly above this weighted ratio (0-100).
	fuzzyThreshold = 60

	directoryCacheKey = "coingecko:coins:list"
	directoryTTL      = 24 * time.Hour
)

var candidateToken = regexp.MustCompile(`\b([a-z]{2,10})\b`)

// DirectorySource lists every coin id the market-data provider knows.
type DirectorySource interface {
	FetchCoinDirectory(ctx context.Context) ([]domain.CoinListing, error)
}

// Resolver maps free text to a provider coin id: alias table first, then a
// fuzzy match against the coin directory, then bitcoin.
type Resolver struct {
	tracer    trace.Tracer
	directory DirectorySource
	store     cache.Store
	now       func() time.Time

	mu       sync.Mutex
	ids      []string
	loadedAt time.Time
}

// New builds a Resolver. store may be nil, in which case the directory is
// only memoised in process.
func New(tracer trace.Tracer, directory DirectorySource, store cache.Store) *Resolver {
	return &Resolver{
		tracer:    tracer,
		directory: directory,
		store:     store,
		now:       time.Now,
	}
}

// Resolve never fails to produce a coin id. A Resolution with Source
// domain.ResolvedByDefault means nothing matched and bitcoin was assumed.
// The error is only the context error when the caller gave up.
func (r *Resolver) Resolve(ctx context.Context, text string) (domain.Resolution, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.resolve")
	defer span.End()

	lower := strings.ToLower(text)
	if res, ok := LookupAlias(lower); ok {
		span.SetAttributes(attribute.String("resolution.source", string(res.Source)), attribute.String("coin.id", res.CoinID))
		return res, nil
	}

	fallback := domain.Resolution{CoinID: DefaultCoinID, Source: domain.ResolvedByDefault}
	tokens := candidateToken.FindAllStringSubmatch(lower, -1)
	if len(tokens) == 0 {
		return fallback, nil
	}
	query := tokens[0][1]

	ids, err := r.directoryIDs(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Resolution{}, ctxErr
		}
		log.Warn().Err(err).Str("query", query).Msg("coin directory unavailable, using default coin")
		return fallback, nil
	}

	if id, score, ok := BestMatch(query, ids); ok {
		span.SetAttributes(attribute.String("resolution.source", "fuzzy"), attribute.Int("resolution.score", score))
		return domain.Resolution{CoinID: id, Source: domain.ResolvedByFuzzy, Match: query, Score: score}, nil
	}

	log.Debug().Str("query", query).Msg("no coin matched, using default coin")
	return fallback, nil
}

// LookupAlias returns the first alias in table order that occurs anywhere
// in the lowercased text. A text that is exactly one of the exactSymbols
// resolves to it first.
func LookupAlias(lower string) (domain.Resolution, bool) {
	if sym := strings.TrimSpace(lower); sym != "" {
		if id, ok := exactSymbols[sym]; ok {
			return domain.Resolution{CoinID: id, Source: domain.ResolvedByAlias, Match: sym, Score: 100}, true
		}
	}
	for _, a := range aliases {
		if strings.Contains(lower, a.key) {
			return domain.Resolution{CoinID: a.coinID, Source: domain.ResolvedByAlias, Match: a.key, Score: 100}, true
		}
	}
	return domain.Resolution{}, false
}

// BestMatch scores query against every id and returns the top scorer above
// the threshold. Ties keep the id listed first.
func BestMatch(query string, ids []string) (string, int, bool) {
	best, bestScore := "", fuzzyThreshold
	for _, id := range ids {
		if s := Similarity(query, id); s > bestScore {
			best, bestScore = id, s
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestScore, true
}

// Warm loads the coin directory ahead of the first fuzzy lookup and returns
// its size. It is a no-op while the memoised copy is fresh.
func (r *Resolver) Warm(ctx context.Context) (int, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.warm")
	defer span.End()

	ids, err := r.directoryIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *Resolver) directoryIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ids != nil && r.now().Sub(r.loadedAt) < directoryTTL {
		return r.ids, nil
	}

	if r.store != nil {
		var ids []string
		hit, err := cache.GetJSON(ctx, r.store, directoryCacheKey, &ids)
		if err != nil {
			log.Warn().Err(err).Msg("coin directory cache read failed")
		}
		if hit && len(ids) > 0 {
			r.ids, r.loadedAt = ids, r.now()
			return ids, nil
		}
	}

	listings, err := r.directory.FetchCoinDirectory(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if l.ID != "" {
			ids = append(ids, l.ID)
		}
	}

	if r.store != nil {
		if err := cache.SetJSON(ctx, r.store, directoryCacheKey, ids, directoryTTL); err != nil {
			log.Warn().Err(err).Msg("coin directory cache write failed")
		}
	}
	r.ids, r.loadedAt = ids, r.now()
	return ids, nil
}

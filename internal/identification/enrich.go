package identification

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"reelid/internal/identification/tmdb"
	"reelid/internal/logging"
)

const (
	maxSubscriptionProviders = 4
	maxRentProviders         = 2
	maxProviders             = 6
	maxSimilarTitles         = 6
)

// Enricher fetches the supplemental detail attached to the best match only:
// regional streaming availability and similar titles. Enrichment is strictly
// best-effort; every failure degrades to an empty bundle.
type Enricher struct {
	catalog      tmdb.Searcher
	imageBaseURL string
	watchRegion  string
	logger       *slog.Logger
}

// NewEnricher builds an enricher preferring the given watch region.
func NewEnricher(catalog tmdb.Searcher, imageBaseURL, watchRegion string, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Enricher{
		catalog:      catalog,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		watchRegion:  strings.ToUpper(strings.TrimSpace(watchRegion)),
		logger:       logging.WithComponent(logger, "enricher"),
	}
}

// Enrich gathers providers and similar titles for the movie. The two reads
// are independent and run concurrently; either may fail on its own.
func (e *Enricher) Enrich(ctx context.Context, movieID int64) EnrichmentBundle {
	var bundle EnrichmentBundle
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		providers, err := e.catalog.GetWatchProviders(ctx, movieID)
		if err != nil {
			e.logger.Debug("provider lookup failed", logging.Int64("catalog_id", movieID), logging.Error(err))
			return
		}
		bundle.Providers = e.selectProviders(providers)
	}()
	go func() {
		defer wg.Done()
		similar, err := e.catalog.GetSimilar(ctx, movieID)
		if err != nil {
			e.logger.Debug("similar lookup failed", logging.Int64("catalog_id", movieID), logging.Error(err))
			return
		}
		bundle.Similar = e.selectSimilar(similar)
	}()
	wg.Wait()
	return bundle
}

// selectProviders flattens the regional offers into the capped, deduplicated
// provider list: up to four subscription offers, then up to two rentals, six
// total.
func (e *Enricher) selectProviders(resp *tmdb.ProvidersResponse) []StreamingProvider {
	offers, ok := e.pickRegion(resp)
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	var providers []StreamingProvider
	appendOffers := func(entries []tmdb.Provider, offerType string, limit int) {
		taken := 0
		for _, entry := range entries {
			if taken >= limit || len(providers) >= maxProviders {
				return
			}
			name := strings.TrimSpace(entry.ProviderName)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			providers = append(providers, StreamingProvider{
				Name: name,
				Logo: e.imageURL(entry.LogoPath),
				Link: offers.Link,
				Type: offerType,
			})
			taken++
		}
	}
	appendOffers(offers.Flatrate, "subscription", maxSubscriptionProviders)
	appendOffers(offers.Rent, "rent", maxRentProviders)
	return providers
}

// pickRegion prefers the configured watch region and otherwise falls back to
// the alphabetically first region with any offers, so degraded results stay
// deterministic.
func (e *Enricher) pickRegion(resp *tmdb.ProvidersResponse) (tmdb.RegionOffers, bool) {
	if resp == nil || len(resp.Results) == 0 {
		return tmdb.RegionOffers{}, false
	}
	if offers, ok := resp.Results[e.watchRegion]; ok {
		return offers, true
	}
	regions := make([]string, 0, len(resp.Results))
	for region := range resp.Results {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return resp.Results[regions[0]], true
}

func (e *Enricher) selectSimilar(resp *tmdb.Response) []SimilarTitle {
	if resp == nil {
		return nil
	}
	var similar []SimilarTitle
	for _, result := range resp.Results {
		if len(similar) >= maxSimilarTitles {
			break
		}
		if strings.TrimSpace(result.Title) == "" {
			continue
		}
		similar = append(similar, SimilarTitle{
			CatalogID: result.ID,
			Title:     result.Title,
			Year:      releaseYear(result.ReleaseDate),
			Poster:    e.imageURL(result.PosterPath),
		})
	}
	return similar
}

func (e *Enricher) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return e.imageBaseURL + path
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/poe-uniques-server/internal/adapter"
	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/rs/zerolog/log"
)

// DefaultCategories are the itemoverview categories imported when none are
// given.
var DefaultCategories = []string{
	"UniqueArmour",
	"UniqueWeapon",
	"UniqueAccessory",
	"UniqueFlask",
	"UniqueJewel",
}

// NinjaService fetches poe.ninja itemoverview documents and hands the parsed
// batches to the reconciliation engine, one transaction per category.
type NinjaService struct {
	ingest     *IngestService
	cfg        *config.Config
	httpClient *http.Client
}

func NewNinjaService(ingest *IngestService, cfg *config.Config) *NinjaService {
	return &NinjaService{
		ingest: ingest,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
	}
}

type MarketImportInput struct {
	League     string
	Categories []string      // nil = DefaultCategories
	Delay      time.Duration // politeness throttle between category fetches
	DryRun     bool          // fetch and parse only, no writes
}

type MarketImportResult struct {
	League           string         `json:"league"`
	Counters         ImportCounters `json:"counters"`
	RowsFetched      int            `json:"rowsFetched"`
	FailedCategories []string       `json:"failedCategories,omitempty"`
}

// ImportMarket runs one market import across the given categories. A fetch
// or persistence failure is fatal for that category's batch only; remaining
// categories are still attempted.
func (s *NinjaService) ImportMarket(ctx context.Context, in MarketImportInput) (*MarketImportResult, error) {
	league := strings.TrimSpace(in.League)
	if league == "" {
		return nil, domain.ErrBlankLeague
	}

	categories := in.Categories
	if categories == nil {
		categories = DefaultCategories
	}
	if len(categories) == 0 {
		return nil, domain.ErrNoFeedTypes
	}

	now := time.Now().UTC()
	result := &MarketImportResult{League: league}

	for i, category := range categories {
		if i > 0 && in.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(in.Delay):
			}
		}

		records, malformed, err := s.fetchCategory(ctx, league, category)
		if err != nil {
			log.Error().Err(err).Str("league", league).Str("category", category).
				Msg("category fetch failed, skipping batch")
			result.FailedCategories = append(result.FailedCategories, category)
			continue
		}
		result.RowsFetched += len(records)

		log.Info().Str("league", league).Str("category", category).
			Int("rows", len(records)).Int("malformed", malformed).Bool("dryRun", in.DryRun).
			Msg("fetched itemoverview")

		if in.DryRun {
			result.Counters.Malformed += malformed
			continue
		}

		counters, err := s.ingest.ImportMarketBatch(ctx, league, records, now)
		if err != nil {
			log.Error().Err(err).Str("league", league).Str("category", category).
				Msg("batch import failed, rolled back")
			result.FailedCategories = append(result.FailedCategories, category)
			continue
		}
		// Malformed rows count toward the summary only once their
		// category's batch actually committed.
		result.Counters.Add(counters)
		result.Counters.Malformed += malformed
	}

	return result, nil
}

func (s *NinjaService) fetchCategory(ctx context.Context, league, category string) ([]domain.RawRecord, int, error) {
	params := url.Values{}
	params.Set("league", league)
	params.Set("type", category)
	endpoint := s.cfg.NinjaBaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "poe-uniques-importer/1.0 (+go)")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetching %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", endpoint, err)
	}

	return adapter.ParseNinjaPayload(body, category)
}

package services

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// maxSuggestions is the number of distinct values offered per field.
const maxSuggestions = 6

// SearchService answers keyword queries over a module's records.
type SearchService struct {
	ws       *Workspace
	settings driving.SettingsService
}

// NewSearchService creates a search service. settings may be nil, in
// which case the default limit applies.
func NewSearchService(ws *Workspace, settings driving.SettingsService) *SearchService {
	return &SearchService{ws: ws, settings: settings}
}

// Search scores each record by the number of query tokens it contains and
// returns matches best first, stable on stored order.
func (s *SearchService) Search(_ context.Context, moduleID, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit()
	}
	tokens := strings.Fields(cases.Fold().String(query))

	var records []domain.Record
	err := s.ws.view(moduleID, func(st *moduleState) {
		records = cloneRecords(st.records)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("search %s: %d tokens over %d records", moduleID, len(tokens), len(records))

	results := []domain.SearchResult{}
	if len(tokens) == 0 {
		return results, nil
	}
	for _, rec := range records {
		if score := scoreRecord(rec, tokens); score > 0 {
			results = append(results, domain.SearchResult{Record: rec, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreRecord(rec domain.Record, tokens []string) int {
	var b strings.Builder
	b.WriteString(rec.ID)
	for _, v := range rec.Values {
		b.WriteByte(' ')
		b.WriteString(v)
	}
	haystack := cases.Fold().String(b.String())

	score := 0
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			score++
		}
	}
	return score
}

func (s *SearchService) defaultLimit() int {
	if s.settings == nil {
		return domain.DefaultSearchLimit
	}
	settings, err := s.settings.Get()
	if err != nil || settings.Search.Limit <= 0 {
		return domain.DefaultSearchLimit
	}
	return settings.Search.Limit
}

// Suggestions returns, for every schema field, up to six distinct
// non-empty values in stored order.
func (s *SearchService) Suggestions(_ context.Context, moduleID string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := s.ws.view(moduleID, func(st *moduleState) {
		for _, f := range st.fields {
			seen := make(map[string]struct{})
			var values []string
			for _, rec := range st.records {
				v := strings.TrimSpace(rec.Get(f.ID))
				if v == "" {
					continue
				}
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				values = append(values, v)
				if len(values) == maxSuggestions {
					break
				}
			}
			if len(values) > 0 {
				out[f.ID] = values
			}
		}
	})
	return out, err
}

package services

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// Ensure DuplicateService implements the interface.
var _ driving.DuplicateService = (*DuplicateService)(nil)

// DuplicateService groups records sharing a normalised value on a
// matching-key field.
type DuplicateService struct {
	ws *Workspace
}

// NewDuplicateService creates a duplicate service over ws.
func NewDuplicateService(ws *Workspace) *DuplicateService {
	return &DuplicateService{ws: ws}
}

// Refresh recomputes the module's groups and stores them as the last result.
// Records are never modified and no snapshot is written.
func (s *DuplicateService) Refresh(_ context.Context, moduleID string) ([]domain.DuplicateGroup, error) {
	var out []domain.DuplicateGroup
	err := s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		groups := DetectDuplicates(st.fields, st.records)
		st.duplicates = groups
		st.detected = true
		out = cloneGroups(groups)
		return false, nil
	})
	return out, err
}

// Groups returns the last computed result, nil before the first Refresh.
func (s *DuplicateService) Groups(_ context.Context, moduleID string) ([]domain.DuplicateGroup, error) {
	var out []domain.DuplicateGroup
	err := s.ws.view(moduleID, func(st *moduleState) {
		if st.detected {
			out = cloneGroups(st.duplicates)
		}
	})
	return out, err
}

// NormalizeKey case-folds s, trims it and collapses internal whitespace.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// DetectDuplicates groups records by normalised value for every text,
// email or phone field. Groups follow schema order, then first appearance
// of their key; members keep stored order. Empty keys and singletons are
// dropped. A record can appear once per field.
func DetectDuplicates(fields []domain.FieldDefinition, records []domain.Record) []domain.DuplicateGroup {
	groups := []domain.DuplicateGroup{}
	for _, f := range fields {
		if !f.Type.IsMatchKey() {
			continue
		}

		var order []string
		members := make(map[string][]string)
		for _, rec := range records {
			key := NormalizeKey(rec.Get(f.ID))
			if key == "" {
				continue
			}
			if _, ok := members[key]; !ok {
				order = append(order, key)
			}
			members[key] = append(members[key], rec.ID)
		}

		for _, key := range order {
			ids := members[key]
			if len(ids) < 2 {
				continue
			}
			groups = append(groups, domain.DuplicateGroup{
				FieldID:    f.ID,
				FieldLabel: f.Label,
				Key:        key,
				RecordIDs:  ids,
			})
		}
	}
	return groups
}

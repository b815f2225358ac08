package driving

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// DuplicateService finds records that likely refer to the same entity.
// It never mutates records.
type DuplicateService interface {
	// Refresh recomputes the module's duplicate groups, replacing any prior result.
	Refresh(ctx context.Context, moduleID string) ([]domain.DuplicateGroup, error)

	// Groups returns the last computed result, or nil if never refreshed.
	Groups(ctx context.Context, moduleID string) ([]domain.DuplicateGroup, error)
}

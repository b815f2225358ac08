package driving

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// ModuleService exposes the fixed module catalog.
type ModuleService interface {
	// List returns a summary of every module in catalog order.
	List(ctx context.Context) ([]domain.ModuleSummary, error)

	// Get returns one module's summary. Returns domain.ErrUnknownModule if absent.
	Get(ctx context.Context, moduleID string) (*domain.ModuleSummary, error)
}

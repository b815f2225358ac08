package driving

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// RecordService owns the record collection of every module.
type RecordService interface {
	// List returns a copy of the module's records in insertion order.
	List(ctx context.Context, moduleID string) ([]domain.Record, error)

	// Get returns one record. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, moduleID, recordID string) (*domain.Record, error)

	// Add appends a record and returns the stored copy. An empty id is
	// replaced with a generated one. Returns *domain.ValidationError if the
	// id is already present in the module.
	Add(ctx context.Context, moduleID string, record domain.Record) (*domain.Record, error)

	// Update merges partial into the record. Unknown ids are a no-op.
	Update(ctx context.Context, moduleID, recordID string, partial map[string]string) error

	// Delete removes a record. Idempotent.
	Delete(ctx context.Context, moduleID, recordID string) error
}

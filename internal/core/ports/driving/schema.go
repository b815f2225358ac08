package driving

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// SchemaService owns the ordered field list of every module.
type SchemaService interface {
	// Fields returns a copy of the module's fields in schema order.
	Fields(ctx context.Context, moduleID string) ([]domain.FieldDefinition, error)

	// AddField appends a field. Returns *domain.ValidationError if the id is
	// taken or the definition is invalid.
	AddField(ctx context.Context, moduleID string, field domain.FieldDefinition) error

	// UpdateField merges the update into an existing field.
	// Unknown field ids are a no-op.
	UpdateField(ctx context.Context, moduleID, fieldID string, update domain.FieldUpdate) error

	// DeleteField removes a field. Idempotent. Record values are kept.
	DeleteField(ctx context.Context, moduleID, fieldID string) error

	// ReorderField moves the field at from to position to.
	// Out-of-range indices are a silent no-op.
	ReorderField(ctx context.Context, moduleID string, from, to int) error

	// Check reports advisory problems of values against the schema.
	Check(ctx context.Context, moduleID string, values map[string]string) ([]domain.FieldIssue, error)
}

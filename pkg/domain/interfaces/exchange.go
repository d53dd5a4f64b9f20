package interfaces

import (
	"context"

	"github.com/mnemon-dev/mnemon/pkg/domain/model"
)

// ExchangeRepository defines the interface for the durable, append-only
// exchange log. Each Append is independently atomic; the two appends of
// one conversation turn are NOT atomic as a pair.
type ExchangeRepository interface {
	// Append durably persists one record. The record's ID is assigned
	// by the store if empty. Fails with types.ErrStoreUnavailable when
	// the backend cannot be reached or times out.
	Append(ctx context.Context, record *model.ExchangeRecord) error

	// ListByUser returns all records for the user ordered by Timestamp
	// ascending, ties broken by store-assigned insertion order. An
	// unknown user yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID string) ([]*model.ExchangeRecord, error)
}

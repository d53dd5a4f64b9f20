package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
)

// ExchangeID is the store-assigned identifier of an exchange record.
// UUIDv7 keeps IDs time-ordered, so within equal timestamps the ID
// reflects insertion order.
type ExchangeID string

// NewExchangeID generates a new UUIDv7 ExchangeID
func NewExchangeID() ExchangeID {
	return ExchangeID(uuid.Must(uuid.NewV7()).String())
}

// ExchangeRecord is one turn of conversation: a single message produced
// by either the user or the assistant. Records are immutable once
// written; history only grows.
type ExchangeRecord struct {
	ID        ExchangeID
	UserID    string // opaque, externally supplied, never validated for format
	Role      types.Role
	Message   string
	Timestamp time.Time // UTC, assigned by the recorder at write time
}

// Message is a role-tagged text value, the in-memory view of a record
// used for context assembly.
type Message struct {
	Role    types.Role
	Content string
}

// ToMessage converts a record to its history view
func (x *ExchangeRecord) ToMessage() Message {
	return Message{
		Role:    x.Role,
		Content: x.Message,
	}
}

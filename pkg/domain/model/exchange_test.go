package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mnemon-dev/mnemon/pkg/domain/model"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
)

func TestNewExchangeID(t *testing.T) {
	id1 := model.NewExchangeID()
	id2 := model.NewExchangeID()

	gt.String(t, string(id1)).NotEqual("")
	gt.Value(t, id1).NotEqual(id2)

	// UUIDv7 is time-ordered: later IDs sort after earlier ones
	gt.Bool(t, string(id1) < string(id2)).True()
}

func TestExchangeRecord_ToMessage(t *testing.T) {
	rec := &model.ExchangeRecord{
		ID:        model.NewExchangeID(),
		UserID:    "u-001",
		Role:      types.RoleAssistant,
		Message:   "hello there",
		Timestamp: time.Now().UTC(),
	}

	msg := rec.ToMessage()
	gt.Value(t, msg.Role).Equal(types.RoleAssistant)
	gt.Value(t, msg.Content).Equal("hello there")
}

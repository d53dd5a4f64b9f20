package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/domain/model"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
)

// recordExchange persists the turn as two ordered records: the user's
// question, then the assistant's answer. Each append is independently
// atomic but the pair is not: if the first append fails the second is
// never attempted, and if the second fails the already-persisted user
// record stays in the store as an accepted inconsistency.
func (uc *ChatUseCase) recordExchange(ctx context.Context, userID, question, answer string) error {
	userRec := &model.ExchangeRecord{
		UserID:    userID,
		Role:      types.RoleUser,
		Message:   question,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.repo.Exchange().Append(ctx, userRec); err != nil {
		return goerr.Wrap(err, "failed to append user record", goerr.V("user_id", userID))
	}

	// Stamped after the user record, so the assistant timestamp is
	// always >= the user timestamp of the same turn.
	assistantRec := &model.ExchangeRecord{
		UserID:    userID,
		Role:      types.RoleAssistant,
		Message:   answer,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.repo.Exchange().Append(ctx, assistantRec); err != nil {
		return goerr.Wrap(ErrPartialPersistence, "failed to append assistant record",
			goerr.V("user_id", userID),
			goerr.V("user_exchange_id", userRec.ID),
			goerr.V("cause", err.Error()))
	}

	return nil
}

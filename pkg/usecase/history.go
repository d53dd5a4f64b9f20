package usecase

import (
	"context"

	"github.com/mnemon-dev/mnemon/pkg/domain/model"
	"github.com/mnemon-dev/mnemon/pkg/utils/logging"
)

// loadHistory reconstructs the ordered conversation view for a user
// from the exchange store. Records with unrecognized roles are skipped
// so that future role types don't break existing deployments. A
// first-time user simply has an empty history.
func (uc *ChatUseCase) loadHistory(ctx context.Context, userID string) ([]model.Message, error) {
	records, err := uc.repo.Exchange().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(records))
	for _, rec := range records {
		if !rec.Role.IsValid() {
			logging.From(ctx).Warn("skipping record with unrecognized role",
				"user_id", userID,
				"exchange_id", rec.ID,
				"role", rec.Role,
			)
			continue
		}
		messages = append(messages, rec.ToMessage())
	}

	return messages, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/mnemon-dev/mnemon/pkg/domain/model"
)

// Exported for tests in the usecase_test package

func (uc *ChatUseCase) AssembleContext(history []model.Message, question string, now time.Time) *ContextPayload {
	return uc.assembleContext(history, question, now)
}

func (uc *ChatUseCase) LoadHistory(ctx context.Context, userID string) ([]model.Message, error) {
	return uc.loadHistory(ctx, userID)
}

var FormatCurrentTime = formatCurrentTime

func NewUserLocks() *userLocks {
	return newUserLocks()
}

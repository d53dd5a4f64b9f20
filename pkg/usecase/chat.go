package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/mnemon-dev/mnemon/pkg/utils/logging"
)

// ChatUseCase orchestrates one conversation turn: load the user's
// history, assemble the completion context, invoke the completion
// engine once, and record the exchange. It holds no conversational
// state across turns; every turn reconstructs its view from the store,
// so multiple service instances stay consistent without coordination.
type ChatUseCase struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
	directive string
	location  *time.Location
	locks     *userLocks
}

// NewChatUseCase creates a new ChatUseCase instance
func NewChatUseCase(repo interfaces.Repository, llmClient gollem.LLMClient, directive string, loc *time.Location) *ChatUseCase {
	return &ChatUseCase{
		repo:      repo,
		llmClient: llmClient,
		directive: directive,
		location:  loc,
		locks:     newUserLocks(),
	}
}

// Ask runs one turn for the given user and returns the assistant's
// answer. The user ID is opaque and trusted as supplied. Turns for the
// same user are serialized so their appends never interleave; turns
// for distinct users run concurrently.
func (uc *ChatUseCase) Ask(ctx context.Context, userID, question string) (string, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(question) == "" {
		return "", goerr.Wrap(ErrInvalidInput, "question is empty", goerr.V("user_id", userID))
	}

	unlock := uc.locks.Lock(userID)
	defer unlock()

	history, err := uc.loadHistory(ctx, userID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to load conversation history", goerr.V("user_id", userID))
	}

	payload := uc.assembleContext(history, question, time.Now())

	answer, err := uc.invokeCompletion(ctx, payload)
	if err != nil {
		// No record is written for the turn; the invariant that a
		// dangling user record only comes from a recorder-level
		// partial failure holds.
		return "", err
	}

	if err := uc.recordExchange(ctx, userID, question, answer); err != nil {
		return "", err
	}

	logger.Debug("turn completed",
		"user_id", userID,
		"history_len", len(history),
	)
	return answer, nil
}

// invokeCompletion makes exactly one completion attempt. All failure
// modes of the engine fold into ErrCompletionFailure; retries, if any,
// belong to an outer layer.
func (uc *ChatUseCase) invokeCompletion(ctx context.Context, payload *ContextPayload) (string, error) {
	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(payload.SystemPrompt),
	)

	resp, err := agent.Execute(ctx, gollem.Text(payload.Question))
	if err != nil {
		return "", goerr.Wrap(ErrCompletionFailure, "failed to execute completion",
			goerr.V("cause", err.Error()))
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.Wrap(ErrCompletionFailure, "completion returned no content")
	}

	return strings.Join(resp.Texts, "\n"), nil
}

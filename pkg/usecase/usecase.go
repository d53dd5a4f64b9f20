package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
)

type UseCases struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
	directive string
	location  *time.Location

	Chat *ChatUseCase
}

type Option func(*UseCases)

// WithLLMClient sets the completion client. The Chat use case is only
// available when a client is configured.
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithDirective overrides the embedded default behavioral directive
func WithDirective(directive string) Option {
	return func(uc *UseCases) {
		if directive != "" {
			uc.directive = directive
		}
	}
}

// WithLocation sets the time zone used for situational metadata
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		if loc != nil {
			uc.location = loc
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		directive: defaultDirective,
		location:  time.UTC,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.llmClient != nil {
		uc.Chat = NewChatUseCase(repo, uc.llmClient, uc.directive, uc.location)
	}

	return uc
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	controller "github.com/mnemon-dev/mnemon/pkg/controller/http"
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
	"github.com/mnemon-dev/mnemon/pkg/domain/types"
	"github.com/mnemon-dev/mnemon/pkg/repository/memory"
	"github.com/mnemon-dev/mnemon/pkg/usecase"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"mock answer"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) { return nil, nil }

func (s *mockLLMSession) AppendHistory(*gollem.History) error { return nil }

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &mockLLMSession{generateContentFn: c.generateContentFn}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func newTestServer(t *testing.T, repo interfaces.Repository, llm gollem.LLMClient, opts ...controller.Options) *controller.Server {
	t.Helper()
	uc := usecase.New(repo, usecase.WithLLMClient(llm))
	srv, err := controller.New(uc.Chat, opts...)
	gt.NoError(t, err).Required()
	return srv
}

func postChat(t *testing.T, srv *controller.Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeChat(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Response string `json:"response"`
	}
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
	return resp.Response
}

func TestChatEndpoint(t *testing.T) {
	repo := memory.New()
	srv := newTestServer(t, repo, &mockLLMClient{})

	rec := postChat(t, srv, map[string]string{
		"user_id":  "u-001",
		"question": "hello",
	})

	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Header().Get("Content-Type")).Equal("application/json")
	gt.String(t, decodeChat(t, rec)).Equal("mock answer")

	records, err := repo.Exchange().ListByUser(context.Background(), "u-001")
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(2)
	gt.Value(t, records[0].Role).Equal(types.RoleUser)
	gt.Value(t, records[1].Role).Equal(types.RoleAssistant)
}

func TestChatEndpoint_EmptyQuestion(t *testing.T) {
	repo := memory.New()
	srv := newTestServer(t, repo, &mockLLMClient{})

	rec := postChat(t, srv, map[string]string{
		"user_id":  "u-001",
		"question": "   ",
	})

	// Validation failures still answer 200 with the user-safe message
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, decodeChat(t, rec)).Contains("type a message")

	records, err := repo.Exchange().ListByUser(context.Background(), "u-001")
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(0)
}

func TestChatEndpoint_CompletionFailureHidden(t *testing.T) {
	repo := memory.New()
	llm := &mockLLMClient{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return nil, errors.New("secret internal detail")
		},
	}
	srv := newTestServer(t, repo, llm)

	rec := postChat(t, srv, map[string]string{
		"user_id":  "u-001",
		"question": "hello",
	})

	gt.Number(t, rec.Code).Equal(http.StatusOK)
	answer := decodeChat(t, rec)
	gt.String(t, answer).Contains("Sorry")
	gt.String(t, answer).NotContains("secret internal detail")
}

func TestChatEndpoint_CustomMessages(t *testing.T) {
	repo := memory.New()
	llm := &mockLLMClient{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return nil, errors.New("boom")
		},
	}
	srv := newTestServer(t, repo, llm,
		controller.WithApologyMessage("custom apology"),
		controller.WithValidationMessage("custom validation"),
	)

	rec := postChat(t, srv, map[string]string{"user_id": "u-001", "question": "hello"})
	gt.String(t, decodeChat(t, rec)).Equal("custom apology")

	rec = postChat(t, srv, map[string]string{"user_id": "u-001", "question": ""})
	gt.String(t, decodeChat(t, rec)).Equal("custom validation")
}

func TestChatEndpoint_MissingUserID(t *testing.T) {
	srv := newTestServer(t, memory.New(), &mockLLMClient{})

	rec := postChat(t, srv, map[string]string{"question": "hello"})
	gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestChatEndpoint_MalformedBody(t *testing.T) {
	srv := newTestServer(t, memory.New(), &mockLLMClient{})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestChatEndpoint_HistoryCarriesAcrossTurns(t *testing.T) {
	repo := memory.New()
	llm := &mockLLMClient{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{"answer"}}, nil
		},
	}
	srv := newTestServer(t, repo, llm)

	rec := postChat(t, srv, map[string]string{"user_id": "u-001", "question": "my name is Asha"})
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = postChat(t, srv, map[string]string{"user_id": "u-001", "question": "what is my name?"})
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	records, err := repo.Exchange().ListByUser(context.Background(), "u-001")
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(4)
	gt.Value(t, records[2].Message).Equal("what is my name?")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New(), &mockLLMClient{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains(`"status":"ok"`)
}

func TestIndexPageServed(t *testing.T) {
	srv := newTestServer(t, memory.New(), &mockLLMClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains("<!DOCTYPE html>")
}

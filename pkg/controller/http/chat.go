package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/usecase"
	"github.com/mnemon-dev/mnemon/pkg/utils/errutil"
	"github.com/mnemon-dev/mnemon/pkg/utils/safe"
)

const (
	defaultApologyMessage    = "Sorry, something went wrong on my side. Please try again in a moment."
	defaultValidationMessage = "Please type a message before sending."
)

type chatRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// chatHandler accepts one conversational turn and returns the
// assistant's reply. Internal failures never cross this boundary: the
// client always receives HTTP 200 with a user-safe message, and the
// real error goes to the logs.
func (s *Server) chatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode chat request"), http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("chat request without user_id"), http.StatusBadRequest)
			return
		}

		answer, err := s.chatUC.Ask(ctx, req.UserID, req.Question)
		if err != nil {
			_ = errutil.Handle(ctx, err, "chat turn failed")

			msg := s.apologyMessage
			if errors.Is(err, usecase.ErrInvalidInput) {
				msg = s.validationMessage
			}
			writeChatResponse(w, r, msg)
			return
		}

		writeChatResponse(w, r, answer)
	}
}

func writeChatResponse(w http.ResponseWriter, r *http.Request, msg string) {
	data, err := json.Marshal(chatResponse{Response: msg})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal chat response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

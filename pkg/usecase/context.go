package usecase

import (
	"bytes"
	_ "embed"
	"text/template"
	"time"

	"github.com/mnemon-dev/mnemon/pkg/domain/model"
)

//go:embed prompt/directive.md
var defaultDirective string

//go:embed prompt/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTmpl))

// ContextPayload is the bounded request for one completion call: the
// rendered system prompt (directive, situational metadata, full
// history) and the new question as the final turn.
type ContextPayload struct {
	SystemPrompt string
	Question     string
}

// promptMessage represents a history message for template rendering
type promptMessage struct {
	Role    string
	Content string
}

// systemPromptData holds all data for the system prompt template
type systemPromptData struct {
	Directive   string
	CurrentTime string
	Messages    []promptMessage
}

// assembleContext concatenates, in fixed order, the behavioral
// directive, the formatted current time in the configured zone, the
// full ordered history, and the question. No truncation or token
// budget is applied; history grows without bound.
func (uc *ChatUseCase) assembleContext(history []model.Message, question string, now time.Time) *ContextPayload {
	data := systemPromptData{
		Directive:   uc.directive,
		CurrentTime: formatCurrentTime(now, uc.location),
	}
	for _, msg := range history {
		data.Messages = append(data.Messages, promptMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}

	var buf bytes.Buffer
	// The template only dereferences fields of the data struct above;
	// it cannot fail at execution time.
	_ = systemPrompt.Execute(&buf, data)

	return &ContextPayload{
		SystemPrompt: buf.String(),
		Question:     question,
	}
}

// formatCurrentTime renders weekday, date and time in the given zone,
// e.g. "Monday, 02 March 2026, 04:15 PM IST"
func formatCurrentTime(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("Monday, 02 January 2006, 03:04 PM MST")
}

// Package llm runs agent definitions against a hosted agent runtime.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gestor/gestor/agents/configs"
	"gestor/gestor/config"
	"gestor/gestor/utils/logging"

	"go.uber.org/zap"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	ContentInputText  = "input_text"
	ContentOutputText = "output_text"
	ContentRefusal    = "refusal"

	OutputMessage = "message"
)

// ErrNoFinalOutput is returned when a run finished without an assistant message.
var ErrNoFinalOutput = errors.New("agent run produced no final text output")

// Runner executes one agent run and blocks until the remote side answers.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

type InputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type InputItem struct {
	Role    string         `json:"role"`
	Content []InputContent `json:"content"`
}

// RunContext is the per-run value the instructions template reads from.
type RunContext struct {
	WorkflowInputAsText string
}

type RunConfig struct {
	WorkflowName  string
	TraceMetadata map[string]string
}

type RunRequest struct {
	Agent   *configs.AgentDefinition
	Input   []InputItem
	Context RunContext
	Config  RunConfig
}

type OutputContent struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

type OutputItem struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Role    string          `json:"role,omitempty"`
	Status  string          `json:"status,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
	// image_generation_call carries the base64 image here
	Result string `json:"result,omitempty"`
}

type RunResult struct {
	ResponseID string
	TraceID    string
	Output     []OutputItem
}

// FinalOutputText returns the text of the last assistant message.
func (r *RunResult) FinalOutputText() (string, error) {
	for i := len(r.Output) - 1; i >= 0; i-- {
		item := r.Output[i]
		if item.Type != OutputMessage {
			continue
		}
		var sb strings.Builder
		var refusal string
		for _, c := range item.Content {
			switch c.Type {
			case ContentOutputText:
				sb.WriteString(c.Text)
			case ContentRefusal:
				refusal = c.Refusal
			}
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
		if refusal != "" {
			return "", fmt.Errorf("agent refused to answer: %s", refusal)
		}
	}
	return "", ErrNoFinalOutput
}

// NewRunner picks the runner for cfg: the offline mock in MOCK mode,
// the Responses API otherwise.
func NewRunner(cfg config.Config) (Runner, error) {
	if cfg.MockMode() {
		logging.AppLogger.Info("AGENT_MODE=MOCK detected, using mock agent runner")
		return NewMockClient(), nil
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY environment variable")
	}
	logging.AppLogger.Info("using responses agent runner",
		zap.String("base_url", cfg.OpenAIBaseURL),
		zap.Duration("timeout", cfg.AgentTimeout),
	)
	return NewResponsesClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.AgentTimeout), nil
}

// gestor/controllers/chat.go
package controllers

import (
	"context"
	"fmt"

	"gestor/gestor/agents/configs"
	"gestor/gestor/services/llm"
	"gestor/gestor/utils/logging"
	"gestor/gestor/utils/types"

	"go.uber.org/zap"
)

type ChatController struct {
	runner llm.Runner
	agent  *configs.AgentDefinition
}

func NewChatController(runner llm.Runner, agent *configs.AgentDefinition) *ChatController {
	return &ChatController{runner: runner, agent: agent}
}

// runRequest builds the one-turn invocation for message. History is never included.
func (c *ChatController) runRequest(message string) llm.RunRequest {
	return llm.RunRequest{
		Agent: c.agent,
		Input: []llm.InputItem{{
			Role:    llm.RoleUser,
			Content: []llm.InputContent{{Type: llm.ContentInputText, Text: message}},
		}},
		Context: llm.RunContext{WorkflowInputAsText: message},
		Config: llm.RunConfig{
			WorkflowName:  c.agent.Trace.WorkflowName,
			TraceMetadata: c.agent.Trace.Metadata,
		},
	}
}

// Chat runs the agent on req.Message and returns its final text.
// Every failure comes back as *InternalProcessingError.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (resp *types.ChatResponse, err error) {
	defer logging.LogDuration(ctx, "chat")()
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, c.fail(fmt.Errorf("panic: %v", r))
		}
	}()

	if len(req.ConversationHistory) > 0 {
		logging.AppLogger.Info("ignoring conversation history",
			zap.Int("items", len(req.ConversationHistory)))
	}

	result, err := c.runner.Run(ctx, c.runRequest(req.Message))
	if err != nil {
		return nil, c.fail(err)
	}
	text, err := result.FinalOutputText()
	if err != nil {
		return nil, c.fail(err)
	}
	return &types.ChatResponse{Response: text, Status: types.StatusSuccess}, nil
}

func (c *ChatController) fail(err error) error {
	perr := &InternalProcessingError{Err: err}
	logging.ErrorLogger.Error(ProcessingErrorPrefix, zap.String("agent", c.agent.Name), zap.Error(err))
	return perr
}

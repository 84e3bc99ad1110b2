package llm

import (
	"context"
	"errors"
	"fmt"
)

// MockClient answers without leaving the process. Useful for local runs and demos.
type MockClient struct{}

var _ Runner = (*MockClient)(nil)

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Agent == nil {
		return nil, errors.New("run request has no agent")
	}
	traceID := NewTraceID()
	return &RunResult{
		ResponseID: "resp_mock",
		TraceID:    traceID,
		Output: []OutputItem{{
			Type:   OutputMessage,
			Role:   RoleAssistant,
			Status: "completed",
			Content: []OutputContent{{
				Type: ContentOutputText,
				Text: fmt.Sprintf("[%s] %s", req.Agent.Name, req.Context.WorkflowInputAsText),
			}},
		}},
	}, nil
}

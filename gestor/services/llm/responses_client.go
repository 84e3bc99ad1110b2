package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gestor/gestor/agents/configs"
	httputils "gestor/gestor/utils/http"
	"gestor/gestor/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponsesClient runs agents through the OpenAI Responses API. Hosted tools
// (file search, web search, image generation) execute on the remote side, so
// one request yields the final answer.
type ResponsesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Runner = (*ResponsesClient)(nil)

func NewResponsesClient(baseURL, apiKey string, timeout time.Duration) *ResponsesClient {
	return &ResponsesClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type responsesRequest struct {
	Model        string             `json:"model"`
	Instructions string             `json:"instructions,omitempty"`
	Input        []InputItem        `json:"input"`
	Tools        []configs.Tool     `json:"tools,omitempty"`
	Store        *bool              `json:"store,omitempty"`
	Reasoning    *configs.Reasoning `json:"reasoning,omitempty"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
}

type responsesError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type responsesResponse struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	Error             *responsesError `json:"error"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details"`
	Output []OutputItem `json:"output"`
}

// NewTraceID returns an id in the trace_<32 hex> form used by agent tracing.
func NewTraceID() string {
	return "trace_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (c *ResponsesClient) buildRequest(req RunRequest, traceID string) responsesRequest {
	agent := req.Agent
	metadata := make(map[string]string, len(req.Config.TraceMetadata)+2)
	for k, v := range req.Config.TraceMetadata {
		metadata[k] = v
	}
	if req.Config.WorkflowName != "" {
		metadata["workflow_name"] = req.Config.WorkflowName
	}
	metadata["trace_id"] = traceID

	return responsesRequest{
		Model:        agent.Model,
		Instructions: agent.Instructions(req.Context.WorkflowInputAsText),
		Input:        req.Input,
		Tools:        agent.Tools,
		Store:        agent.ModelSettings.Store,
		Reasoning:    agent.ModelSettings.Reasoning,
		Metadata:     metadata,
	}
}

// Run executes a single agent turn (non-streaming)
func (c *ResponsesClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if req.Agent == nil {
		return nil, errors.New("run request has no agent")
	}
	traceID := NewTraceID()
	ctx = logging.WithTraceID(ctx, traceID)
	defer logging.LogDuration(ctx, "responses_run")()

	logging.AppLogger.Info("agent run started",
		zap.String("agent", req.Agent.Name),
		zap.String("model", req.Agent.Model),
		zap.Strings("tools", req.Agent.ToolTypes()),
		zap.String("workflow", req.Config.WorkflowName),
		zap.String("trace_id", traceID),
	)

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	var parsed responsesResponse
	if err := httputils.PostJSON(ctx, c.client, c.baseURL+"/responses", headers, c.buildRequest(req, traceID), &parsed); err != nil {
		return nil, describeError(err)
	}

	switch parsed.Status {
	case "failed":
		if parsed.Error != nil {
			return nil, fmt.Errorf("agent run failed: %s: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return nil, errors.New("agent run failed")
	case "incomplete":
		reason := "unknown"
		if parsed.IncompleteDetails != nil && parsed.IncompleteDetails.Reason != "" {
			reason = parsed.IncompleteDetails.Reason
		}
		return nil, fmt.Errorf("agent run incomplete: %s", reason)
	}

	logging.AppLogger.Info("agent run finished",
		zap.String("response_id", parsed.ID),
		zap.Int("output_items", len(parsed.Output)),
		zap.String("trace_id", traceID),
	)
	return &RunResult{ResponseID: parsed.ID, TraceID: traceID, Output: parsed.Output}, nil
}

// describeError replaces a raw status error with the API's own message when it sent one.
func describeError(err error) error {
	var statusErr *httputils.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("responses request failed: %w", err)
	}
	var body struct {
		Error *responsesError `json:"error"`
	}
	if json.Unmarshal(statusErr.Body, &body) == nil && body.Error != nil && body.Error.Message != "" {
		return fmt.Errorf("responses API error (%d): %s", statusErr.StatusCode, body.Error.Message)
	}
	return fmt.Errorf("responses request failed: %w", err)
}

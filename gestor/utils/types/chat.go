// gestor/utils/types/chat.go
package types

import "encoding/json"

const StatusSuccess = "success"

// ChatRequest is the body of POST /chat.
// ConversationHistory is accepted but does not reach the agent.
type ChatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []json.RawMessage `json:"conversation_history,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// ErrorResponse carries a human readable failure, e.g. for 500s.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationIssue mirrors one entry of a 422 body: where, what, and which check failed.
type ValidationIssue struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

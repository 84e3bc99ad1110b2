package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gestor/gestor/agents/configs"
	"gestor/gestor/controllers"
	"gestor/gestor/services/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	mu    sync.Mutex
	calls []llm.RunRequest
	err   error
}

func (s *stubRunner) Run(ctx context.Context, req llm.RunRequest) (*llm.RunResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &llm.RunResult{Output: []llm.OutputItem{{
		Type:    llm.OutputMessage,
		Role:    llm.RoleAssistant,
		Content: []llm.OutputContent{{Type: llm.ContentOutputText, Text: "Resposta per: " + req.Context.WorkflowInputAsText}},
	}}}, nil
}

func newTestRouter(runner llm.Runner) http.Handler {
	return NewRouter(
		controllers.NewChatController(runner, configs.DefaultAgentDefinition()),
		controllers.NewHealthController(),
		5*time.Second,
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestHealthEndpoints(t *testing.T) {
	// a broken runner must not affect health
	h := newTestRouter(&stubRunner{err: errors.New("down")})

	rec, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"status": "healthy", "service": "Gestor Familiar API", "version": "1.0.0"}, body)

	rec, body = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"status": "healthy"}, body)
}

func TestChatSuccess(t *testing.T) {
	runner := &stubRunner{}
	h := newTestRouter(runner)

	rec, body := do(t, h, http.MethodPost, "/chat", `{"message":"Quan és l'aniversari de X?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["response"])
	assert.Len(t, runner.calls, 1)
}

func TestChatRunnerFailure(t *testing.T) {
	h := newTestRouter(&stubRunner{err: errors.New("remote timeout")})

	rec, body := do(t, h, http.MethodPost, "/chat", `{"message":"hola"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	detail, ok := body["detail"].(string)
	require.True(t, ok)
	assert.Contains(t, detail, "Error al procesar la solicitud")
	assert.Contains(t, detail, "remote timeout")
}

func TestChatHistoryIsInert(t *testing.T) {
	runner := &stubRunner{}
	h := newTestRouter(runner)

	rec, _ := do(t, h, http.MethodPost, "/chat", `{"message":"hola"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/chat", `{"message":"hola","conversation_history":[{"role":"user","content":"abans"},"x",3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/chat", `{"message":"hola","conversation_history":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, runner.calls, 3)
	assert.Equal(t, runner.calls[0], runner.calls[1])
	assert.Equal(t, runner.calls[0], runner.calls[2])
}

func TestChatValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		loc     []interface{}
		errType string
	}{
		{"missing message", `{"conversation_history":[]}`, []interface{}{"body", "message"}, "missing"},
		{"null message", `{"message":null}`, []interface{}{"body", "message"}, "string_type"},
		{"number message", `{"message":42}`, []interface{}{"body", "message"}, "string_type"},
		{"history not a list", `{"message":"hola","conversation_history":"x"}`, []interface{}{"body", "conversation_history"}, "list_type"},
		{"not an object", `["hola"]`, []interface{}{"body"}, "model_attributes_type"},
		{"broken json", `{"message":`, []interface{}{"body"}, "json_invalid"},
		{"empty body", ``, []interface{}{"body"}, "json_invalid"},
		{"second object after body", `{"message":"a"}{"x":1}`, []interface{}{"body"}, "json_invalid"},
		{"stray brace after body", `{"message":"a"} }`, []interface{}{"body"}, "json_invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &stubRunner{}
			h := newTestRouter(runner)

			rec, body := do(t, h, http.MethodPost, "/chat", tc.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			detail, ok := body["detail"].([]interface{})
			require.True(t, ok, rec.Body.String())
			require.Len(t, detail, 1)
			issue := detail[0].(map[string]interface{})
			assert.Equal(t, tc.loc, issue["loc"])
			assert.Equal(t, tc.errType, issue["type"])
			assert.Empty(t, runner.calls)
		})
	}
}

func TestChatEmptyMessageIsAccepted(t *testing.T) {
	runner := &stubRunner{}
	rec, _ := do(t, newTestRouter(runner), http.MethodPost, "/chat", `{"message":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, runner.calls, 1)
}

func TestChatTrailingWhitespaceIsAccepted(t *testing.T) {
	runner := &stubRunner{}
	rec, _ := do(t, newTestRouter(runner), http.MethodPost, "/chat", "{\"message\":\"hola\"}\n\t ")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, runner.calls, 1)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(&stubRunner{})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://familia.netlify.app")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://familia.netlify.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hola"}`))
	req.Header.Set("Origin", "https://familia.netlify.app")
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://familia.netlify.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEqual(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&stubRunner{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

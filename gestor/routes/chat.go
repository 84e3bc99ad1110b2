package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gestor/gestor/controllers"
	"gestor/gestor/utils/jsonutils"
	"gestor/gestor/utils/types"

	"github.com/go-chi/chi/v5"
)

var jsonNull = []byte("null")

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()
	// POST /chat : one-shot question to the agent
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		req, issues := decodeChatRequest(r.Body)
		if len(issues) > 0 {
			jsonutils.WriteJSON(w, http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: issues})
			return
		}
		resp, err := ctrl.Chat(r.Context(), req)
		if err != nil {
			var perr *controllers.InternalProcessingError
			if !errors.As(err, &perr) {
				perr = &controllers.InternalProcessingError{Err: err}
			}
			jsonutils.WriteJSON(w, http.StatusInternalServerError, types.ErrorResponse{Detail: perr.Error()})
			return
		}
		jsonutils.WriteJSON(w, http.StatusOK, resp)
	})
	return r
}

// decodeChatRequest checks the body field by field so every problem is reported at once.
func decodeChatRequest(body io.Reader) (types.ChatRequest, []types.ValidationIssue) {
	var req types.ChatRequest
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return req, []types.ValidationIssue{{
				Loc: []interface{}{"body"}, Msg: "Input should be a valid dictionary", Type: "model_attributes_type",
			}}
		}
		return req, []types.ValidationIssue{{
			Loc: []interface{}{"body"}, Msg: "JSON decode error: " + err.Error(), Type: "json_invalid",
		}}
	}
	// the body must hold exactly one JSON value
	if _, err := dec.Token(); err != io.EOF {
		return req, []types.ValidationIssue{{
			Loc: []interface{}{"body"}, Msg: "JSON decode error: unexpected data after the request object", Type: "json_invalid",
		}}
	}

	var issues []types.ValidationIssue
	raw, ok := fields["message"]
	switch {
	case !ok:
		issues = append(issues, types.ValidationIssue{
			Loc: []interface{}{"body", "message"}, Msg: "Field required", Type: "missing",
		})
	case bytes.Equal(bytes.TrimSpace(raw), jsonNull) || json.Unmarshal(raw, &req.Message) != nil:
		issues = append(issues, types.ValidationIssue{
			Loc: []interface{}{"body", "message"}, Msg: "Input should be a valid string", Type: "string_type",
		})
	}

	if raw, ok := fields["conversation_history"]; ok && !bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		if err := json.Unmarshal(raw, &req.ConversationHistory); err != nil {
			issues = append(issues, types.ValidationIssue{
				Loc: []interface{}{"body", "conversation_history"}, Msg: "Input should be a valid list", Type: "list_type",
			})
		}
	}
	return req, issues
}

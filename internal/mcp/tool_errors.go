package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// toolErrorEnvelope is the structured error shape read tools return. It
// keeps remote failures machine-distinguishable: a version conflict is not a
// network failure is not a missing key.
type toolErrorEnvelope struct {
	ErrorCode  string `json:"error_code"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

// withToolErrors converts handler errors into the structured envelope so no
// remote-side failure ever escapes a tool as an unstructured crash.
func withToolErrors[In, Out any](h mcpsdk.ToolHandlerFor[In, Out]) mcpsdk.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, Out, error) {
		res, out, err := h(ctx, req, input)
		if err == nil {
			return res, out, nil
		}
		var zero Out
		return nil, zero, toolError{Envelope: classifyToolError(err)}
	}
}

type toolError struct {
	Envelope toolErrorEnvelope
}

func (e toolError) Error() string {
	encoded, err := json.Marshal(map[string]any{"error": e.Envelope})
	if err != nil {
		return `{"error":{"error_code":"tool_error","detail":"failed to encode error envelope"}}`
	}
	return string(encoded)
}

func classifyToolError(err error) toolErrorEnvelope {
	env := toolErrorEnvelope{ErrorCode: "tool_error", Detail: strings.TrimSpace(err.Error())}

	var invalidType *zotero.InvalidTypeError
	var apiErr *zotero.APIError
	switch {
	case errors.Is(err, zotero.ErrConflict):
		env.ErrorCode = "version_conflict"
		env.HTTPStatus = 412
	case errors.Is(err, zotero.ErrNotFound):
		env.ErrorCode = "not_found"
		env.HTTPStatus = 404
	case errors.Is(err, zotero.ErrUnauthorized):
		env.ErrorCode = "unauthorized"
		env.HTTPStatus = 401
	case errors.Is(err, zotero.ErrForbidden):
		env.ErrorCode = "forbidden"
		env.HTTPStatus = 403
	case errors.As(err, &invalidType):
		env.ErrorCode = "invalid_item_type"
	case errors.As(err, &apiErr):
		env.ErrorCode = "remote_rejection"
		env.HTTPStatus = apiErr.Status
	}
	return env
}

// errorMessage flattens an error for the write-tool envelopes.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

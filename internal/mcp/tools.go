package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/credkeep/internal/credstore"
	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/output"
)

// SaveInput represents the input for the credential_save tool
type SaveInput struct {
	Account string `json:"account"`
	Secret  string `json:"secret"`
}

// AccountInput is the input shared by the retrieve/check/delete tools
type AccountInput struct {
	Account string `json:"account"`
}

// ServerOptions controls which tools are exposed
type ServerOptions struct {
	// AllowReveal registers credential_retrieve, which returns secrets to the client.
	AllowReveal bool
}

// ToolHandler manages MCP tools
type ToolHandler struct {
	store       *credstore.Store
	allowReveal bool
}

// NewToolHandler creates a new tool handler
func NewToolHandler(store *credstore.Store, opts ServerOptions) *ToolHandler {
	return &ToolHandler{store: store, allowReveal: opts.AllowReveal}
}

func accountSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"account"},
		Properties: map[string]*jsonschema.Schema{
			"account": {Type: "string", Description: "Account name the password is stored under"},
		},
	}
}

// RegisterTools registers all tools with the MCP server
func (h *ToolHandler) RegisterTools(server *mcp.Server) {
	server.AddTool(&mcp.Tool{
		Name:        "credential_save",
		Description: "Save a password for an account; overwrites an existing one",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"account", "secret"},
			Properties: map[string]*jsonschema.Schema{
				"account": {Type: "string", Description: "Account name the password is stored under"},
				"secret":  {Type: "string", Description: "Password to store"},
			},
		},
	}, rawHandler(h.Save))

	server.AddTool(&mcp.Tool{
		Name:        "credential_delete",
		Description: "Delete the password for an account; deleting an absent account succeeds",
		InputSchema: accountSchema(),
	}, rawHandler(h.Delete))

	server.AddTool(&mcp.Tool{
		Name:        "credential_check",
		Description: "Report whether a password is stored for an account without revealing it",
		InputSchema: accountSchema(),
	}, rawHandler(h.Check))

	if h.allowReveal {
		server.AddTool(&mcp.Tool{
			Name:        "credential_retrieve",
			Description: "Return the stored password for an account",
			InputSchema: accountSchema(),
		}, rawHandler(h.Retrieve))
	}
}

// rawHandler decodes tool arguments into In and calls the typed handler
func rawHandler[In any](fn func(context.Context, In) *mcp.CallToolResult) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input In
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &input); err != nil {
				return errorResult(errors.Wrap(errors.CodeInvalidArgument, "invalid input", nil, err)), nil
			}
		}
		return fn(ctx, input), nil
	}
}

// Save stores a password
func (h *ToolHandler) Save(ctx context.Context, input SaveInput) *mcp.CallToolResult {
	if err := h.store.Save(ctx, input.Account, input.Secret); err != nil {
		return errorResult(err)
	}
	return okResult(map[string]any{"account": input.Account, "saved": true})
}

// Delete removes a password
func (h *ToolHandler) Delete(ctx context.Context, input AccountInput) *mcp.CallToolResult {
	if err := h.store.Delete(ctx, input.Account); err != nil {
		return errorResult(err)
	}
	return okResult(map[string]any{"account": input.Account, "deleted": true})
}

// Check reports presence only
func (h *ToolHandler) Check(ctx context.Context, input AccountInput) *mcp.CallToolResult {
	_, err := h.store.Retrieve(ctx, input.Account)
	switch {
	case err == nil:
		return okResult(map[string]any{"account": input.Account, "present": true})
	case credstore.IsNotFound(err):
		return okResult(map[string]any{"account": input.Account, "present": false})
	default:
		return errorResult(err)
	}
}

// Retrieve returns the password
func (h *ToolHandler) Retrieve(ctx context.Context, input AccountInput) *mcp.CallToolResult {
	secret, err := h.store.Retrieve(ctx, input.Account)
	if err != nil {
		return errorResult(err)
	}
	return okResult(map[string]any{"account": input.Account, "secret": secret})
}

func okResult(data any) *mcp.CallToolResult {
	env := output.Envelope{OK: true, SchemaVersion: output.SchemaVersion, Data: data}
	jsonData, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return errorResult(errors.Wrap(errors.CodeInternal, "failed to marshal result", nil, err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonData)}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: formatError(err)}},
	}
}

// formatError formats an error as a JSON envelope
func formatError(err error) string {
	var xe *errors.XError
	if err != nil {
		xe = errors.AsOrWrap(err)
	} else {
		xe = errors.New(errors.CodeInternal, "unknown error", nil)
	}
	env := output.Envelope{
		OK:            false,
		SchemaVersion: output.SchemaVersion,
		Error:         &output.ErrorObject{Code: xe.Code, Message: xe.Message, Details: xe.Details},
	}
	jsonData, _ := json.MarshalIndent(env, "", "  ")
	return string(jsonData)
}

// CreateServer creates a new MCP server
func CreateServer(version string, store *credstore.Store, opts ServerOptions) (*mcp.Server, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "credential store is nil", nil)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "credkeep",
		Version: version,
	}, nil)

	NewToolHandler(store, opts).RegisterTools(server)

	return server, nil
}

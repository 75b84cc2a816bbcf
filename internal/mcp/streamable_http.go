package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/credkeep/internal/errors"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"

	DefaultHTTPAddr = "127.0.0.1:8788"
)

// NewStreamableHTTPHandler creates a streamable HTTP handler guarded by a bearer token.
func NewStreamableHTTPHandler(server *mcp.Server, authToken string) (http.Handler, error) {
	if server == nil {
		return nil, errors.New(errors.CodeInternal, "mcp server is nil", nil)
	}
	if authToken == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "mcp streamable http auth token is required", nil)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	return &bearerAuth{next: handler, token: []byte(authToken)}, nil
}

type bearerAuth struct {
	next  http.Handler
	token []byte
}

func (b *bearerAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	received, ok := bearerToken(req)
	if !ok || subtle.ConstantTimeCompare([]byte(received), b.token) != 1 {
		w.Header().Set("WWW-Authenticate", `Bearer realm="credkeep"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	b.next.ServeHTTP(w, req)
}

func bearerToken(req *http.Request) (string, bool) {
	auth := strings.TrimSpace(req.Header.Get("Authorization"))
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

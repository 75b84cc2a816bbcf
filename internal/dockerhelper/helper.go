// Package dockerhelper 把 CredentialStore 暴露为 docker credential helper：
// server URL 作为 account，用户名与密码编码为 JSON 作为 secret。
package dockerhelper

import (
	"context"
	"encoding/json"
	"io"

	"github.com/docker/docker-credential-helpers/credentials"

	"github.com/zx06/credkeep/internal/credstore"
	"github.com/zx06/credkeep/internal/errors"
)

type payload struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// Helper 实现 credentials.Helper。
type Helper struct {
	ctx   context.Context
	store *credstore.Store
}

var _ credentials.Helper = (*Helper)(nil)

func New(ctx context.Context, store *credstore.Store) *Helper {
	return &Helper{ctx: ctx, store: store}
}

func (h *Helper) Add(c *credentials.Credentials) error {
	if c == nil {
		return errors.New(errors.CodeInvalidArgument, "credentials are required", nil)
	}
	b, err := json.Marshal(payload{Username: c.Username, Secret: c.Secret})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "failed to encode credentials", nil, err)
	}
	return h.store.Save(h.ctx, c.ServerURL, string(b))
}

func (h *Helper) Delete(serverURL string) error {
	return h.store.Delete(h.ctx, serverURL)
}

func (h *Helper) Get(serverURL string) (string, string, error) {
	raw, err := h.store.Retrieve(h.ctx, serverURL)
	if err != nil {
		if credstore.IsNotFound(err) {
			return "", "", credentials.NewErrCredentialsNotFound()
		}
		return "", "", err
	}
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return "", "", errors.New(errors.CodeExtractFailed, "stored docker credentials are not valid", map[string]any{"account": serverURL})
	}
	return p.Username, p.Secret, nil
}

// List 需要枚举账户，而按 account 寻址的平台存储不提供枚举。
func (h *Helper) List() (map[string]string, error) {
	return nil, errors.New(errors.CodeBackendUnsupported, "listing credentials is not supported", nil)
}

// Run 执行一个 helper 动作（store|get|erase|list|version），协议数据经 in/out 传输。
func Run(h *Helper, action string, in io.Reader, out io.Writer) error {
	return credentials.HandleCommand(h, action, in, out)
}

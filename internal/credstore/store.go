// Package credstore 提供单一 service 下按 account 存取密码的门面：Save / Retrieve / Delete。
// 存储、加密与访问控制全部委托给 keychain.Store。
package credstore

import (
	"context"
	stderrors "errors"
	"log/slog"
	"unicode/utf8"

	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/keychain"
	"github.com/zx06/credkeep/internal/log"
)

// Store 绑定一个固定的 service；只有 account 随调用变化。
type Store struct {
	backend keychain.Store
	service string
	logger  *slog.Logger
}

type Option func(*Store)

// WithLogger 注入 logger；默认丢弃日志。
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(backend keychain.Store, service string, opts ...Option) *Store {
	s := &Store{backend: backend, service: service, logger: log.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Service 返回绑定的 service 标识。
func (s *Store) Service() string { return s.service }

// Save 保存 account 的密码；已存在时覆盖（upsert）。
func (s *Store) Save(ctx context.Context, account, secret string) error {
	if xe := s.check(ctx, account); xe != nil {
		return xe
	}
	// Retrieve 只返回合法 UTF-8，存入前同样要求
	if !utf8.ValidString(secret) {
		return errors.New(errors.CodeInvalidArgument, "secret is not valid UTF-8", map[string]any{"account": account})
	}
	data := []byte(secret)
	d := keychain.GenericPassword(s.service, account)

	err := s.backend.Add(d, data)
	if keychain.StatusOf(err) == keychain.StatusDuplicateItem {
		s.logger.Debug("item exists, updating", "service", s.service, "account", account)
		err = s.backend.Update(d, data)
	}
	s.logStatus("save", account, err)
	if err != nil {
		return storeError(errors.CodeSaveFailed, "failed to save credential", account, err)
	}
	return nil
}

// Retrieve 读取 account 的密码。
// 存储报告失败（含不存在）时返回 CodeRetrieveFailed；
// 存储报告成功但数据不可用或账户不符时返回 CodeExtractFailed。
func (s *Store) Retrieve(ctx context.Context, account string) (string, error) {
	if xe := s.check(ctx, account); xe != nil {
		return "", xe
	}
	d := keychain.GenericPassword(s.service, account)
	d.ReturnData = true
	d.ReturnAttributes = true
	d.MatchLimitOne = true

	item, err := s.backend.Find(d)
	s.logStatus("retrieve", account, err)
	if err != nil {
		return "", storeError(errors.CodeRetrieveFailed, "failed to retrieve credential", account, err)
	}

	if item.Data == nil || !utf8.Valid(item.Data) {
		return "", errors.New(errors.CodeExtractFailed, "credential payload is missing or not valid UTF-8", map[string]any{"account": account})
	}
	got, ok := item.Attributes[keychain.AttrAccount]
	if !ok || got != account {
		return "", errors.New(errors.CodeExtractFailed, "credential store returned a record for a different account", map[string]any{"account": account})
	}
	return string(item.Data), nil
}

// Delete 删除 account 的密码；不存在视为成功。
func (s *Store) Delete(ctx context.Context, account string) error {
	if xe := s.check(ctx, account); xe != nil {
		return xe
	}
	err := s.backend.Remove(keychain.GenericPassword(s.service, account))
	s.logStatus("delete", account, err)
	if err != nil && keychain.StatusOf(err) != keychain.StatusItemNotFound {
		return storeError(errors.CodeDeleteFailed, "failed to delete credential", account, err)
	}
	return nil
}

// check 在发起平台调用前校验参数与 ctx；调用一旦发出便不再响应取消。
func (s *Store) check(ctx context.Context, account string) *errors.XError {
	if account == "" {
		return errors.New(errors.CodeInvalidArgument, "account is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.CodeInternal, "operation canceled", map[string]any{"account": account}, err)
	}
	return nil
}

func (s *Store) logStatus(op, account string, err error) {
	st := keychain.StatusOf(err)
	s.logger.Debug("keychain call", "op", op, "service", s.service, "account", account, "status", int32(st), "status_message", st.String())
}

func storeError(code errors.Code, msg, account string, err error) *errors.XError {
	st := keychain.StatusOf(err)
	return errors.Wrap(code, msg, map[string]any{
		"account":        account,
		"status":         int(st),
		"status_message": st.String(),
	}, err)
}

// StatusOf 返回 Store 错误中携带的原始平台状态。
func StatusOf(err error) (keychain.Status, bool) {
	if err == nil {
		return keychain.StatusSuccess, true
	}
	var se *keychain.StatusError
	if !stderrors.As(err, &se) {
		return 0, false
	}
	return se.Status, true
}

// IsNotFound 判断 err 是否为"条目不存在"导致的读取失败。
func IsNotFound(err error) bool {
	xe, ok := errors.As(err)
	if !ok || xe.Code != errors.CodeRetrieveFailed {
		return false
	}
	st, ok := StatusOf(err)
	return ok && st == keychain.StatusItemNotFound
}

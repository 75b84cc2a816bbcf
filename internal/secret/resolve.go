package secret

import (
	"context"
	"strings"

	"github.com/zx06/credkeep/internal/errors"
)

const keyringPrefix = "keyring:"

// Retriever 是 Resolve 所需的最小读取能力（*credstore.Store 满足）。
type Retriever interface {
	Retrieve(ctx context.Context, account string) (string, error)
}

// Options 控制 secret 解析行为。
type Options struct {
	AllowPlaintext bool      // 是否允许明文（默认 false）
	Store          Retriever // keyring: 引用的读取来源
}

// Resolve 解析配置中的 secret 值：
//  1. keyring:<account> → 从凭据存储读取
//  2. 否则若为明文且允许明文 → 直接返回
//  3. 否则报错
func Resolve(ctx context.Context, raw string, opts Options) (string, *errors.XError) {
	if strings.HasPrefix(raw, keyringPrefix) {
		account, xe := parseKeyringRef(strings.TrimPrefix(raw, keyringPrefix))
		if xe != nil {
			return "", xe
		}
		if opts.Store == nil {
			return "", errors.New(errors.CodeInternal, "no credential store configured for keyring reference", map[string]any{"account": account})
		}
		val, err := opts.Store.Retrieve(ctx, account)
		if err != nil {
			return "", errors.AsOrWrap(err)
		}
		return val, nil
	}
	// 明文
	if opts.AllowPlaintext {
		return raw, nil
	}
	return "", errors.New(errors.CodeCfgInvalid, "plaintext secret not allowed; use keyring: reference or enable allow_plaintext", nil)
}

func parseKeyringRef(ref string) (string, *errors.XError) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New(errors.CodeCfgInvalid, "keyring reference is empty", nil)
	}
	return ref, nil
}

// IsKeyringRef 判断值是否为 keyring 引用。
func IsKeyringRef(s string) bool {
	return strings.HasPrefix(s, keyringPrefix)
}

package keychain

import "github.com/zx06/credkeep/internal/errors"

const (
	BackendKeyring = "keyring"
	BackendRing    = "ring"
	BackendMemory  = "memory"
)

// OpenOptions 选择并配置后端。
type OpenOptions struct {
	Type string // keyring（默认）| ring | memory
	Ring RingOptions
}

// Backends 返回支持的后端名。
func Backends() []string {
	return []string{BackendKeyring, BackendRing, BackendMemory}
}

// Open 按类型创建后端。ring 后端惰性打开，首次调用时才接触平台。
func Open(opts OpenOptions) (Store, *errors.XError) {
	switch opts.Type {
	case "", BackendKeyring:
		return NewKeyringStore(), nil
	case BackendRing:
		return NewRingStore(opts.Ring), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.New(errors.CodeBackendUnsupported, "unsupported credential backend", map[string]any{
			"backend":   opts.Type,
			"supported": Backends(),
		})
	}
}

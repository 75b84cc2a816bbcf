package keychain

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	"github.com/99designs/keyring"
)

// FilePasswordEnv 提供 file 后端的加密口令；未设置时在终端提示输入。
const FilePasswordEnv = "CREDKEEP_FILE_PASSWORD"

// RingOptions 配置 99designs/keyring 后端。
type RingOptions struct {
	// Allowed 为后端优先级列表（keychain|secret-service|wincred|kwallet|pass|keyctl|file）；
	// 为空时由 99designs/keyring 自动选择。
	Allowed      []string
	FileDir      string
	KeychainName string
	PassDir      string

	// FilePassword 覆盖 file 后端口令（测试用）。
	FilePassword string
}

// RingStore 通过 99designs/keyring 访问凭据存储。每个 service 对应一个已打开的 keyring，
// 条目以 account 为 Key。
type RingStore struct {
	opts RingOptions
	open func(keyring.Config) (keyring.Keyring, error)

	mu    sync.Mutex
	rings map[string]keyring.Keyring
}

func NewRingStore(opts RingOptions) *RingStore {
	return &RingStore{
		opts:  opts,
		open:  keyring.Open,
		rings: map[string]keyring.Keyring{},
	}
}

func (r *RingStore) config(service string) keyring.Config {
	cfg := keyring.Config{
		ServiceName:             service,
		KeychainName:            r.opts.KeychainName,
		FileDir:                 r.opts.FileDir,
		PassDir:                 r.opts.PassDir,
		LibSecretCollectionName: service,
		KWalletAppID:            service,
		KWalletFolder:           service,
		WinCredPrefix:           service,
	}
	for _, b := range r.opts.Allowed {
		cfg.AllowedBackends = append(cfg.AllowedBackends, keyring.BackendType(b))
	}
	switch {
	case r.opts.FilePassword != "":
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(r.opts.FilePassword)
	case os.Getenv(FilePasswordEnv) != "":
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(os.Getenv(FilePasswordEnv))
	default:
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}
	return cfg
}

func (r *RingStore) ring(op, service string) (keyring.Keyring, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kr, ok := r.rings[service]; ok {
		return kr, nil
	}
	kr, err := r.open(r.config(service))
	if err != nil {
		return nil, newStatusError(op, ringStatus(err), err)
	}
	r.rings[service] = kr
	return kr, nil
}

func label(service, account string) string {
	return fmt.Sprintf("%s (%s)", service, account)
}

func (r *RingStore) Add(d Descriptor, secret []byte) error {
	if err := validate("add", d); err != nil {
		return err
	}
	kr, err := r.ring("add", d.Service)
	if err != nil {
		return err
	}
	exists, err := r.exists(kr, d.Account)
	if err != nil {
		return newStatusError("add", ringStatus(err), err)
	}
	if exists {
		return newStatusError("add", StatusDuplicateItem, nil)
	}
	return r.set("add", kr, d, secret)
}

// exists 优先用元数据探测，后端不支持时退回完整读取。
func (r *RingStore) exists(kr keyring.Keyring, account string) (bool, error) {
	_, err := kr.GetMetadata(account)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, keyring.ErrKeyNotFound):
		return false, nil
	case !stderrors.Is(err, keyring.ErrMetadataNeedsCredentials) && !stderrors.Is(err, keyring.ErrMetadataNotSupported):
		return false, err
	}
	if _, err := kr.Get(account); err != nil {
		if stderrors.Is(err, keyring.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *RingStore) Update(d Descriptor, secret []byte) error {
	if err := validate("update", d); err != nil {
		return err
	}
	kr, err := r.ring("update", d.Service)
	if err != nil {
		return err
	}
	if _, err := kr.Get(d.Account); err != nil {
		return newStatusError("update", ringStatus(err), err)
	}
	return r.set("update", kr, d, secret)
}

func (r *RingStore) set(op string, kr keyring.Keyring, d Descriptor, secret []byte) error {
	err := kr.Set(keyring.Item{
		Key:         d.Account,
		Data:        secret,
		Label:       label(d.Service, d.Account),
		Description: "credkeep generic password",
	})
	if err != nil {
		return newStatusError(op, ringStatus(err), err)
	}
	return nil
}

func (r *RingStore) Find(d Descriptor) (Item, error) {
	if err := validate("find", d); err != nil {
		return Item{}, err
	}
	kr, err := r.ring("find", d.Service)
	if err != nil {
		return Item{}, err
	}
	it, err := kr.Get(d.Account)
	if err != nil {
		return Item{}, newStatusError("find", ringStatus(err), err)
	}
	return itemFor(d, it.Key, it.Label, it.Data), nil
}

func (r *RingStore) Remove(d Descriptor) error {
	if err := validate("remove", d); err != nil {
		return err
	}
	kr, err := r.ring("remove", d.Service)
	if err != nil {
		return err
	}
	if err := kr.Remove(d.Account); err != nil {
		return newStatusError("remove", ringStatus(err), err)
	}
	return nil
}

func ringStatus(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case stderrors.Is(err, keyring.ErrKeyNotFound), os.IsNotExist(err):
		return StatusItemNotFound
	case stderrors.Is(err, keyring.ErrNoAvailImpl):
		return StatusNotAvailable
	default:
		return StatusIO
	}
}

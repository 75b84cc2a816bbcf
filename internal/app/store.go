package app

import (
	"log/slog"

	"github.com/zx06/credkeep/internal/config"
	"github.com/zx06/credkeep/internal/credstore"
	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/keychain"
)

type StoreOptions struct {
	Backend config.Backend
	Service string
	Logger  *slog.Logger
}

// OpenStore 按配置选择后端并返回绑定 service 的 CredentialStore。
func OpenStore(opts StoreOptions) (*credstore.Store, *errors.XError) {
	if opts.Service == "" {
		return nil, errors.New(errors.CodeInternal, "service identifier is empty", nil)
	}
	backend, xe := keychain.Open(keychain.OpenOptions{
		Type: opts.Backend.Type,
		Ring: keychain.RingOptions{
			Allowed:      opts.Backend.Ring.Allowed,
			FileDir:      opts.Backend.Ring.FileDir,
			KeychainName: opts.Backend.Ring.KeychainName,
			PassDir:      opts.Backend.Ring.PassDir,
		},
	})
	if xe != nil {
		return nil, xe
	}
	if opts.Logger != nil {
		opts.Logger.Debug("credential backend opened", "backend", opts.Backend.Type, "service", opts.Service)
	}
	return credstore.New(backend, opts.Service, credstore.WithLogger(opts.Logger)), nil
}

package config

import "github.com/zx06/credkeep/internal/errors"

// Resolve 合并 format / log_level / backend：CLI > ENV > Config > 默认值。
func Resolve(opts Options) (Resolved, *errors.XError) {
	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	backend := cfg.Backend
	backend.Type = pick(opts.CLIBackendSet, opts.CLIBackend, opts.EnvBackend, cfg.Backend.Type, "keyring")

	return Resolved{
		ConfigPath: cfgPath,
		Format:     pick(opts.CLIFormatSet, opts.CLIFormat, opts.EnvFormat, cfg.Format, "auto"),
		LogLevel:   pick(opts.CLILogLevelSet, opts.CLILogLevel, opts.EnvLogLevel, cfg.LogLevel, "info"),
		Backend:    backend,
		File:       cfg,
	}, nil
}

// pick 按 CLI（显式设置时）> ENV > Config > def 取值。
func pick(cliSet bool, cli, env, file, def string) string {
	if cliSet {
		return cli
	}
	if env != "" {
		return env
	}
	if file != "" {
		return file
	}
	return def
}

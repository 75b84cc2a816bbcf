package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zx06/credkeep/internal/app"
	"github.com/zx06/credkeep/internal/config"
	"github.com/zx06/credkeep/internal/credstore"
	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/log"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// service is the keychain service every credential is stored under.
	service = "dev.credkeep"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr   string
	ConfigStr   string
	LogLevelStr string
	BackendStr  string
	Resolved    config.Resolved
	Logger      *slog.Logger
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// openStore builds the credential store for the resolved config; replaced in tests.
var openStore = func() (*credstore.Store, *errors.XError) {
	return app.OpenStore(app.StoreOptions{
		Backend: GlobalConfig.Resolved.Backend,
		Service: service,
		Logger:  GlobalConfig.Logger,
	})
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "credkeep",
		Short:         "Save, retrieve and delete passwords in the platform credential store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI > ENV > Config
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:     GlobalConfig.ConfigStr,
				CLIFormat:      GlobalConfig.FormatStr,
				CLIFormatSet:   cmd.Flags().Changed("format"),
				CLILogLevel:    GlobalConfig.LogLevelStr,
				CLILogLevelSet: cmd.Flags().Changed("log-level"),
				CLIBackend:     GlobalConfig.BackendStr,
				CLIBackendSet:  cmd.Flags().Changed("backend"),
				EnvFormat:      os.Getenv("CREDKEEP_FORMAT"),
				EnvLogLevel:    os.Getenv("CREDKEEP_LOG_LEVEL"),
				EnvBackend:     os.Getenv("CREDKEEP_BACKEND"),
			})
			if xe != nil {
				return xe
			}
			level, xe := log.ParseLevel(r.LogLevel)
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.LogLevelStr = r.LogLevel
			GlobalConfig.BackendStr = r.Backend.Type
			GlobalConfig.Logger = log.New(os.Stderr, level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./credkeep.yaml or $HOME/.config/credkeep/credkeep.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")
	root.PersistentFlags().StringVar(&GlobalConfig.LogLevelStr, "log-level", "info", "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&GlobalConfig.BackendStr, "backend", "keyring", "Credential backend: keyring|ring|memory")

	return root
}

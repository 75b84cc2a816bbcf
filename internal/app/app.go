package app

import (
	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/keychain"
	"github.com/zx06/credkeep/internal/output"
	"github.com/zx06/credkeep/internal/spec"
)

type App struct {
	Version string
	Commit  string
	Date    string
	Service string
}

func New(version, commit, date, service string) App {
	return App{Version: version, Commit: commit, Date: date, Service: service}
}

func (a App) BuildSpec() spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./credkeep.yaml or $HOME/.config/credkeep/credkeep.yaml"},
		{Name: "format", Shorthand: "f", Env: "CREDKEEP_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
		{Name: "log-level", Env: "CREDKEEP_LOG_LEVEL", Default: "info", Description: "Log level: debug|info|warn|error"},
		{Name: "backend", Env: "CREDKEEP_BACKEND", Default: keychain.BackendKeyring, Description: "Credential backend: keyring|ring|memory"},
	}
	withGlobal := func(extra ...spec.FlagSpec) []spec.FlagSpec {
		flags := make([]spec.FlagSpec, 0, len(globalFlags)+len(extra))
		flags = append(flags, globalFlags...)
		return append(flags, extra...)
	}
	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Service:       a.Service,
		Commands: []spec.CommandSpec{
			{
				Name:        "save",
				Description: "Save a password for an account (create or overwrite)",
				Flags: withGlobal(
					spec.FlagSpec{Name: "stdin", Default: "false", Description: "Read the secret from stdin (all input, one trailing newline stripped) instead of prompting"},
				),
			},
			{
				Name:        "get",
				Description: "Retrieve the password for an account",
				Flags: withGlobal(
					spec.FlagSpec{Name: "raw", Default: "false", Description: "Print only the secret, without the envelope"},
				),
			},
			{
				Name:        "delete",
				Description: "Delete the password for an account (absent is not an error)",
				Flags:       withGlobal(),
			},
			{
				Name:        "status",
				Description: "Describe a platform status code",
				Flags:       withGlobal(),
			},
			{
				Name:        "spec",
				Description: "Export tool spec for AI/agents",
				Flags:       withGlobal(),
			},
			{
				Name:        "version",
				Description: "Print version information",
				Flags:       withGlobal(),
			},
			{
				Name:        "mcp server",
				Description: "Start MCP server for AI assistant integration",
				Flags: withGlobal(
					spec.FlagSpec{Name: "transport", Env: "CREDKEEP_MCP_TRANSPORT", Default: "stdio", Description: "MCP transport: stdio|streamable_http"},
					spec.FlagSpec{Name: "http-addr", Env: "CREDKEEP_MCP_HTTP_ADDR", Default: "127.0.0.1:8788", Description: "Streamable HTTP listen address"},
					spec.FlagSpec{Name: "http-auth-token", Env: "CREDKEEP_MCP_HTTP_AUTH_TOKEN", Default: "", Description: "Streamable HTTP auth token"},
				),
			},
			{
				Name:        "docker-helper",
				Description: "Docker credential helper protocol (store|get|erase|list|version)",
				Flags:       withGlobal(),
			},
		},
		ErrorCodes: errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Service string `json:"service" yaml:"service"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date, Service: a.Service}
}

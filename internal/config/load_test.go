package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_NoConfig(t *testing.T) {
	tmp := t.TempDir()
	cfg, path, xe := LoadConfig(Options{WorkDir: tmp, HomeDir: tmp})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if path != "" {
		t.Fatalf("expected empty path, got %q", path)
	}
	if cfg.Backend.Type != "" || cfg.Format != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig_ExplicitConfigMissing(t *testing.T) {
	tmp := t.TempDir()
	_, _, xe := LoadConfig(Options{WorkDir: tmp, HomeDir: tmp, ConfigPath: "no_such.yaml"})
	if xe == nil {
		t.Fatal("expected error")
	}
	if xe.Code != "CREDKEEP_CFG_NOT_FOUND" {
		t.Fatalf("expected CREDKEEP_CFG_NOT_FOUND, got %s", xe.Code)
	}
}

func TestLoadConfig_WorkDirConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "credkeep.yaml")
	writeConfig(t, path, `format: yaml
log_level: debug
backend:
  type: ring
  ring:
    allowed: [keychain, file]
    file_dir: ~/.config/credkeep/ring
    keychain_name: login
mcp:
  transport: streamable_http
  allow_reveal: true
  http:
    addr: 127.0.0.1:9000
    auth_token: keyring:mcp/token
`)

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, HomeDir: tmp})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if file.Format != "yaml" || file.LogLevel != "debug" {
		t.Errorf("format/log_level = %q/%q", file.Format, file.LogLevel)
	}
	if file.Backend.Type != "ring" {
		t.Errorf("expected backend.type=ring, got %q", file.Backend.Type)
	}
	if len(file.Backend.Ring.Allowed) != 2 || file.Backend.Ring.Allowed[1] != "file" {
		t.Errorf("unexpected ring.allowed %v", file.Backend.Ring.Allowed)
	}
	if file.Backend.Ring.KeychainName != "login" {
		t.Errorf("expected keychain_name=login, got %q", file.Backend.Ring.KeychainName)
	}
	if file.MCP.Transport != "streamable_http" || !file.MCP.AllowReveal {
		t.Errorf("unexpected mcp config %+v", file.MCP)
	}
	if file.MCP.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("expected http addr, got %q", file.MCP.HTTP.Addr)
	}
	if file.MCP.HTTP.AuthToken != "keyring:mcp/token" {
		t.Errorf("expected auth_token=keyring:mcp/token, got %q", file.MCP.HTTP.AuthToken)
	}
}

func TestLoadConfig_HomeDirConfig(t *testing.T) {
	workDir := t.TempDir()
	homeDir := t.TempDir()

	path := filepath.Join(homeDir, ".config", "credkeep", "credkeep.yaml")
	writeConfig(t, path, "backend:\n  type: memory\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: workDir, HomeDir: homeDir})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if file.Backend.Type != "memory" {
		t.Fatalf("expected backend memory, got %q", file.Backend.Type)
	}
}

func TestLoadConfig_WorkDirTakesPrecedence(t *testing.T) {
	workDir := t.TempDir()
	homeDir := t.TempDir()

	writeConfig(t, filepath.Join(workDir, "credkeep.yaml"), "format: json\n")
	writeConfig(t, filepath.Join(homeDir, ".config", "credkeep", "credkeep.yaml"), "format: yaml\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: workDir, HomeDir: homeDir})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != filepath.Join(workDir, "credkeep.yaml") {
		t.Fatalf("expected work dir config, got %q", cfgPath)
	}
	if file.Format != "json" {
		t.Fatalf("expected format from work dir, got %q", file.Format)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "credkeep.yaml"), `invalid: yaml: syntax: [`)

	_, _, xe := LoadConfig(Options{WorkDir: tmp, HomeDir: tmp})
	if xe == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if xe.Code != "CREDKEEP_CFG_INVALID" {
		t.Fatalf("expected CREDKEEP_CFG_INVALID, got %s", xe.Code)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	customPath := filepath.Join(tmp, "custom.yaml")
	writeConfig(t, customPath, "log_level: warn\n")

	file, cfgPath, xe := LoadConfig(Options{ConfigPath: customPath})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != customPath {
		t.Fatalf("expected path %q, got %q", customPath, cfgPath)
	}
	if file.LogLevel != "warn" {
		t.Fatalf("expected log_level=warn, got %q", file.LogLevel)
	}
}

func TestLoadConfig_RelativeExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "conf", "c.yaml"), "format: csv\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, HomeDir: tmp, ConfigPath: "conf/c.yaml"})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != filepath.Join(tmp, "conf", "c.yaml") {
		t.Fatalf("unexpected path %q", cfgPath)
	}
	if file.Format != "csv" {
		t.Fatalf("expected format=csv, got %q", file.Format)
	}
}

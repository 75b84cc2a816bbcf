package config

import (
	"path/filepath"
	"testing"
)

func TestResolve_DefaultPaths_NoConfig(t *testing.T) {
	tmp := t.TempDir()
	got, xe := Resolve(Options{WorkDir: tmp, HomeDir: tmp})
	if xe != nil {
		t.Fatalf("unexpected err: %v", xe)
	}
	if got.ConfigPath != "" {
		t.Fatalf("expected empty config path")
	}
	if got.Format != "auto" {
		t.Fatalf("format=%q want auto", got.Format)
	}
	if got.LogLevel != "info" {
		t.Fatalf("log_level=%q want info", got.LogLevel)
	}
	if got.Backend.Type != "keyring" {
		t.Fatalf("backend=%q want keyring", got.Backend.Type)
	}
}

func TestResolve_ExplicitConfigMissingIsError(t *testing.T) {
	tmp := t.TempDir()
	_, xe := Resolve(Options{WorkDir: tmp, HomeDir: tmp, ConfigPath: "no_such.yaml"})
	if xe == nil {
		t.Fatalf("expected error")
	}
	if xe.Code != "CREDKEEP_CFG_NOT_FOUND" {
		t.Fatalf("code=%s", xe.Code)
	}
}

func TestResolve_Precedence(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "credkeep.yaml"), "format: yaml\nlog_level: warn\nbackend:\n  type: ring\n  ring:\n    file_dir: /tmp/ring\n")

	// Config only
	got, xe := Resolve(Options{WorkDir: tmp, HomeDir: tmp})
	if xe != nil {
		t.Fatal(xe)
	}
	if got.Format != "yaml" || got.LogLevel != "warn" || got.Backend.Type != "ring" {
		t.Fatalf("got %+v", got)
	}
	if got.Backend.Ring.FileDir != "/tmp/ring" {
		t.Fatalf("ring options lost: %+v", got.Backend.Ring)
	}

	// ENV overrides config
	got, xe = Resolve(Options{WorkDir: tmp, HomeDir: tmp, EnvFormat: "json", EnvLogLevel: "debug", EnvBackend: "memory"})
	if xe != nil {
		t.Fatal(xe)
	}
	if got.Format != "json" || got.LogLevel != "debug" || got.Backend.Type != "memory" {
		t.Fatalf("got %+v", got)
	}

	// CLI overrides ENV
	got, xe = Resolve(Options{
		WorkDir: tmp, HomeDir: tmp,
		EnvFormat: "json", EnvLogLevel: "debug", EnvBackend: "memory",
		CLIFormat: "table", CLIFormatSet: true,
		CLILogLevel: "error", CLILogLevelSet: true,
		CLIBackend: "keyring", CLIBackendSet: true,
	})
	if xe != nil {
		t.Fatal(xe)
	}
	if got.Format != "table" || got.LogLevel != "error" || got.Backend.Type != "keyring" {
		t.Fatalf("got %+v", got)
	}

	// CLI value not marked as set is ignored
	got, xe = Resolve(Options{WorkDir: tmp, HomeDir: tmp, CLIFormat: "csv"})
	if xe != nil {
		t.Fatal(xe)
	}
	if got.Format != "yaml" {
		t.Fatalf("format=%q want yaml", got.Format)
	}
}

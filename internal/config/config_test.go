package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"INI", "ADDR", "AXIS_MARGIN", "TRAY", "VERBOSE"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.INI != DefaultINI {
		t.Errorf("Expected ini %q, got %q", DefaultINI, cfg.INI)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Errorf("Expected loopback addr, got %q", cfg.Addr)
	}
	if cfg.AxisMargin != DefaultAxisMargin {
		t.Errorf("Expected axis margin %d, got %d", DefaultAxisMargin, cfg.AxisMargin)
	}
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", FileName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "ini: /games/soh/shipofharkinian.ini\naxis_margin: 4000\n"
	if err := os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.INI != "/games/soh/shipofharkinian.ini" {
		t.Errorf("Expected ini from file, got %q", cfg.INI)
	}
	if cfg.AxisMargin != 4000 {
		t.Errorf("Expected axis margin 4000, got %d", cfg.AxisMargin)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	t.Setenv("SOHCONFIG_ADDR", ":9000")
	t.Setenv("SOHCONFIG_INI", "env.ini")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	AddServeFlags(flags)
	if err := flags.Parse([]string{"--ini=flag.ini"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.INI != "flag.ini" {
		t.Errorf("Expected flag to win, got %q", cfg.INI)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Expected env to win over default, got %q", cfg.Addr)
	}
}

func TestLoad_InvalidMargin(t *testing.T) {
	isolate(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	AddServeFlags(flags)
	if err := flags.Parse([]string{"--axis-margin=0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(flags); err == nil {
		t.Error("Expected error for zero axis margin")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"TOOLATLAS_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TOOLATLAS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Fatalf("LoadDotEnv(\"\") error = %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "TOOLATLAS_DOTENV_A=from-file\nTOOLATLAS_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("TOOLATLAS_DOTENV_A", "from-env")
	t.Setenv("TOOLATLAS_DOTENV_B", "")
	os.Unsetenv("TOOLATLAS_DOTENV_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("TOOLATLAS_DOTENV_A"); got != "from-env" {
		t.Fatalf("TOOLATLAS_DOTENV_A = %q, want %q", got, "from-env")
	}
	if got := os.Getenv("TOOLATLAS_DOTENV_B"); got != "from-file" {
		t.Fatalf("TOOLATLAS_DOTENV_B = %q, want %q", got, "from-file")
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" en, zh ,,zh-TW ")
	want := []string{"en", "zh", "zh-TW"}
	if len(got) != len(want) {
		t.Fatalf("len(SplitList) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

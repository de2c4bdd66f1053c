package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("TT_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("TT_HOME", "/custom/tt")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/tt" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/tt")
		}
		if defaults["log_dir"] != "/custom/tt/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/tt/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("TT_CONFIG_PATH", "")
		t.Setenv("TT_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		if want := filepath.Join(homeDir, ".config", "tt.toml"); defaults["config_path"] != want {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], want)
		}
		wantBase := filepath.Join(homeDir, ".local", "share", "tt")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}
		if want := filepath.Join(wantBase, "log"); defaults["log_dir"] != want {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], want)
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Fatalf("LoadDotEnv() error = %v", err)
		}
	})

	t.Run("sets unset variables only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("TT_TEST_DOTENV_A=from-file\nTT_TEST_DOTENV_B=from-file\n"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("TT_TEST_DOTENV_B", "from-env")
		os.Unsetenv("TT_TEST_DOTENV_A")
		t.Cleanup(func() { os.Unsetenv("TT_TEST_DOTENV_A") })

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("LoadDotEnv() error = %v", err)
		}
		if got := os.Getenv("TT_TEST_DOTENV_A"); got != "from-file" {
			t.Errorf("TT_TEST_DOTENV_A = %q, want from-file", got)
		}
		if got := os.Getenv("TT_TEST_DOTENV_B"); got != "from-env" {
			t.Errorf("TT_TEST_DOTENV_B = %q, want from-env", got)
		}
	})
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := NewConfig("instance-abc", "/srv/tt")
	original.Auth.AdminEmails = []string{"admin@example.com", "support@example.com"}
	original.Storage = StorageConfig{
		Type:      "s3",
		Container: "screenshots",
		S3Bucket:  "tt-screens",
		S3Prefix:  "prod",
		S3Region:  "eu-west-1",
		Encrypt:   true,
	}
	original.Mail = MailConfig{Type: "smtp", From: "tt@example.com", SMTPHost: "smtp.example.com", SMTPPort: 587}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.InstanceID != original.InstanceID {
		t.Errorf("InstanceID = %q, want %q", got.InstanceID, original.InstanceID)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", got.Server.Addr, ":8080")
	}
	if len(got.Auth.AdminEmails) != 2 {
		t.Fatalf("len(Auth.AdminEmails) = %d, want 2", len(got.Auth.AdminEmails))
	}
	if got.Auth.RefreshTokenMinutes != 10080 {
		t.Errorf("Auth.RefreshTokenMinutes = %d, want 10080", got.Auth.RefreshTokenMinutes)
	}
	if got.Storage.Type != "s3" {
		t.Errorf("Storage.Type = %q, want %q", got.Storage.Type, "s3")
	}
	if got.Storage.S3Bucket != "tt-screens" {
		t.Errorf("Storage.S3Bucket = %q, want %q", got.Storage.S3Bucket, "tt-screens")
	}
	if !got.Storage.Encrypt {
		t.Error("Storage.Encrypt = false, want true")
	}
	if got.Mail.SMTPPort != 587 {
		t.Errorf("Mail.SMTPPort = %d, want 587", got.Mail.SMTPPort)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("instance-1", "/data/tt")

	if cfg.LogDir != "/data/tt/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/tt/log")
	}
	if cfg.Database.DataDir != "/data/tt/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/tt/db")
	}
	if cfg.Encryption.PublicKeyPath != "/data/tt/keys/tt.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/tt/keys/tt.pub")
	}
	if cfg.Auth.AccessTokenMinutes != 60 {
		t.Errorf("Auth.AccessTokenMinutes = %d, want 60", cfg.Auth.AccessTokenMinutes)
	}
	if cfg.Auth.ActivationExpiryHours != 48 {
		t.Errorf("Auth.ActivationExpiryHours = %d, want 48", cfg.Auth.ActivationExpiryHours)
	}
	if cfg.Storage.Container != "screenshots" {
		t.Errorf("Storage.Container = %q, want %q", cfg.Storage.Container, "screenshots")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tt.toml")

		if err := Init(path, NewConfig("i1", dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tt.toml")
		cfg := NewConfig("i1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tt.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.InstanceID != "read-test" {
			t.Errorf("InstanceID = %q, want %q", got.InstanceID, "read-test")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/tt.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("TT_JWT_SECRET", "from-env")
	t.Setenv("TT_SERVER_ADDR", "")
	t.Setenv("TT_SMTP_PASSWORD", "mail-secret")

	cfg := NewConfig("i1", "/data/tt")
	cfg.Auth.JWTSecret = "from-file"
	cfg.ApplyEnv()

	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "from-env")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want unchanged %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Mail.SMTPPassword != "mail-secret" {
		t.Errorf("Mail.SMTPPassword = %q, want %q", cfg.Mail.SMTPPassword, "mail-secret")
	}
}

func TestManager_Write_OmitsEnvSecrets(t *testing.T) {
	cfg := NewConfig("i1", "/data/tt")
	cfg.Mail.SMTPPassword = "mail-secret"
	cfg.Storage.S3SecretAccessKey = "s3-secret"

	var buf bytes.Buffer
	if err := (&Manager{}).Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, secret := range []string{"mail-secret", "s3-secret"} {
		if strings.Contains(buf.String(), secret) {
			t.Errorf("written config contains %q", secret)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "jwt_secret"},
		{name: "zero access lifetime", mutate: func(c *Config) { c.Auth.AccessTokenMinutes = 0 }, wantErr: "lifetimes"},
		{name: "zero password length", mutate: func(c *Config) { c.Auth.MinPasswordLength = 0 }, wantErr: "min_password_length"},
		{name: "zero activation expiry", mutate: func(c *Config) { c.Auth.ActivationExpiryHours = 0 }, wantErr: "activation_expiry_hours"},
		{name: "empty container", mutate: func(c *Config) { c.Storage.Container = "" }, wantErr: "container"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Type = "s3" }, wantErr: "s3_bucket"},
		{name: "smtp without host", mutate: func(c *Config) { c.Mail.Type = "smtp" }, wantErr: "smtp_host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("i1", "/data/tt")
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

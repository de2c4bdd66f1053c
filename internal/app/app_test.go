package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tt-go/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig("test-instance", dir)
	cfg.Auth.JWTSecret = "app-test-secret"
	cfg.Auth.AdminEmails = []string{"root@example.com"}
	cfg.Database = config.DatabaseConfig{Type: "memory"}
	cfg.Storage.Type = "memory"
	cfg.Storage.Encrypt = true
	cfg.Encryption.Type = "test"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *TTApp {
	t.Helper()
	a, err := NewTTApp(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("NewTTApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewTTApp_ServesAPI(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestNewTTApp_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = ""
	if _, err := NewTTApp(context.Background(), cfg, "test"); err == nil {
		t.Fatal("NewTTApp() expected error for missing secret")
	}
}

func TestNewTTApp_RequiresMigratedDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = config.DatabaseConfig{Type: "sqlite", DataDir: filepath.Join(cfg.BaseDir, "db")}

	if _, err := NewTTApp(context.Background(), cfg, "test"); err == nil {
		t.Fatal("NewTTApp() expected error for unmigrated database")
	}

	db, err := OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	db.Close()

	newTestApp(t, cfg)
}

func TestTTApp_CreateAdmin(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()

	if _, err := a.CreateAdmin(ctx, "root@example.com", "root-password"); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if _, err := a.CreateAdmin(ctx, "stranger@example.com", "root-password"); err == nil {
		t.Fatal("CreateAdmin() expected error for email not on the allow-list")
	}
	if _, err := a.Service().LoginAdmin(ctx, "root@example.com", "root-password"); err != nil {
		t.Fatalf("LoginAdmin() error = %v", err)
	}
}

func TestTTApp_FetchScreenshot(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()

	shot := []byte("png-bytes")
	if _, err := a.store.Upload(ctx, "screenshots", "1/a.png", bytes.NewReader(shot), int64(len(shot)), "image/png"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	var out bytes.Buffer
	if err := a.FetchScreenshot(ctx, "/1/a.png", "", &out); err != nil {
		t.Fatalf("FetchScreenshot() error = %v", err)
	}
	if !bytes.Equal(out.Bytes(), shot) {
		t.Errorf("FetchScreenshot() = %q, want %q", out.Bytes(), shot)
	}
}

func TestTTApp_BackupDatabase(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "backup.db")

	if err := a.BackupDatabase(ctx, dest); err != nil {
		t.Fatalf("BackupDatabase() error = %v", err)
	}
	err := a.BackupDatabase(ctx, dest)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second BackupDatabase() error = %v, want already exists", err)
	}
}

func TestTTApp_ServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Addr = "127.0.0.1:0"
	a := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
}

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tt-go/internal/api"
	"tt-go/internal/config"
	"tt-go/internal/database"
	"tt-go/internal/database/sqlc"
	"tt-go/internal/encryption"
	"tt-go/internal/mail"
	"tt-go/internal/storage"
	"tt-go/internal/tt"
)

// TTApp is the application layer between the CLI and TTService.
// It constructs all dependencies from config and closes them on Close.
type TTApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	store     tt.ObjectStore
	encryptor tt.Encryptor
	service   *tt.TTService
	logger    tt.Logger
	logFile   *os.File
}

// NewTTApp creates a fully wired TTApp from the given config.
// command names the CLI command being run and tags every log line.
// The caller must call Close when done.
func NewTTApp(ctx context.Context, cfg *config.Config, command string) (*TTApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slogger, logFile, err := newLogger(cfg.LogDir, cfg.InstanceID+"/"+command)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	a := &TTApp{cfg: cfg, logger: logger, logFile: logFile}
	if err := a.open(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *TTApp) open(ctx context.Context) error {
	db, err := database.NewDatabaseFromConfig(a.cfg.Database, a.cfg.InstanceID)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	a.db = db
	if err := db.CheckMigrations(); err != nil {
		return fmt.Errorf("database schema out of date (run `tt db migrate`): %w", err)
	}

	if a.cfg.Storage.Encrypt {
		enc, err := encryption.NewEncryptorFromConfig(a.cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}
		if !enc.IsConfigured() {
			return fmt.Errorf("storage.encrypt is set but no key pair exists (run `tt keys init`)")
		}
		a.encryptor = enc
	}

	store, err := storage.NewStoreFromConfig(ctx, a.cfg.Storage, a.encryptor)
	if err != nil {
		return fmt.Errorf("creating object store: %w", err)
	}
	a.store = store

	mailer, err := mail.NewMailerFromConfig(a.cfg.Mail, a.logger)
	if err != nil {
		return fmt.Errorf("creating mailer: %w", err)
	}

	auth := a.cfg.Auth
	tokens := tt.NewTokenIssuer(
		auth.JWTSecret,
		auth.Issuer,
		time.Duration(auth.AccessTokenMinutes)*time.Minute,
		time.Duration(auth.RefreshTokenMinutes)*time.Minute,
		tt.RealClock{},
		tt.UUIDGenerator{},
	)
	a.service = tt.NewTTService(db, store, mailer, tokens, a.logger, tt.RealClock{}, tt.UUIDGenerator{}, tt.Options{
		AdminEmails:         auth.AdminEmails,
		MinPasswordLength:   auth.MinPasswordLength,
		ActivationTTL:       time.Duration(auth.ActivationExpiryHours) * time.Hour,
		ActivationBaseURL:   auth.ActivationBaseURL,
		ScreenshotContainer: a.cfg.Storage.Container,
		PasswordCost:        bcrypt.DefaultCost,
	})
	return nil
}

// Service returns the wired service.
func (a *TTApp) Service() *tt.TTService {
	return a.service
}

// Handler returns the HTTP router serving the API.
func (a *TTApp) Handler() http.Handler {
	return api.NewRouter(a.service, a.logger, api.Options{MaxUploadBytes: a.cfg.Server.MaxUploadBytes})
}

// NewHTTPServer returns a server for h with the configured timeouts.
func NewHTTPServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
}

// Serve checks the object store and serves the API until ctx is cancelled,
// then drains in-flight requests.
func (a *TTApp) Serve(ctx context.Context) error {
	if err := a.store.ValidateSetup(ctx); err != nil {
		return fmt.Errorf("object store not usable: %w", err)
	}

	srv := NewHTTPServer(a.cfg.Server, a.Handler())
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// CreateAdmin provisions an admin account. The email must be on the
// configured allow-list.
func (a *TTApp) CreateAdmin(ctx context.Context, email, password string) (*sqlc.Admin, error) {
	return a.service.CreateAdmin(ctx, email, password)
}

// BackupDatabase writes a consistent copy of the database to destPath.
func (a *TTApp) BackupDatabase(ctx context.Context, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("backup destination already exists: %s", destPath)
	}
	return a.db.BackupTo(ctx, destPath)
}

// FetchScreenshot writes the stored screenshot at key to w, decrypting it
// with the private key when screenshots are stored encrypted.
func (a *TTApp) FetchScreenshot(ctx context.Context, key, passphrase string, w io.Writer) error {
	key = strings.TrimPrefix(key, "/")
	if a.encryptor == nil {
		return a.store.Download(ctx, a.cfg.Storage.Container, key, w)
	}

	var sealed bytes.Buffer
	if err := a.store.Download(ctx, a.cfg.Storage.Container, key, &sealed); err != nil {
		return err
	}
	dec, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}
	if err := dec.Decrypt(&sealed, w); err != nil {
		return fmt.Errorf("decrypting screenshot: %w", err)
	}
	return nil
}

// Close closes the database and the log file.
func (a *TTApp) Close() error {
	var firstErr error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// OpenDatabase opens the configured database without checking its schema,
// for the migration commands.
func OpenDatabase(cfg *config.Config) (*database.SQLiteDatabase, error) {
	return database.NewDatabaseFromConfig(cfg.Database, cfg.InstanceID)
}

// Encrypted reports whether screenshots are stored encrypted.
func (a *TTApp) Encrypted() bool {
	return a.encryptor != nil
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for tt.
type Config struct {
	InstanceID string           `toml:"instance_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Auth       AuthConfig       `toml:"auth"`
	Storage    StorageConfig    `toml:"storage"`
	Encryption EncryptionConfig `toml:"encryption"`
	Mail       MailConfig       `toml:"mail"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	MaxUploadBytes      int64  `toml:"max_upload_bytes"`
}

// DatabaseConfig represents configuration for the relational store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// AuthConfig holds token and account settings.
type AuthConfig struct {
	// JWTSecret may be left empty in the file and supplied through TT_JWT_SECRET.
	JWTSecret             string   `toml:"jwt_secret,omitempty"`
	Issuer                string   `toml:"issuer"`
	AccessTokenMinutes    int      `toml:"access_token_minutes"`
	RefreshTokenMinutes   int      `toml:"refresh_token_minutes"`
	AdminEmails           []string `toml:"admin_emails"`
	MinPasswordLength     int      `toml:"min_password_length"`
	ActivationExpiryHours int      `toml:"activation_expiry_hours"`
	ActivationBaseURL     string   `toml:"activation_base_url"`
}

// StorageConfig represents configuration for the screenshot object store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type      string `toml:"type"` // "memory", "s3", or "filesystem"
	Container string `toml:"container"`
	Encrypt   bool   `toml:"encrypt"`

	// PublicBaseURL prefixes object keys when building download URLs.
	PublicBaseURL string `toml:"public_base_url,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`

	// Static credentials; when empty the SDK's default chain is used.
	// The secret is only read from TT_S3_SECRET_ACCESS_KEY.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"-"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// EncryptionConfig holds paths to the age key pair used for screenshot encryption.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// MailConfig represents configuration for outgoing activation mail.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type MailConfig struct {
	Type string `toml:"type"` // "log" or "smtp"
	From string `toml:"from,omitempty"`

	// SMTP-specific fields (only used when Type == "smtp").
	// The password is read from TT_SMTP_PASSWORD.
	SMTPHost     string `toml:"smtp_host,omitempty"`
	SMTPPort     int    `toml:"smtp_port,omitempty"`
	SMTPUsername string `toml:"smtp_username,omitempty"`
	SMTPPassword string `toml:"-"`
}

// NewConfig creates a new Config with the provided values and defaults.
func NewConfig(instanceID, baseDir string) *Config {
	return &Config{
		InstanceID: instanceID,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			MaxUploadBytes:      10 << 20,
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Auth: AuthConfig{
			Issuer:                "tt",
			AccessTokenMinutes:    60,
			RefreshTokenMinutes:   7 * 24 * 60,
			MinPasswordLength:     8,
			ActivationExpiryHours: 48,
			ActivationBaseURL:     "http://localhost:8080/api/activation/activate",
		},
		Storage: StorageConfig{
			Type:      "filesystem",
			Container: "screenshots",
			FSRoot:    filepath.Join(baseDir, "objects"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "tt.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "tt.key"),
		},
		Mail: MailConfig{
			Type: "log",
			From: "no-reply@localhost",
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file can carry the signing secret.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides secrets and deployment-specific values from the environment.
// Empty variables leave the file value untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TT_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TT_S3_BUCKET"); v != "" {
		c.Storage.S3Bucket = v
	}
	if v := os.Getenv("TT_S3_ENDPOINT"); v != "" {
		c.Storage.S3Endpoint = v
	}
	if v := os.Getenv("TT_S3_ACCESS_KEY_ID"); v != "" {
		c.Storage.S3AccessKeyID = v
	}
	if v := os.Getenv("TT_S3_SECRET_ACCESS_KEY"); v != "" {
		c.Storage.S3SecretAccessKey = v
	}
	if v := os.Getenv("TT_SMTP_PASSWORD"); v != "" {
		c.Mail.SMTPPassword = v
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is empty (set it in the config file or TT_JWT_SECRET)")
	}
	if c.Auth.AccessTokenMinutes <= 0 || c.Auth.RefreshTokenMinutes <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.Auth.MinPasswordLength <= 0 {
		return fmt.Errorf("auth.min_password_length must be positive")
	}
	if c.Auth.ActivationExpiryHours <= 0 {
		return fmt.Errorf("auth.activation_expiry_hours must be positive")
	}
	if c.Storage.Container == "" {
		return fmt.Errorf("storage.container is empty")
	}
	if c.Storage.Type == "s3" && c.Storage.S3Bucket == "" {
		return fmt.Errorf("storage.s3_bucket is required for s3 storage")
	}
	if c.Mail.Type == "smtp" && c.Mail.SMTPHost == "" {
		return fmt.Errorf("mail.smtp_host is required for smtp mail")
	}
	return nil
}

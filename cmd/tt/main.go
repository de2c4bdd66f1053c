package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tt-go/internal/app"
	"tt-go/internal/config"
	"tt-go/internal/database/migrations"
	"tt-go/internal/encryption"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig reads the config file and applies environment overrides.
func readConfig() (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, defaults["config_path"], nil
}

// newApp reads the config and creates a TTApp. The caller must defer app.Close().
// command identifies the CLI command being run in the log.
func newApp(ctx context.Context, command string) (*app.TTApp, error) {
	cfg, _, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewTTApp(ctx, cfg, command)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// readSecret reads a line from the terminal without echo, or from stdin
// when it is not a terminal.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(prompt), err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(prompt), err)
	}
	return string(b), nil
}

func readNewSecret(prompt string) (string, error) {
	first, err := readSecret(prompt)
	if err != nil {
		return "", err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return first, nil
	}
	second, err := readSecret("Repeat " + strings.ToLower(prompt))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("entries do not match")
	}
	return first, nil
}

var rootCmd = &cobra.Command{
	Use:   "tt",
	Short: "Time tracking server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		return app.LoadDotEnv(envFile)
	},
	SilenceUsage: true,
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, "serve")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Serve(ctx)
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		instanceID := uuid.New().String()
		cfg := config.NewConfig(instanceID, defaults["base_dir"])
		cfg.Auth.JWTSecret = rand.Text()
		if admin, _ := cmd.Flags().GetString("admin-email"); admin != "" {
			cfg.Auth.AdminEmails = []string{strings.ToLower(admin)}
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", instanceID)
		fmt.Printf("Base Dir:    %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := readConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Instance ID:  %s\n", cfg.InstanceID)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Listen:       %s\n", cfg.Server.Addr)
		fmt.Printf("Database:     %s\n", cfg.Database.Type)
		fmt.Printf("Storage:      %s (container %q, encrypted %t)\n", cfg.Storage.Type, cfg.Storage.Container, cfg.Storage.Encrypt)
		fmt.Printf("Mail:         %s\n", cfg.Mail.Type)
		fmt.Printf("Admin emails: %s\n", strings.Join(cfg.Auth.AdminEmails, ", "))
		if err := cfg.Validate(); err != nil {
			fmt.Printf("\nWarning: %v\n", err)
		}
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := readConfig()
		if err != nil {
			return err
		}
		db, err := app.OpenDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		status, err := migrations.ReadStatus(db.DB())
		if err != nil {
			return err
		}
		fmt.Printf("Database at %s\n", status)
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := readConfig()
		if err != nil {
			return err
		}
		db, err := app.OpenDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		status, err := migrations.ReadStatus(db.DB())
		if err != nil {
			return err
		}
		fmt.Printf("Database at %s\n", status)
		if !status.Current() {
			fmt.Println("Run `tt db migrate` to update.")
		}
		return nil
	},
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup DEST",
	Short: "Write a consistent copy of the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "db-backup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.BackupDatabase(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Database copied to %s\n", args[0])
		return nil
	},
}

// admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create EMAIL",
	Short: "Create an admin account for an allow-listed email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "admin-create")
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := readNewSecret("Password")
		if err != nil {
			return err
		}
		admin, err := a.CreateAdmin(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}
		fmt.Printf("Admin #%d created for %s\n", admin.ID, admin.Email)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage screenshot encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the screenshot encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := readConfig()
		if err != nil {
			return err
		}
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return err
		}
		if enc.IsConfigured() {
			return fmt.Errorf("key pair already exists at %s", cfg.Encryption.PublicKeyPath)
		}

		passphrase, err := readNewSecret("Passphrase")
		if err != nil {
			return err
		}
		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}
		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		if !cfg.Storage.Encrypt {
			fmt.Println("Set storage.encrypt = true to encrypt new screenshots.")
		}
		return nil
	},
}

// screenshot command
var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Work with stored screenshots",
}

var screenshotFetchCmd = &cobra.Command{
	Use:   "fetch KEY OUT",
	Short: "Download a screenshot by its object key, decrypting it if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "screenshot-fetch")
		if err != nil {
			return err
		}
		defer a.Close()

		var passphrase string
		if a.Encrypted() {
			if passphrase, err = readSecret("Passphrase"); err != nil {
				return err
			}
		}

		out, err := os.OpenFile(args[1], os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		if err := a.FetchScreenshot(cmd.Context(), args[0], passphrase, out); err != nil {
			out.Close()
			os.Remove(args[1])
			return fmt.Errorf("fetching screenshot: %w", err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Load environment variables from this file if it exists")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("admin-email", "", "Email allowed to hold an admin account")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbBackupCmd)

	adminCmd.AddCommand(adminCreateCmd)
	keysCmd.AddCommand(keysInitCmd)
	screenshotCmd.AddCommand(screenshotFetchCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(screenshotCmd)
}

package tt

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Options holds the account and storage policy the service enforces.
type Options struct {
	// AdminEmails is the allow-list checked before admin credentials.
	AdminEmails       []string
	MinPasswordLength int
	ActivationTTL     time.Duration

	// ActivationBaseURL is joined with the token to build the mailed link.
	ActivationBaseURL   string
	ScreenshotContainer string

	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

// TTService is the orchestration layer behind the HTTP API and the CLI.
// Every method that mutates state does so through one Database call, which
// is one transaction.
type TTService struct {
	database Database
	store    ObjectStore
	mailer   Mailer
	tokens   *TokenIssuer
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	opts     Options
	admins   map[string]bool
}

// NewTTService creates a TTService with the provided dependencies.
func NewTTService(database Database, store ObjectStore, mailer Mailer, tokens *TokenIssuer, logger Logger, clock Clock, idgen IDGenerator, opts Options) *TTService {
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.DefaultCost
	}
	if opts.MinPasswordLength == 0 {
		opts.MinPasswordLength = 8
	}
	if opts.ActivationTTL == 0 {
		opts.ActivationTTL = 48 * time.Hour
	}
	if opts.ScreenshotContainer == "" {
		opts.ScreenshotContainer = "screenshots"
	}
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[normalizeEmail(e)] = true
	}
	return &TTService{
		database: database,
		store:    store,
		mailer:   mailer,
		tokens:   tokens,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		opts:     opts,
		admins:   admins,
	}
}

// now is the service clock in UTC at second precision, the resolution the
// store keeps.
func (s *TTService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *TTService) checkPasswordPolicy(password string) error {
	if len(password) < s.opts.MinPasswordLength {
		return Invalid(fmt.Sprintf("password must be at least %d characters", s.opts.MinPasswordLength))
	}
	return nil
}

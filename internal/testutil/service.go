package testutil

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tt-go/internal/database"
	"tt-go/internal/storage"
	"tt-go/internal/tt"
)

const (
	// AdminEmail is on the allow-list of services built by NewTestService.
	AdminEmail = "admin@example.com"
	// JWTSecret signs the tokens of services built by NewTestService.
	JWTSecret = "test-secret"
	// ActivationBaseURL prefixes mailed activation links.
	ActivationBaseURL = "http://tt.test/api/activation/activate"
)

// Env is a service wired to in-memory collaborators, with the collaborators
// exposed for assertions.
type Env struct {
	Service *tt.TTService
	DB      *database.SQLiteDatabase
	Store   *FailingStore
	Objects *storage.MemoryStore
	Mailer  *RecordingMailer
	Clock   *StubClock
	IDs     *StubIDGenerator
	Tokens  *tt.TokenIssuer
}

// NewTestService builds a TTService over an in-memory database and object
// store. Nothing fails until a FailingStore switch or Mailer.Err is set.
func NewTestService(t *testing.T) *Env {
	t.Helper()

	env := &Env{
		DB:      NewTestDatabase(t),
		Objects: storage.NewMemoryStore(),
		Mailer:  &RecordingMailer{},
		Clock:   FixedClock(),
		IDs:     NewStubIDGenerator(),
	}
	env.Store = &FailingStore{ObjectStore: env.Objects}
	env.Tokens = tt.NewTokenIssuer(JWTSecret, "tt-test", time.Hour, 7*24*time.Hour, env.Clock, env.IDs)
	env.Service = tt.NewTTService(env.DB, env.Store, env.Mailer, env.Tokens, tt.NewNopLogger(), env.Clock, env.IDs, tt.Options{
		AdminEmails:         []string{AdminEmail},
		MinPasswordLength:   8,
		ActivationTTL:       48 * time.Hour,
		ActivationBaseURL:   ActivationBaseURL,
		ScreenshotContainer: "screenshots",
		PasswordCost:        bcrypt.MinCost,
	})
	return env
}

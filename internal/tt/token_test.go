package tt_test

import (
	"testing"
	"time"

	"tt-go/internal/testutil"
	"tt-go/internal/tt"
)

func newIssuer(clock *testutil.StubClock) *tt.TokenIssuer {
	return tt.NewTokenIssuer("secret", "tt-test", time.Hour, 24*time.Hour, clock, testutil.NewStubIDGenerator())
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newIssuer(testutil.FixedClock())

	pair, err := issuer.Issue(tt.Claims{ID: 7, Role: tt.RoleEmployee, Username: "ada", MACAddress: deviceMAC})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	got, err := issuer.Parse(pair.AccessToken, tt.AccessToken)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.ID != 7 || got.Role != tt.RoleEmployee || got.MACAddress != deviceMAC {
		t.Errorf("Parse() = %+v", got)
	}
	if got.Subject != "employee:7" {
		t.Errorf("Subject = %q, want %q", got.Subject, "employee:7")
	}

	if _, err := issuer.Parse(pair.RefreshToken, tt.RefreshToken); err != nil {
		t.Errorf("Parse(refresh) error = %v", err)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	clock := testutil.FixedClock()
	issuer := newIssuer(clock)

	pair, err := issuer.Issue(tt.Claims{ID: 3, Role: tt.RoleEmployer})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	noMAC, err := issuer.Issue(tt.Claims{ID: 4, Role: tt.RoleEmployee})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	other := tt.NewTokenIssuer("other-secret", "tt-test", time.Hour, time.Hour, clock, testutil.NewStubIDGenerator())
	forged, err := other.IssueAccess(tt.Claims{ID: 3, Role: tt.RoleAdmin})
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		use   tt.TokenUse
	}{
		{name: "refresh used as access", token: pair.RefreshToken, use: tt.AccessToken},
		{name: "access used as refresh", token: pair.AccessToken, use: tt.RefreshToken},
		{name: "employee without device", token: noMAC.AccessToken, use: tt.AccessToken},
		{name: "wrong secret", token: forged, use: tt.AccessToken},
		{name: "garbage", token: "not.a.token", use: tt.AccessToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Parse(tc.token, tc.use)
			wantKind(t, err, tt.KindUnauthenticated)
		})
	}

	t.Run("expired", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		_, err := issuer.Parse(pair.AccessToken, tt.AccessToken)
		wantKind(t, err, tt.KindUnauthenticated)
	})
}

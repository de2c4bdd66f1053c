package tt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUse separates short-lived access tokens from refresh tokens.
type TokenUse string

const (
	AccessToken  TokenUse = "access"
	RefreshToken TokenUse = "refresh"
)

// Claims is the identity carried by every token. The role is always under
// the "role" key; employee tokens also carry the bound device fingerprint.
type Claims struct {
	ID         int64    `json:"id"`
	Role       Role     `json:"role"`
	Email      string   `json:"email,omitempty"`
	Username   string   `json:"username,omitempty"`
	MACAddress string   `json:"mac_address,omitempty"`
	Use        TokenUse `json:"use"`
	jwt.RegisteredClaims
}

// Validate is called by the jwt parser after the registered claims pass.
func (c Claims) Validate() error {
	if c.ID <= 0 {
		return errors.New("missing subject id")
	}
	if !c.Role.Valid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	if c.Use != AccessToken && c.Use != RefreshToken {
		return fmt.Errorf("unknown token use %q", c.Use)
	}
	if c.Role == RoleEmployee && c.MACAddress == "" {
		return errors.New("employee token without device fingerprint")
	}
	return nil
}

// TokenPair is what a successful login hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      Clock
	idgen      IDGenerator
}

// NewTokenIssuer creates a TokenIssuer. secret must not be empty.
func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration, clock Clock, idgen IDGenerator) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clock,
		idgen:      idgen,
	}
}

// Issue signs an access and a refresh token for the identity in c.
func (t *TokenIssuer) Issue(c Claims) (TokenPair, error) {
	access, err := t.sign(c, AccessToken, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(c, RefreshToken, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess signs only an access token.
func (t *TokenIssuer) IssueAccess(c Claims) (string, error) {
	return t.sign(c, AccessToken, t.accessTTL)
}

func (t *TokenIssuer) sign(c Claims, use TokenUse, ttl time.Duration) (string, error) {
	now := t.clock.Now()
	c.Use = use
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   fmt.Sprintf("%s:%d", c.Role, c.ID),
		ID:        t.idgen.New(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", use, err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, expiry and claim shape, and checks that
// the token was issued for use.
func (t *TokenIssuer) Parse(token string, use TokenUse) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, Unauthenticated("token has expired")
		}
		return nil, &Error{Kind: KindUnauthenticated, Message: "invalid token", Err: err}
	}
	if claims.Use != use {
		return nil, Unauthenticated(fmt.Sprintf("expected %s token", use))
	}
	return claims, nil
}

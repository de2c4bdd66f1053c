package tt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tt-go/internal/database/sqlc"
)

// Invitation asks an employee to join, optionally onto a project.
type Invitation struct {
	Email     string
	Name      string
	ProjectID *int64
}

// InviteResult reports what an invitation did. The token is returned so the
// inviter can deliver the link by hand when mail is not configured.
type InviteResult struct {
	EmployeeID      int64      `json:"employee_id"`
	AlreadyActive   bool       `json:"already_active"`
	ActivationToken string     `json:"activation_token,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// ActivationInfo describes a usable activation token.
type ActivationInfo struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

var errActivation = Invalid("Invalid or expired activation token")

// Invite invites an employee by email. An already active employee is only
// added to the project; anyone else gets a fresh activation token that
// replaces any earlier one for the same email.
func (s *TTService) Invite(ctx context.Context, employerID int64, inv Invitation) (*InviteResult, error) {
	email := normalizeEmail(inv.Email)
	if !strings.Contains(email, "@") {
		return nil, Invalid("a valid email is required")
	}
	if inv.ProjectID != nil {
		if _, err := s.ownedProject(ctx, employerID, *inv.ProjectID); err != nil {
			return nil, err
		}
	}

	existing, err := s.database.FindEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	if existing != nil && existing.Active {
		if inv.ProjectID != nil {
			if err := s.database.AssignEmployeeToProject(ctx, *inv.ProjectID, existing.ID); err != nil {
				return nil, fmt.Errorf("assigning employee to project: %w", err)
			}
		}
		s.logger.Info("invite for active employee", "employer_id", employerID, "employee_id", existing.ID)
		return &InviteResult{EmployeeID: existing.ID, AlreadyActive: true}, nil
	}

	name := strings.TrimSpace(inv.Name)
	if name == "" && existing != nil {
		name = existing.Name
	}
	res, _, err := s.invitePending(ctx, name, email, inv.ProjectID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// invitePending creates or refreshes a pending employee with a new token and
// mails the link. A mail failure is logged; the invitation stands.
func (s *TTService) invitePending(ctx context.Context, name, email string, projectID *int64) (*InviteResult, *sqlc.Employee, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, nil, Invalid("name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, Invalid("a valid email is required")
	}

	now := s.now()
	expires := now.Add(s.opts.ActivationTTL)
	token := s.idgen.New()

	employee, err := s.database.SavePendingInvite(ctx, PendingInvite{
		Name:      name,
		Email:     email,
		Token:     token,
		ProjectID: projectID,
		CreatedAt: now,
		ExpiresAt: expires,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, nil, Conflict("an employee with this email already exists")
		}
		return nil, nil, fmt.Errorf("saving invitation: %w", err)
	}

	link := strings.TrimRight(s.opts.ActivationBaseURL, "/") + "/" + token
	if err := s.mailer.SendActivation(ctx, ActivationMail{
		To:        email,
		Name:      name,
		Link:      link,
		ExpiresAt: expires,
	}); err != nil {
		s.logger.Error("sending activation mail", "employee_id", employee.ID, "error", err)
	}

	s.logger.Info("employee invited", "employee_id", employee.ID, "expires_at", expires)
	return &InviteResult{EmployeeID: employee.ID, ActivationToken: token, ExpiresAt: &expires}, employee, nil
}

// ValidateActivationToken reports whether token can still be used.
func (s *TTService) ValidateActivationToken(ctx context.Context, token string) (*ActivationInfo, error) {
	row, err := s.usableToken(ctx, token)
	if err != nil {
		return nil, err
	}
	employee, err := s.database.FindEmployeeByID(ctx, row.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	if employee == nil {
		return nil, errActivation
	}
	return &ActivationInfo{Email: row.Email, Name: employee.Name, ExpiresAt: row.ExpiresAt.UTC()}, nil
}

// Activate consumes token and makes its employee active with the chosen
// credentials. A token can be consumed once.
func (s *TTService) Activate(ctx context.Context, token, username, password string) (*sqlc.Employee, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, Invalid("username is required")
	}
	if err := s.checkPasswordPolicy(password); err != nil {
		return nil, err
	}
	if _, err := s.usableToken(ctx, token); err != nil {
		return nil, err
	}

	other, err := s.database.FindEmployeeByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if other != nil {
		return nil, Conflict("username already taken")
	}

	hash, err := hashPassword(password, s.opts.PasswordCost)
	if err != nil {
		return nil, err
	}

	employee, err := s.database.ActivateEmployee(ctx, Activation{
		Token:        token,
		Username:     username,
		PasswordHash: hash,
		Now:          s.now(),
	})
	switch {
	case errors.Is(err, ErrTokenUnusable):
		return nil, errActivation
	case errors.Is(err, ErrDuplicate):
		return nil, Conflict("username already taken")
	case err != nil:
		return nil, fmt.Errorf("activating employee: %w", err)
	}

	s.logger.Info("employee activated", "employee_id", employee.ID)
	return employee, nil
}

func (s *TTService) usableToken(ctx context.Context, token string) (*sqlc.ActivationToken, error) {
	if token == "" {
		return nil, errActivation
	}
	row, err := s.database.FindActivationToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("finding activation token: %w", err)
	}
	if row == nil || row.Used || !s.now().Before(row.ExpiresAt) {
		return nil, errActivation
	}
	return row, nil
}

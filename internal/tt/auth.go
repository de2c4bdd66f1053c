package tt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tt-go/internal/database/sqlc"
)

// Session is returned by every login and by token refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserType     Role   `json:"user_type"`
	UserID       int64  `json:"user_id"`
}

// EmployerRegistration is the sign-up form of an employer account.
type EmployerRegistration struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Password    string
}

// EmployeeRegistration is the self sign-up form of an employee account.
type EmployeeRegistration struct {
	Name     string
	Email    string
	Username string
	Password string
}

// RegisterEmployer creates an active employer account.
func (s *TTService) RegisterEmployer(ctx context.Context, reg EmployerRegistration) (*sqlc.Employer, error) {
	email := normalizeEmail(reg.Email)
	if strings.TrimSpace(reg.CompanyName) == "" {
		return nil, Invalid("company_name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, Invalid("a valid email is required")
	}
	if err := s.checkPasswordPolicy(reg.Password); err != nil {
		return nil, err
	}

	existing, err := s.database.FindEmployerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking employer email: %w", err)
	}
	if existing != nil {
		return nil, Conflict("an employer with this email already exists")
	}

	hash, err := hashPassword(reg.Password, s.opts.PasswordCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	employer, err := s.database.CreateEmployer(ctx, sqlc.CreateEmployerParams{
		CompanyName:  strings.TrimSpace(reg.CompanyName),
		ContactName:  nullString(reg.ContactName),
		Email:        email,
		Phone:        nullString(reg.Phone),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, Conflict("an employer with this email already exists")
		}
		return nil, fmt.Errorf("creating employer: %w", err)
	}

	s.logger.Info("employer registered", "employer_id", employer.ID)
	return employer, nil
}

// RegisterEmployee creates an active employee account with credentials.
func (s *TTService) RegisterEmployee(ctx context.Context, reg EmployeeRegistration) (*sqlc.Employee, error) {
	email := normalizeEmail(reg.Email)
	username := strings.TrimSpace(reg.Username)
	if strings.TrimSpace(reg.Name) == "" {
		return nil, Invalid("name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, Invalid("a valid email is required")
	}
	if username == "" {
		return nil, Invalid("username is required")
	}
	if err := s.checkPasswordPolicy(reg.Password); err != nil {
		return nil, err
	}

	if err := s.ensureEmployeeUnique(ctx, email, username); err != nil {
		return nil, err
	}

	hash, err := hashPassword(reg.Password, s.opts.PasswordCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	employee, err := s.database.CreateEmployee(ctx, sqlc.CreateEmployeeParams{
		Name:         strings.TrimSpace(reg.Name),
		Email:        email,
		Username:     nullString(username),
		PasswordHash: nullString(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, Conflict("email or username already registered")
		}
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	s.logger.Info("employee registered", "employee_id", employee.ID)
	return employee, nil
}

func (s *TTService) ensureEmployeeUnique(ctx context.Context, email, username string) error {
	byEmail, err := s.database.FindEmployeeByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("checking employee email: %w", err)
	}
	if byEmail != nil {
		return Conflict("an employee with this email already exists")
	}
	if username == "" {
		return nil
	}
	byUsername, err := s.database.FindEmployeeByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if byUsername != nil {
		return Conflict("username already taken")
	}
	return nil
}

// LoginEmployee checks credentials, binds the session to the device
// fingerprint and issues tokens carrying it.
func (s *TTService) LoginEmployee(ctx context.Context, username, password, macAddress string) (*Session, error) {
	username = strings.TrimSpace(username)
	macAddress = strings.TrimSpace(macAddress)
	if username == "" || password == "" {
		return nil, Invalid("username and password are required")
	}
	if macAddress == "" {
		return nil, Invalid("mac_address is required")
	}

	employee, err := s.database.FindEmployeeByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	if employee == nil || !checkPassword(employee.PasswordHash.String, password) {
		return nil, Unauthenticated("invalid username or password")
	}
	if !employee.Active {
		return nil, Forbidden("your account is deactivated")
	}

	if err := s.database.SetEmployeeMacAddress(ctx, employee.ID, macAddress, s.now()); err != nil {
		return nil, fmt.Errorf("binding device: %w", err)
	}

	s.logger.Info("employee logged in", "employee_id", employee.ID, "mac_address", macAddress)
	return s.issue(Claims{
		ID:         employee.ID,
		Role:       RoleEmployee,
		Email:      employee.Email,
		Username:   employee.Username.String,
		MACAddress: macAddress,
	})
}

// LoginEmployer checks employer credentials and issues tokens.
func (s *TTService) LoginEmployer(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, Invalid("email and password are required")
	}

	employer, err := s.database.FindEmployerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("finding employer: %w", err)
	}
	if employer == nil || !checkPassword(employer.PasswordHash, password) {
		return nil, Unauthenticated("invalid email or password")
	}
	if !employer.Active {
		return nil, Forbidden("your account is deactivated")
	}

	s.logger.Info("employer logged in", "employer_id", employer.ID)
	return s.issue(Claims{ID: employer.ID, Role: RoleEmployer, Email: employer.Email})
}

// LoginAdmin rejects emails outside the allow-list before looking at
// credentials.
func (s *TTService) LoginAdmin(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, Invalid("email and password are required")
	}
	if !s.admins[email] {
		return nil, Forbidden("access denied: not an authorized admin email")
	}

	admin, err := s.database.FindAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("finding admin: %w", err)
	}
	if admin == nil || !checkPassword(admin.PasswordHash, password) {
		return nil, Unauthenticated("invalid email or password")
	}

	s.logger.Info("admin logged in", "admin_id", admin.ID)
	return s.issue(Claims{ID: admin.ID, Role: RoleAdmin, Email: admin.Email})
}

// Refresh exchanges a refresh token for a new access token with the same
// identity. Credentials are not checked again.
func (s *TTService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.Parse(refreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}
	access, err := s.tokens.IssueAccess(Claims{
		ID:         claims.ID,
		Role:       claims.Role,
		Email:      claims.Email,
		Username:   claims.Username,
		MACAddress: claims.MACAddress,
	})
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: access, UserType: claims.Role, UserID: claims.ID}, nil
}

// Authenticate verifies an access token.
func (s *TTService) Authenticate(token string) (*Claims, error) {
	return s.tokens.Parse(token, AccessToken)
}

// CreateAdmin adds an admin account. The email must be on the allow-list.
func (s *TTService) CreateAdmin(ctx context.Context, email, password string) (*sqlc.Admin, error) {
	email = normalizeEmail(email)
	if !s.admins[email] {
		return nil, Invalid(fmt.Sprintf("%s is not in auth.admin_emails", email))
	}
	if err := s.checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	existing, err := s.database.FindAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking admin email: %w", err)
	}
	if existing != nil {
		return nil, Conflict("admin already exists")
	}

	hash, err := hashPassword(password, s.opts.PasswordCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	admin, err := s.database.CreateAdmin(ctx, sqlc.CreateAdminParams{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	s.logger.Info("admin created", "admin_id", admin.ID)
	return admin, nil
}

func (s *TTService) issue(c Claims) (*Session, error) {
	pair, err := s.tokens.Issue(c)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserType:     c.Role,
		UserID:       c.ID,
	}, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}

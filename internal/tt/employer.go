package tt

import (
	"context"
	"fmt"
	"strings"

	"tt-go/internal/database/sqlc"
)

// EmployerProfileUpdate holds the editable profile fields. Nil leaves a
// field unchanged; an empty string clears it.
type EmployerProfileUpdate struct {
	CompanyName     *string
	ContactName     *string
	Phone           *string
	Address         *string
	Website         *string
	ProfileImageURL *string
}

// GetEmployer returns the employer or a not-found error.
func (s *TTService) GetEmployer(ctx context.Context, employerID int64) (*sqlc.Employer, error) {
	employer, err := s.database.FindEmployerByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("finding employer: %w", err)
	}
	if employer == nil {
		return nil, NotFound("employer not found")
	}
	return employer, nil
}

// UpdateEmployerProfile applies the non-nil fields of u.
func (s *TTService) UpdateEmployerProfile(ctx context.Context, employerID int64, u EmployerProfileUpdate) (*sqlc.Employer, error) {
	employer, err := s.GetEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateEmployerProfileParams{
		CompanyName:     employer.CompanyName,
		ContactName:     employer.ContactName,
		Phone:           employer.Phone,
		Address:         employer.Address,
		Website:         employer.Website,
		ProfileImageUrl: employer.ProfileImageUrl,
		UpdatedAt:       s.now(),
		ID:              employer.ID,
	}
	if u.CompanyName != nil {
		name := strings.TrimSpace(*u.CompanyName)
		if name == "" {
			return nil, Invalid("company_name cannot be empty")
		}
		params.CompanyName = name
	}
	if u.ContactName != nil {
		params.ContactName = nullString(*u.ContactName)
	}
	if u.Phone != nil {
		params.Phone = nullString(*u.Phone)
	}
	if u.Address != nil {
		params.Address = nullString(*u.Address)
	}
	if u.Website != nil {
		params.Website = nullString(*u.Website)
	}
	if u.ProfileImageURL != nil {
		params.ProfileImageUrl = nullString(*u.ProfileImageURL)
	}

	updated, err := s.database.UpdateEmployerProfile(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating employer profile: %w", err)
	}
	return updated, nil
}

package tt

import (
	"context"
	"fmt"
	"strings"
)

// Authorize succeeds iff the caller's role is one of allowed. Admin gets no
// implicit access; routes that admit admins list RoleAdmin.
func Authorize(c *Claims, allowed ...Role) error {
	if c == nil {
		return Unauthenticated("authentication required")
	}
	for _, r := range allowed {
		if c.Role == r {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return Forbidden(fmt.Sprintf("Access denied. This endpoint requires one of these roles: %s", strings.Join(names, ", ")))
}

// CheckDevice compares an employee token's fingerprint with the one stored
// at the employee's most recent login. Other roles pass.
func (s *TTService) CheckDevice(ctx context.Context, c *Claims) error {
	if c == nil {
		return Unauthenticated("authentication required")
	}
	if c.Role != RoleEmployee {
		return nil
	}

	employee, err := s.database.FindEmployeeByID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("finding employee: %w", err)
	}
	if employee == nil || !employee.LatestMacAddress.Valid || employee.LatestMacAddress.String == "" {
		return ReLogin()
	}
	if c.MACAddress == "" || c.MACAddress != employee.LatestMacAddress.String {
		s.logger.Warn("device mismatch", "employee_id", c.ID, "token_mac", c.MACAddress)
		return ReLogin()
	}
	return nil
}

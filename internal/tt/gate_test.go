package tt_test

import (
	"context"
	"testing"

	"tt-go/internal/tt"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role    tt.Role
		allowed []tt.Role
		wantErr bool
	}{
		{role: tt.RoleAdmin, allowed: []tt.Role{tt.RoleAdmin}},
		{role: tt.RoleAdmin, allowed: []tt.Role{tt.RoleEmployer}, wantErr: true},
		{role: tt.RoleAdmin, allowed: []tt.Role{tt.RoleEmployee}, wantErr: true},
		{role: tt.RoleEmployer, allowed: []tt.Role{tt.RoleAdmin, tt.RoleEmployer}},
		{role: tt.RoleEmployer, allowed: []tt.Role{tt.RoleEmployee}, wantErr: true},
		{role: tt.RoleEmployee, allowed: []tt.Role{tt.RoleEmployee}},
		{role: tt.RoleEmployee, allowed: []tt.Role{tt.RoleAdmin, tt.RoleEmployer}, wantErr: true},
		{role: tt.RoleEmployee, allowed: nil, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			err := tt.Authorize(&tt.Claims{ID: 1, Role: tc.role}, tc.allowed...)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Authorize(%s, %v) error = %v, wantErr %v", tc.role, tc.allowed, err, tc.wantErr)
			}
			if err != nil {
				wantKind(t, err, tt.KindForbidden)
			}
		})
	}

	t.Run("no claims", func(t *testing.T) {
		wantKind(t, tt.Authorize(nil, tt.RoleAdmin), tt.KindUnauthenticated)
	})
}

func TestCheckDevice(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	if err := w.env.Service.CheckDevice(ctx, w.employee); err != nil {
		t.Fatalf("CheckDevice() error = %v", err)
	}
	if err := w.env.Service.CheckDevice(ctx, w.employer); err != nil {
		t.Errorf("CheckDevice(employer) error = %v", err)
	}

	t.Run("tampered fingerprint", func(t *testing.T) {
		c := *w.employee
		c.MACAddress = "ff:ff:ff:ff:ff:ff"
		wantReLogin(t, w.env.Service.CheckDevice(ctx, &c))
	})

	t.Run("login from another device", func(t *testing.T) {
		if _, err := w.env.Service.LoginEmployee(ctx, "ada", employeePassword, "aa:bb:cc:dd:ee:02"); err != nil {
			t.Fatalf("LoginEmployee() error = %v", err)
		}
		wantReLogin(t, w.env.Service.CheckDevice(ctx, w.employee))
	})

	t.Run("unknown employee", func(t *testing.T) {
		c := *w.employee
		c.ID = 999
		wantReLogin(t, w.env.Service.CheckDevice(ctx, &c))
	})
}

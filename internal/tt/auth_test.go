package tt_test

import (
	"context"
	"testing"

	"tt-go/internal/testutil"
	"tt-go/internal/tt"
)

func TestLoginEmployee(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	if w.employee.Role != tt.RoleEmployee {
		t.Errorf("Role = %q, want %q", w.employee.Role, tt.RoleEmployee)
	}
	if w.employee.MACAddress != deviceMAC {
		t.Errorf("MACAddress = %q, want %q", w.employee.MACAddress, deviceMAC)
	}
	stored, err := w.env.DB.FindEmployeeByID(ctx, w.employee.ID)
	if err != nil {
		t.Fatalf("FindEmployeeByID() error = %v", err)
	}
	if stored.LatestMacAddress.String != deviceMAC {
		t.Errorf("LatestMacAddress = %q, want %q", stored.LatestMacAddress.String, deviceMAC)
	}

	tests := []struct {
		name     string
		username string
		password string
		mac      string
		want     tt.Kind
	}{
		{name: "wrong password", username: "ada", password: "nope-nope", mac: deviceMAC, want: tt.KindUnauthenticated},
		{name: "unknown user", username: "bob", password: employeePassword, mac: deviceMAC, want: tt.KindUnauthenticated},
		{name: "missing mac", username: "ada", password: employeePassword, want: tt.KindInvalid},
		{name: "missing password", username: "ada", mac: deviceMAC, want: tt.KindInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.env.Service.LoginEmployee(ctx, tc.username, tc.password, tc.mac)
			wantKind(t, err, tc.want)
		})
	}

	t.Run("deactivated", func(t *testing.T) {
		inactive := false
		if _, err := w.env.Service.UpdateEmployee(ctx, w.employee.ID, tt.EmployeeUpdate{Active: &inactive}); err != nil {
			t.Fatalf("UpdateEmployee() error = %v", err)
		}
		_, err := w.env.Service.LoginEmployee(ctx, "ada", employeePassword, deviceMAC)
		wantKind(t, err, tt.KindForbidden)
	})
}

func TestRegister_Duplicates(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	_, err := w.env.Service.RegisterEmployer(ctx, tt.EmployerRegistration{
		CompanyName: "Other", Email: " BOSS@acme.test ", Password: employerPassword,
	})
	wantKind(t, err, tt.KindConflict)

	_, err = w.env.Service.RegisterEmployee(ctx, tt.EmployeeRegistration{
		Name: "Imposter", Email: "other@example.com", Username: "ada", Password: employeePassword,
	})
	wantKind(t, err, tt.KindConflict)

	_, err = w.env.Service.RegisterEmployee(ctx, tt.EmployeeRegistration{
		Name: "Short", Email: "short@example.com", Username: "short", Password: "abc",
	})
	wantKind(t, err, tt.KindInvalid)
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	admin := w.admin(t)
	if admin.Role != tt.RoleAdmin {
		t.Errorf("Role = %q, want admin", admin.Role)
	}

	_, err := w.env.Service.LoginAdmin(ctx, "boss@acme.test", employerPassword)
	wantKind(t, err, tt.KindForbidden)

	_, err = w.env.Service.LoginAdmin(ctx, testutil.AdminEmail, "wrong-password")
	wantKind(t, err, tt.KindUnauthenticated)

	_, err = w.env.Service.CreateAdmin(ctx, "boss@acme.test", adminPassword)
	wantKind(t, err, tt.KindInvalid)

	_, err = w.env.Service.CreateAdmin(ctx, testutil.AdminEmail, adminPassword)
	wantKind(t, err, tt.KindConflict)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	session, err := w.env.Service.LoginEmployee(ctx, "ada", employeePassword, deviceMAC)
	if err != nil {
		t.Fatalf("LoginEmployee() error = %v", err)
	}
	refreshed, err := w.env.Service.Refresh(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.RefreshToken != "" {
		t.Error("Refresh() returned a refresh token")
	}
	claims, err := w.env.Service.Authenticate(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if claims.ID != w.employee.ID || claims.Role != tt.RoleEmployee || claims.MACAddress != deviceMAC {
		t.Errorf("refreshed claims = %+v", claims)
	}

	_, err = w.env.Service.Refresh(ctx, session.AccessToken)
	wantKind(t, err, tt.KindUnauthenticated)
}

package user

import (
	"testing"
	"time"
)

func TestRoleIsValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "admin", role: RoleAdmin, want: true},
		{name: "exec", role: RoleExec, want: true},
		{name: "empty", role: Role(""), want: false},
		{name: "lowercase", role: Role("admin"), want: false},
		{name: "unknown", role: Role("SUPERUSER"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestPrincipalIsAdmin(t *testing.T) {
	if !(Principal{ID: "a", Role: RoleAdmin}).IsAdmin() {
		t.Error("admin principal should be admin")
	}
	if (Principal{ID: "e", Role: RoleExec}).IsAdmin() {
		t.Error("exec principal should not be admin")
	}
}

func TestInviteUsable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		invite Invite
		want   bool
	}{
		{name: "fresh", invite: Invite{ExpiresAt: now.Add(time.Hour)}, want: true},
		{name: "expired", invite: Invite{ExpiresAt: now.Add(-time.Minute)}, want: false},
		{name: "already used", invite: Invite{ExpiresAt: now.Add(time.Hour), Used: true}, want: false},
		{name: "used and expired", invite: Invite{ExpiresAt: now.Add(-time.Hour), Used: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.invite.Usable(now); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

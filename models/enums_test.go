package models

import "testing"

func TestUserRoleValid(t *testing.T) {
	cases := []struct {
		role UserRole
		want bool
	}{
		{UserRoleUser, true},
		{UserRoleAdmin, true},
		{UserRole(""), false},
		{UserRole("partner"), false},
		{UserRole("ADMIN"), false},
	}
	for _, tc := range cases {
		if got := tc.role.Valid(); got != tc.want {
			t.Errorf("UserRole(%q).Valid() = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestVerificationStatusValid(t *testing.T) {
	cases := []struct {
		status VerificationStatus
		want   bool
	}{
		{VerificationStatusPending, true},
		{VerificationStatusApproved, true},
		{VerificationStatusRejected, true},
		{VerificationStatus(""), false},
		{VerificationStatus("verified"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Errorf("VerificationStatus(%q).Valid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleCustomer.IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Admin").IsValid())
}

func TestPolicyAllows(t *testing.T) {
	tests := []struct {
		name   string
		policy RolePolicy
		role   Role
		want   bool
	}{
		{"admin policy admits admin", PolicyAdmin, RoleAdmin, true},
		{"admin policy rejects user", PolicyAdmin, RoleUser, false},
		{"admin policy rejects customer", PolicyAdmin, RoleCustomer, false},
		{"user policy admits user", PolicyUser, RoleUser, true},
		{"user policy rejects admin", PolicyUser, RoleAdmin, false},
		{"customer policy admits customer", PolicyCustomer, RoleCustomer, true},
		{"customer policy admits admin", PolicyCustomer, RoleAdmin, true},
		{"customer policy rejects user", PolicyCustomer, RoleUser, false},
		{"both admits admin", PolicyBoth, RoleAdmin, true},
		{"both admits user", PolicyBoth, RoleUser, true},
		{"both admits customer", PolicyBoth, RoleCustomer, true},
		{"unknown role rejected by both", PolicyBoth, Role("root"), false},
		{"unknown role rejected by admin", PolicyAdmin, Role("root"), false},
		{"empty role rejected", PolicyCustomer, Role(""), false},
		{"unknown policy rejects everything", RolePolicy("owner"), RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyAllows(tt.policy, tt.role))
		})
	}
}

package models

// Role represents the role carried by an access token
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleCustomer Role = "customer"
)

// RolePolicy represents the role requirement attached to a route group
type RolePolicy string

const (
	PolicyAdmin    RolePolicy = "admin"
	PolicyUser     RolePolicy = "user"
	PolicyCustomer RolePolicy = "customer"
	// PolicyBoth accepts any known role. Kept for compatibility with the
	// legacy route definitions that gated mixed admin/user endpoints.
	PolicyBoth RolePolicy = "both"
)

// IsValid reports whether the role is one of the known variants
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleCustomer:
		return true
	}
	return false
}

// PolicyAllows reports whether a token role satisfies a route policy.
// Admins are allowed through the customer policy so that admin accounts
// can operate on customer-facing endpoints. Unknown roles never match.
func PolicyAllows(policy RolePolicy, role Role) bool {
	if !role.IsValid() {
		return false
	}

	switch policy {
	case PolicyBoth:
		return true
	case PolicyCustomer:
		return role == RoleCustomer || role == RoleAdmin
	case PolicyAdmin:
		return role == RoleAdmin
	case PolicyUser:
		return role == RoleUser
	}

	return false
}

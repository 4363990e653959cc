package models

import "fmt"

// Role is the closed set of user types the inventory service knows about.
// The zero value is RoleNone and means "no role recorded".
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleTechnician
	RoleUser
)

// Wire values of Role, as sent in the userType field and kept in storage.
const (
	roleAdmin      = "admin"
	roleTechnician = "technician"
	roleUser       = "user"
)

// ParseRole maps a stored or received userType to a Role.
// Unknown non-empty values are an error; "" is RoleNone.
func ParseRole(s string) (Role, error) {
	switch s {
	case "":
		return RoleNone, nil
	case roleAdmin:
		return RoleAdmin, nil
	case roleTechnician:
		return RoleTechnician, nil
	case roleUser:
		return RoleUser, nil
	default:
		return RoleNone, fmt.Errorf("unknown user type %q", s)
	}
}

// String returns the wire value of r ("" for RoleNone).
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdmin
	case RoleTechnician:
		return roleTechnician
	case RoleUser:
		return roleUser
	default:
		return ""
	}
}

// Home is the screen a role lands on after login or when it is turned away
// from a screen it may not see. Every role, including RoleNone, has one.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return PathAdmin
	case RoleTechnician:
		return PathTechnician
	default:
		return PathDashboard
	}
}

// Screen paths.
const (
	PathRoot       = "/"
	PathLogin      = "/login"
	PathAdmin      = "/admin"
	PathTechnician = "/technician"
	PathDashboard  = "/dashboard"
	PathInventory  = "/inventory"
	PathReports    = "/reports"
	PathAnalytics  = "/analytics"
	PathUsers      = "/users"
	PathSettings   = "/settings"
)

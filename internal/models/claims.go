package models

import "github.com/golang-jwt/jwt/v5"

// Staff permissions
const (
	// Watchlist and exemption management
	PermissionWatchlistRead  = "watchlist:read"
	PermissionWatchlistWrite = "watchlist:write"
	PermissionExemptionRead  = "exemption:read"
	PermissionExemptionWrite = "exemption:write"
	PermissionLimitRead      = "limit:read"
	PermissionLimitWrite     = "limit:write"

	// Case review
	PermissionCaseRead    = "case:read"
	PermissionCaseWrite   = "case:write"
	PermissionProfileRead = "profile:read"

	// Runtime switches
	PermissionMonitoringAdmin = "monitoring:admin"
)

// Staff roles
const (
	RoleAdmin      = "admin"
	RoleCompliance = "compliance"
	RoleAnalyst    = "analyst"
)

type StaffClaims struct {
	jwt.RegisteredClaims
	StaffID     string   `json:"staff_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *StaffClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionWatchlistRead,
			PermissionWatchlistWrite,
			PermissionExemptionRead,
			PermissionExemptionWrite,
			PermissionLimitRead,
			PermissionLimitWrite,
			PermissionCaseRead,
			PermissionCaseWrite,
			PermissionProfileRead,
			PermissionMonitoringAdmin,
		}
	case RoleCompliance:
		return []string{
			PermissionWatchlistRead,
			PermissionWatchlistWrite,
			PermissionExemptionRead,
			PermissionExemptionWrite,
			PermissionLimitRead,
			PermissionCaseRead,
			PermissionCaseWrite,
			PermissionProfileRead,
		}
	case RoleAnalyst:
		return []string{
			PermissionWatchlistRead,
			PermissionExemptionRead,
			PermissionLimitRead,
			PermissionCaseRead,
			PermissionProfileRead,
		}
	default:
		return []string{}
	}
}

// ValidRole reports whether role is a known staff role.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCompliance, RoleAnalyst:
		return true
	}
	return false
}

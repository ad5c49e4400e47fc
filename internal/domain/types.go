package domain

import "strings"

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// BloodGroups lists the ABO/Rh groups accepted for donors and requests.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

// IsValidBloodGroup reports whether g is one of BloodGroups.
func IsValidBloodGroup(g string) bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// NormalizeBloodGroup upper-cases g and restores a '+' that arrived as a space,
// which happens when a query string carries an unescaped "O+".
func NormalizeBloodGroup(g string) string {
	g = strings.ToUpper(strings.TrimLeft(g, " "))
	if strings.HasSuffix(g, " ") {
		g = strings.TrimRight(g, " ") + "+"
	}
	return g
}

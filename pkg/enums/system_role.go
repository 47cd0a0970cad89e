package enums

import "fmt"

// SystemRole captures the coarse access level of an operator account.
type SystemRole string

const (
	SystemRoleAdmin SystemRole = "admin"
	SystemRoleStaff SystemRole = "staff"
)

var validSystemRoles = []SystemRole{
	SystemRoleAdmin,
	SystemRoleStaff,
}

func (r SystemRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known SystemRole.
func (r SystemRole) IsValid() bool {
	for _, candidate := range validSystemRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSystemRole converts raw input into a SystemRole.
func ParseSystemRole(value string) (SystemRole, error) {
	for _, candidate := range validSystemRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid system role %q", value)
}

package auth

// RoleValidator defines the interface for role-based access control checks
type RoleValidator interface {
	// CanRead checks if the role can view records
	CanRead() bool

	// CanEdit checks if the role can edit records
	CanEdit() bool

	// CanCreate checks if the role can create records
	CanCreate() bool

	// CanDelete checks if the role can delete records
	CanDelete() bool

	// IsAtLeast checks if the role is at least the minimum required role
	IsAtLeast(minRole UserRole) bool
}

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleReadOnly, RoleSupport, RoleSalesRep, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanRead checks if this role can view records
func (r UserRole) CanRead() bool {
	switch r {
	case RoleReadOnly, RoleSupport, RoleSalesRep, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanEdit checks if this role can edit records
func (r UserRole) CanEdit() bool {
	switch r {
	case RoleSupport, RoleSalesRep, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanCreate checks if this role can create records
func (r UserRole) CanCreate() bool {
	switch r {
	case RoleSalesRep, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanDelete checks if this role can delete records
func (r UserRole) CanDelete() bool {
	switch r {
	case RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleReadOnly: 0,
		RoleSupport:  1,
		RoleSalesRep: 2,
		RoleManager:  3,
		RoleAdmin:    4,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleReadOnly,
		RoleSupport,
		RoleSalesRep,
		RoleManager,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}

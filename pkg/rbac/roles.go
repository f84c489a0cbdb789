package rbac

import "github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"

// RoleSet is a set of role tags used as a route or action requirement.
// An empty set means "any authenticated user".
type RoleSet []types.RoleTag

// NewRoleSet builds a RoleSet from role tags
func NewRoleSet(roles ...types.RoleTag) RoleSet {
	return RoleSet(roles)
}

// Contains reports whether the role is a member of the set.
func (s RoleSet) Contains(role types.RoleTag) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Empty reports whether the set places no role restriction.
func (s RoleSet) Empty() bool {
	return len(s) == 0
}

// AllRoles lists the closed set of role tags recognized by the system.
var AllRoles = RoleSet{
	types.RoleAdmin,
	types.RoleDoctor,
	types.RoleNurse,
	types.RoleReceptionist,
	types.RolePatient,
}

// Valid reports whether the tag is one of the recognized roles.
func Valid(role types.RoleTag) bool {
	return AllRoles.Contains(role)
}

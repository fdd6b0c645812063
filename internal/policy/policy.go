// Package policy centralizes the access-control decisions that were
// previously scattered across handlers. Two predicates exist in the whole
// system (role membership and ownership equality), so every operation is
// decided by an explicit (operation, role, isOwner) table, testable without
// any HTTP plumbing.
package policy

import "github.com/lisalescano/back-mapp/internal/model"

// Operation identifies a guarded domain action.
type Operation string

const (
	IncidentCreate        Operation = "incident:create"
	IncidentUpdateContent Operation = "incident:update_content"
	IncidentUpdateStatus  Operation = "incident:update_status"
	IncidentDelete        Operation = "incident:delete"
	IncidentStatistics    Operation = "incident:statistics"
	UserList              Operation = "user:list"
	UserGet               Operation = "user:get"
	UserUpdateRole        Operation = "user:update_role"
	UserSetActive         Operation = "user:set_active"
	UserDelete            Operation = "user:delete"
	UserUpdateOwnProfile  Operation = "user:update_own_profile"
)

// decision captures who may perform an operation. ownerAllowed grants the
// resource owner access regardless of role; each role listed in roles is
// allowed whether or not they own the resource.
type decision struct {
	roles        []string
	ownerAllowed bool
}

var table = map[Operation]decision{
	IncidentCreate:        {roles: []string{model.RoleUser, model.RoleAdmin}},
	IncidentUpdateContent: {roles: []string{model.RoleAdmin}, ownerAllowed: true},
	IncidentUpdateStatus:  {roles: []string{model.RoleAdmin}},
	IncidentDelete:        {roles: []string{model.RoleAdmin}, ownerAllowed: true},
	IncidentStatistics:    {roles: []string{model.RoleAdmin}},
	UserList:              {roles: []string{model.RoleAdmin}},
	UserGet:               {roles: []string{model.RoleAdmin}},
	UserUpdateRole:        {roles: []string{model.RoleAdmin}},
	UserSetActive:         {roles: []string{model.RoleAdmin}},
	UserDelete:            {roles: []string{model.RoleAdmin}},
	UserUpdateOwnProfile:  {roles: []string{model.RoleUser, model.RoleAdmin}},
}

// Allow reports whether a caller with the given role, owning or not owning
// the target resource, may perform op. Unknown operations are denied.
func Allow(op Operation, role string, isOwner bool) bool {
	d, ok := table[op]
	if !ok {
		return false
	}
	if isOwner && d.ownerAllowed {
		return true
	}
	for _, r := range d.roles {
		if r == role {
			return true
		}
	}
	return false
}

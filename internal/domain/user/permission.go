package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate   Permission = "attendance.create"
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
	},
	RoleLead: {
		// Scoped to the teams they lead; enforced by the attendance service
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewTeam,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Package policy decides which role may perform which mutation. All
// functions are pure and side-effect free; enforcement happens in the
// repository, which re-checks before every mutating call. Callers in the
// view layer use the same functions to decide whether to show a control.
package policy

import "github.com/seaward/fleetdash/internal/models"

// CanCreate reports whether user may create ships and components.
func CanCreate(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// CanEdit reports whether user may edit ships and components.
func CanEdit(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// CanDelete reports whether user may delete ships and components.
func CanDelete(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// CanManageJobs reports whether user may create, edit or delete jobs.
func CanManageJobs(user *models.User) bool {
	return user != nil && (user.Role == models.RoleAdmin || user.Role == models.RoleEngineer)
}

// CanAssignJobs reports whether user may set or change a job's assigned
// engineer.
func CanAssignJobs(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// CanUpdateJobStatus reports whether user may change the status of job. An
// engineer may only move jobs assigned to them.
func CanUpdateJobStatus(user *models.User, job *models.Job) bool {
	if user == nil || job == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	return user.Role == models.RoleEngineer &&
		job.AssignedEngineerID != "" &&
		job.AssignedEngineerID == user.ID
}

// CanViewAll reports whether user has read access. Reads are
// role-independent; any authenticated user may view everything.
func CanViewAll(user *models.User) bool {
	return user != nil
}

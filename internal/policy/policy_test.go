package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seaward/fleetdash/internal/models"
)

var (
	admin     = &models.User{ID: "1", Role: models.RoleAdmin}
	inspector = &models.User{ID: "2", Role: models.RoleInspector}
	engineer  = &models.User{ID: "3", Role: models.RoleEngineer}
)

func TestMutationGates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*models.User) bool
		user *models.User
		want bool
	}{
		{"create admin", CanCreate, admin, true},
		{"create inspector", CanCreate, inspector, false},
		{"create engineer", CanCreate, engineer, false},
		{"create nil", CanCreate, nil, false},
		{"edit admin", CanEdit, admin, true},
		{"edit engineer", CanEdit, engineer, false},
		{"edit nil", CanEdit, nil, false},
		{"delete admin", CanDelete, admin, true},
		{"delete inspector", CanDelete, inspector, false},
		{"delete nil", CanDelete, nil, false},
		{"manage jobs admin", CanManageJobs, admin, true},
		{"manage jobs engineer", CanManageJobs, engineer, true},
		{"manage jobs inspector", CanManageJobs, inspector, false},
		{"manage jobs nil", CanManageJobs, nil, false},
		{"assign jobs admin", CanAssignJobs, admin, true},
		{"assign jobs engineer", CanAssignJobs, engineer, false},
		{"assign jobs nil", CanAssignJobs, nil, false},
		{"view admin", CanViewAll, admin, true},
		{"view inspector", CanViewAll, inspector, true},
		{"view engineer", CanViewAll, engineer, true},
		{"view nil", CanViewAll, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.user))
		})
	}
}

func TestCanUpdateJobStatus(t *testing.T) {
	assigned := &models.Job{ID: "j1", AssignedEngineerID: "3"}
	other := &models.Job{ID: "j2", AssignedEngineerID: "4"}
	unassigned := &models.Job{ID: "j3"}

	assert.True(t, CanUpdateJobStatus(admin, assigned))
	assert.True(t, CanUpdateJobStatus(admin, unassigned))
	assert.True(t, CanUpdateJobStatus(engineer, assigned))
	assert.False(t, CanUpdateJobStatus(engineer, other))
	assert.False(t, CanUpdateJobStatus(engineer, unassigned))
	assert.False(t, CanUpdateJobStatus(inspector, assigned))
	assert.False(t, CanUpdateJobStatus(nil, assigned))
	assert.False(t, CanUpdateJobStatus(engineer, nil))
}

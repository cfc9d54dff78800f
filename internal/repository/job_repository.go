package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/notify"
	"github.com/seaward/fleetdash/internal/policy"

	apperrors "github.com/seaward/fleetdash/internal/errors"
)

// CreateJobInput holds the fields for a new job. AssignedEngineerID may be
// left empty: an engineer creating a job is assigned to it automatically, an
// admin-created job stays unassigned.
type CreateJobInput struct {
	ComponentID        string
	ShipID             string
	Type               models.JobType
	Priority           models.JobPriority
	Status             models.JobStatus
	AssignedEngineerID string
	ScheduledDate      string
	Description        string
}

func validateJobFields(jobType models.JobType, priority models.JobPriority, status models.JobStatus, scheduledDate, description string) error {
	if !jobType.Valid() {
		return apperrors.Invalid("unknown job type")
	}
	if !priority.Valid() {
		return apperrors.Invalid("unknown job priority")
	}
	if !status.Valid() {
		return apperrors.Invalid("unknown job status")
	}
	if scheduledDate == "" {
		return apperrors.Invalid("scheduled date is required")
	}
	if description == "" {
		return apperrors.Invalid("description is required")
	}
	return nil
}

// checkJobReferences verifies the cross-entity invariant: the component must
// exist and belong to the job's own ship. Caller holds r.mu.
func (r *FleetRepository) checkJobReferences(shipID, componentID string) error {
	if r.shipIndex(shipID) < 0 {
		return apperrors.Invalid("shipId references an unknown ship")
	}
	i := r.componentIndex(componentID)
	if i < 0 {
		return apperrors.Invalid("componentId references an unknown component")
	}
	if r.components[i].ShipID != shipID {
		return apperrors.Invalid("component belongs to a different ship")
	}
	return nil
}

// checkAssignee verifies that a non-empty assignee references an engineer.
// Caller holds r.mu.
func (r *FleetRepository) checkAssignee(assigneeID string) error {
	if assigneeID == "" {
		return nil
	}
	user := r.userByID(assigneeID)
	if user == nil || user.Role != models.RoleEngineer {
		return apperrors.Invalid("assignedEngineerId must reference an engineer")
	}
	return nil
}

// AddJob creates a new job. Admins and engineers may create jobs; only
// admins may hand them to somebody else.
func (r *FleetRepository) AddJob(actor *models.User, input CreateJobInput) (*models.Job, error) {
	if !policy.CanManageJobs(actor) {
		return nil, apperrors.Forbidden("only admins and engineers can create jobs")
	}
	if input.Status == "" {
		input.Status = models.JobStatusOpen
	}
	if err := validateJobFields(input.Type, input.Priority, input.Status, input.ScheduledDate, input.Description); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkJobReferences(input.ShipID, input.ComponentID); err != nil {
		return nil, err
	}
	if err := r.checkAssignee(input.AssignedEngineerID); err != nil {
		return nil, err
	}

	assignee := input.AssignedEngineerID
	if assignee != "" && assignee != actor.ID && !policy.CanAssignJobs(actor) {
		return nil, apperrors.Forbidden("only admins can assign jobs to other engineers")
	}
	if assignee == "" && actor.Role == models.RoleEngineer {
		assignee = actor.ID
	}

	job := models.Job{
		ID:                 uuid.NewString(),
		ComponentID:        input.ComponentID,
		ShipID:             input.ShipID,
		Type:               input.Type,
		Priority:           input.Priority,
		Status:             input.Status,
		AssignedEngineerID: assignee,
		ScheduledDate:      input.ScheduledDate,
		Description:        input.Description,
	}

	next := make([]models.Job, len(r.jobs), len(r.jobs)+1)
	copy(next, r.jobs)
	next = append(next, job)

	if err := r.store.SaveJobs(next); err != nil {
		return nil, err
	}
	r.jobs = next

	r.notify("Job created successfully: "+job.Description, notify.KindSuccess)
	return &job, nil
}

// UpdateJob replaces the job with job.ID. Status changes are restricted to
// the allowed transition graph and to users the policy permits; reassignment
// is admin-only.
func (r *FleetRepository) UpdateJob(actor *models.User, job models.Job) (*models.Job, error) {
	if !policy.CanManageJobs(actor) {
		return nil, apperrors.Forbidden("only admins and engineers can edit jobs")
	}
	if err := validateJobFields(job.Type, job.Priority, job.Status, job.ScheduledDate, job.Description); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.jobIndex(job.ID)
	if i < 0 {
		return nil, apperrors.NotFound("job not found")
	}
	existing := r.jobs[i]

	if err := r.checkJobReferences(job.ShipID, job.ComponentID); err != nil {
		return nil, err
	}
	if err := r.checkAssignee(job.AssignedEngineerID); err != nil {
		return nil, err
	}

	if job.AssignedEngineerID != existing.AssignedEngineerID && !policy.CanAssignJobs(actor) {
		return nil, apperrors.Forbidden("only admins can reassign jobs")
	}

	if job.Status != existing.Status {
		if !policy.CanUpdateJobStatus(actor, &existing) {
			return nil, apperrors.Forbidden("engineers can only update the status of jobs assigned to them")
		}
		if !existing.Status.CanTransitionTo(job.Status) {
			return nil, apperrors.Invalid(fmt.Sprintf("cannot move a job from %s to %s", existing.Status, job.Status))
		}
		if job.Status == models.JobStatusCompleted && job.CompletionDate == "" {
			job.CompletionDate = time.Now().Format("2006-01-02")
		}
	}

	next := make([]models.Job, len(r.jobs))
	copy(next, r.jobs)
	next[i] = job

	if err := r.store.SaveJobs(next); err != nil {
		return nil, err
	}
	r.jobs = next

	r.notify(fmt.Sprintf("Job updated: %s to %s", job.Description, job.Status), notify.KindInfo)
	return &job, nil
}

// DeleteJob removes a single job. Jobs are leaves; nothing cascades.
func (r *FleetRepository) DeleteJob(actor *models.User, id string) error {
	if !policy.CanManageJobs(actor) {
		return apperrors.Forbidden("only admins and engineers can delete jobs")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.jobIndex(id) < 0 {
		return apperrors.NotFound("job not found")
	}

	jobs := make([]models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.ID != id {
			jobs = append(jobs, j)
		}
	}

	if err := r.store.SaveJobs(jobs); err != nil {
		return err
	}
	r.jobs = jobs

	r.notify("Job deleted successfully", notify.KindSuccess)
	return nil
}

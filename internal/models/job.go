package models

type JobType string

const (
	JobTypeInspection           JobType = "Inspection"
	JobTypeRepair               JobType = "Repair"
	JobTypeReplacement          JobType = "Replacement"
	JobTypeScheduledMaintenance JobType = "Scheduled Maintenance"
	JobTypeUpgrade              JobType = "Upgrade"
)

type JobPriority string

const (
	JobPriorityHigh   JobPriority = "High"
	JobPriorityMedium JobPriority = "Medium"
	JobPriorityLow    JobPriority = "Low"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "Open"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

// Job is a maintenance work order against one component on one ship.
// ComponentID must reference a component whose ShipID equals the job's own
// ShipID; AssignedEngineerID, when set, must reference a user with role
// Engineer.
type Job struct {
	ID                 string      `json:"id"`
	ComponentID        string      `json:"componentId"`
	ShipID             string      `json:"shipId"`
	Type               JobType     `json:"type"`
	Priority           JobPriority `json:"priority"`
	Status             JobStatus   `json:"status"`
	AssignedEngineerID string      `json:"assignedEngineerId,omitempty"`
	ScheduledDate      string      `json:"scheduledDate"`
	Description        string      `json:"description"`
	CompletionDate     string      `json:"completionDate,omitempty"`
}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeInspection, JobTypeRepair, JobTypeReplacement,
		JobTypeScheduledMaintenance, JobTypeUpgrade:
		return true
	}
	return false
}

func (p JobPriority) Valid() bool {
	switch p {
	case JobPriorityHigh, JobPriorityMedium, JobPriorityLow:
		return true
	}
	return false
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// jobStatusTransitions is the allowed status graph. Completed and Cancelled
// are terminal.
var jobStatusTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:       {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCancelled},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// CanTransitionTo reports whether a job may move from s to next. Staying on
// the same status is always allowed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range jobStatusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

package constants

const (
	TaskStatusNotStarted  = "Not Started"
	TaskStatusInProgress  = "In Progress"
	TaskStatusBlocked     = "Blocked"
	TaskStatusUnderReview = "Under Review"
	TaskStatusCompleted   = "Completed"
)

// DefaultTaskStatus is the status assigned to newly created tasks.
const DefaultTaskStatus = TaskStatusInProgress

const (
	PhaseStatusPending     = "Pending"
	PhaseStatusInProgress  = "In Progress"
	PhaseStatusCompleted   = "Completed"
	PhaseStatusBlocked     = "Blocked"
	PhaseStatusUnderReview = "Under Review"
)

const (
	ValidationPending  = "Pending"
	ValidationApproved = "Approved"
	ValidationRejected = "Rejected"
)

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusBlocked,
		TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

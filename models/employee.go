package models

// Employee owns at most one active task at a time. CurrentTaskID is a
// lookup convenience, not ownership; the task's OwnerID is authoritative.
type Employee struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	CurrentTaskID *string `json:"currentTaskId"`
}

package models

// Task is a unit of work assigned to exactly one employee. Phases,
// deliverables and the optional attachment live and die with the task;
// they are stored as JSON columns rather than separate tables.
type Task struct {
	ID                 string        `gorm:"primaryKey" json:"id"`
	Code               string        `gorm:"not null" json:"code"`
	OwnerID            string        `gorm:"index;not null" json:"ownerId"`
	Manager            string        `json:"manager"`
	Mentor             string        `json:"mentor"`
	ExpectedDuration   int           `json:"expectedDuration"`
	StartTime          int64         `gorm:"index" json:"startTime"`
	Status             string        `json:"status"`
	ProgressPercentage int           `json:"progressPercentage"`
	CurrentPhase       string        `json:"currentPhase"`
	Phases             []Phase       `gorm:"serializer:json" json:"phases"`
	Deliverables       []Deliverable `gorm:"serializer:json" json:"deliverables"`
	ComplianceScore    int           `json:"complianceScore"`
	LastUpdateTime     int64         `json:"lastUpdateTime"`
	Description        string        `json:"description"`
	Attachment         *Attachment   `gorm:"serializer:json" json:"attachment,omitempty"`
	DueDate            *int64        `json:"dueDate,omitempty"`

	// Version guards against lost updates: every task mutation is a
	// compare-and-swap on (id, version).
	Version int64 `gorm:"not null;default:1" json:"-"`
}

// Phase is one stage of a task's workflow template. Durations are minutes.
type Phase struct {
	Name             string `json:"name"`
	ExpectedDuration int    `json:"expectedDuration"`
	Status           string `json:"status"`
	ValidationStatus string `json:"validationStatus"`
}

// Deliverable is a required output artifact of a task.
type Deliverable struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	IsSubmitted bool   `json:"isSubmitted"`
}

// Attachment is an optional file handed over at task creation,
// carried inline as base64.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

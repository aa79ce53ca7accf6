package models

// Activity is an append-only log entry produced as a side effect of an
// employee action. Activities are created once and never mutated.
type Activity struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	EmployeeID   string            `gorm:"index" json:"employeeId"`
	TaskID       string            `gorm:"index" json:"taskId"`
	Timestamp    int64             `gorm:"index" json:"timestamp"`
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	ScreenshotID string            `json:"screenshotId,omitempty"`
	Metadata     *ActivityMetadata `gorm:"serializer:json" json:"metadata,omitempty"`
}

type ActivityMetadata struct {
	ProgressPercentage *int   `json:"progressPercentage,omitempty"`
	BlockerSeverity    string `json:"blockerSeverity,omitempty"`
}

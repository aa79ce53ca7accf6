package models

// Blocker is a reported obstacle. Every blocker carries mandatory
// screenshot evidence.
type Blocker struct {
	ID           string `gorm:"primaryKey" json:"id"`
	TaskID       string `gorm:"index" json:"taskId"`
	EmployeeID   string `gorm:"index" json:"employeeId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	ReportedAt   int64  `gorm:"index" json:"reportedAt"`
	ScreenshotID string `gorm:"not null" json:"screenshotId"`
	Status       string `json:"status"`
}

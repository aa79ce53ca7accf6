package models

// Screenshot is image evidence attached to a status update or blocker
// report. Written once, never updated; referenced by id from Activity
// and Blocker.
type Screenshot struct {
	ID         string `gorm:"primaryKey" json:"id"`
	TaskID     string `gorm:"index" json:"taskId"`
	EmployeeID string `gorm:"index" json:"employeeId"`
	Timestamp  int64  `json:"timestamp"`
	Base64Data string `json:"base64Data"`
}

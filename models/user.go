package models

// User is a login account. Employees link to their Employee record via
// EmployeeID; managers have no employee record.
type User struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Username   string  `gorm:"uniqueIndex;not null" json:"username"`
	Name       string  `json:"name"`
	Password   string  `json:"-"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employeeId"`
}

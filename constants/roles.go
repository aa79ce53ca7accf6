package constants

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

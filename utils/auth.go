package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/models"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
	return err == nil
}

func GenerateJWT(user models.User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = *user.EmployeeID
	}

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		claims,
	)

	return token.SignedString(secret)
}

// CanActOnTask reports whether a caller may mutate the given task.
// Managers may act on any task; employees only on tasks they own.
func CanActOnTask(task models.Task, role, employeeID string) bool {
	if role == constants.RoleManager {
		return true
	}
	return employeeID != "" && task.OwnerID == employeeID
}

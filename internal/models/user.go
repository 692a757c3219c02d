package models

import "time"

// Roles a user can pick on the profile form.
const (
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"fname"`
	LastName     string    `json:"lname"`
	Role         string    `json:"role,omitempty"`  // Teacher | Student
	Image        string    `json:"image,omitempty"` // reference only, no upload storage
	PasswordHash string    `json:"-"`               // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}

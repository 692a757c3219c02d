package forms

import (
	"strings"

	"campaign_forum/internal/models"
)

type Login struct {
	Username   string `form:"username" validate:"notblank"`
	Password   string `form:"password" validate:"notblank"`
	RememberMe bool   `form:"remember_me"`
}

func LoginFrom(get Getter) Login {
	return Login{
		Username:   strings.TrimSpace(get("username")),
		Password:   get("password"),
		RememberMe: isChecked(get("remember_me")),
	}
}

type Registration struct {
	Username  string `form:"username" validate:"notblank"`
	Email     string `form:"email" validate:"notblank,email"`
	FirstName string `form:"fname" validate:"notblank"`
	LastName  string `form:"lname" validate:"notblank"`
	Password  string `form:"password" validate:"notblank,maxbytes=72"`
	Password2 string `form:"password2" validate:"notblank,eqfield=Password"`
}

func RegistrationFrom(get Getter) Registration {
	return Registration{
		Username:  strings.TrimSpace(get("username")),
		Email:     strings.TrimSpace(get("email")),
		FirstName: strings.TrimSpace(get("fname")),
		LastName:  strings.TrimSpace(get("lname")),
		Password:  get("password"),
		Password2: get("password2"),
	}
}

type PasswordResetRequest struct {
	Email string `form:"email" validate:"notblank,email"`
}

func PasswordResetRequestFrom(get Getter) PasswordResetRequest {
	return PasswordResetRequest{Email: strings.TrimSpace(get("email"))}
}

type PasswordReset struct {
	Password  string `form:"password" validate:"notblank,maxbytes=72"`
	Password2 string `form:"password2" validate:"notblank,eqfield=Password"`
}

func PasswordResetFrom(get Getter) PasswordReset {
	return PasswordReset{Password: get("password"), Password2: get("password2")}
}

// Profile edits the personal fields of the signed-in user. Image is a reference (URL) only.
type Profile struct {
	FirstName string `form:"fname" validate:"notblank"`
	LastName  string `form:"lname" validate:"notblank"`
	Role      string `form:"role" validate:"oneof=Teacher Student"`
	Image     string `form:"image" validate:"omitempty,url"`
}

// RoleChoices lists the values offered by the role select.
var RoleChoices = []string{models.RoleTeacher, models.RoleStudent}

func ProfileFrom(get Getter) Profile {
	return Profile{
		FirstName: strings.TrimSpace(get("fname")),
		LastName:  strings.TrimSpace(get("lname")),
		Role:      strings.TrimSpace(get("role")),
		Image:     strings.TrimSpace(get("image")),
	}
}

// ProfileFromModel pre-fills the profile form from the stored user.
func ProfileFromModel(u models.User) Profile {
	return Profile{FirstName: u.FirstName, LastName: u.LastName, Role: u.Role, Image: u.Image}
}

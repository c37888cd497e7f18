package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const birthdayLayout = "2006-01-02"

// SignupRequest is the POST /signup payload.
type SignupRequest struct {
	Name      string   `json:"name"`
	Birthday  *string  `json:"birthday"`
	Email     string   `json:"email"`
	Password  *string  `json:"password"`
	Countries []string `json:"countries"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Birthday, validation.Date(birthdayLayout)),
	)
}

// Credentials is the POST /login payload. Username carries the email.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r Credentials) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UserUpdateRequest is the PATCH /user/:id payload; absent fields stay untouched.
type UserUpdateRequest struct {
	Name      *string   `json:"name"`
	Birthday  *string   `json:"birthday"`
	Email     *string   `json:"email"`
	Password  *string   `json:"password"`
	Countries *[]string `json:"countries"`
}

func (r UserUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Birthday, validation.Date(birthdayLayout)),
	)
}

package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Messages shown next to form fields.
const (
	MsgRequired          = "This field is required."
	MsgUsernameTooShort  = "Username cannot be shorter than 6 characters."
	MsgUsernameInvalid   = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgInvalidEmail      = "Enter a valid email address."
	MsgPasswordMismatch  = "The two password fields didn’t match."
	MsgPasswordTooShort  = "This password is too short. It must contain at least 8 characters."
	MsgPasswordNumeric   = "This password is entirely numeric."
	MsgUsernameTaken     = "A user with that username already exists."
	MsgEmailTaken        = "A user with that email already exists."
	MsgInvalidLogin      = "Please enter a correct email and password. Note that both fields may be case-sensitive."
	MsgTooManyAttempts   = "Too many login attempts. Please try again later."
	MsgInvalidRating     = "Rating must be a whole number between 0 and 10."
	MsgReviewEmpty       = "Your review cannot be empty."
	MsgReviewTooLong     = "Your review cannot be longer than 2000 characters."
	MsgInvalidSubmission = "The submitted form could not be read."
)

// fieldMessages overrides the generic per-tag messages for specific fields.
var fieldMessages = map[string]string{
	"username.min":         MsgUsernameTooShort,
	"username.username":    MsgUsernameInvalid,
	"password2.eqfield":    MsgPasswordMismatch,
	"password2.min":        MsgPasswordTooShort,
	"password2.notnumeric": MsgPasswordNumeric,
	"body.required":        MsgReviewEmpty,
	"body.max":             MsgReviewTooLong,
	"rating.min":           MsgInvalidRating,
	"rating.max":           MsgInvalidRating,
}

// FormErrors maps an input name to its error messages. NonField holds errors
// that belong to the form as a whole.
type FormErrors struct {
	Fields   map[string][]string
	NonField []string
}

func NewFormErrors() *FormErrors {
	return &FormErrors{Fields: make(map[string][]string)}
}

func (e *FormErrors) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *FormErrors) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

// Get is used by templates to list a field's errors.
func (e *FormErrors) Get(field string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[field]
}

func (e *FormErrors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0)
}

// FromBinding converts the error returned by gin's ShouldBind into field
// messages. Errors that are not validation failures become non-field errors.
func FromBinding(err error) *FormErrors {
	fe := NewFormErrors()
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.AddNonField(MsgInvalidSubmission)
		return fe
	}
	for _, v := range verrs {
		fe.Add(v.Field(), message(v))
	}
	return fe
}

func message(v validator.FieldError) string {
	if msg, ok := fieldMessages[v.Field()+"."+v.Tag()]; ok {
		return msg
	}
	switch v.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", v.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", v.Param())
	}
	return "Enter a valid value."
}

package dto

// Form payloads bound from urlencoded or multipart bodies. Field names match
// the HTML inputs so errors can be shown next to them.

// RegisterForm: payload for user registration
type RegisterForm struct {
	Username  string `form:"username" binding:"required,min=6,max=150,username"`
	Email     string `form:"email" binding:"required,email,max=254"`
	Password1 string `form:"password1" binding:"required"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1,min=8,notnumeric"`
}

// LoginForm: the username field carries the account email
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// ChangeUserForm: payload for profile changes
type ChangeUserForm struct {
	Username string `form:"username" binding:"required,min=6,max=150,username"`
	Email    string `form:"email" binding:"required,email,max=254"`
}

// RatingForm: pointer so that 0 passes required
type RatingForm struct {
	Rating *int `form:"rating" binding:"required,min=0,max=10"`
}

type ReviewForm struct {
	Body string `form:"body" binding:"required,max=2000"`
}

package models

// RegisterForm is the registration form input.
type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" validate:"required,max=120,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginForm is the login form input.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

// ProfileForm is the profile update form input.
// PictureName is the original name of the uploaded file, empty when no file was sent.
type ProfileForm struct {
	Username    string `form:"username" validate:"required,min=2,max=20"`
	Email       string `form:"email" validate:"required,max=120,email"`
	PictureName string `form:"picture" validate:"omitempty,imageext"`
}

// PostForm is the create/update post form input.
type PostForm struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

// FormErrors maps a form field name to its error message.
type FormErrors map[string]string

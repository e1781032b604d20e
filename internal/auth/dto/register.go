package dto

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FullName  string `json:"full_name"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

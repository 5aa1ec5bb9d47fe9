package dto

type SignUpRequest struct {
	Username        string `form:"username" json:"username"`
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password1" json:"password"`
	PasswordConfirm string `form:"password2" json:"password_confirm"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type UserData struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AuthResponse struct {
	OK    bool      `json:"ok"`
	User  *UserData `json:"user,omitempty"`
	Token string    `json:"token,omitempty"`
	Error string    `json:"error,omitempty"`
}

package auth

// RegisterRequest field order matters: binding reports the first failure, so
// presence errors surface before the password mismatch, before anything else.
type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	EmployeeID      string `json:"employee_id" binding:"required"`
	Department      uint   `json:"department" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID         uint    `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Department *string `json:"department,omitempty"`
}

type RegisterResponse struct {
	User        AuthResponse `json:"user"`
	AccessToken string       `json:"access_token,omitempty"`
	Message     string       `json:"message"`
	Warning     string       `json:"warning,omitempty"`
}

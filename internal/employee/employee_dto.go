package employee

// UpdateProfileRequest carries both profile sub-forms: identity fields and
// employee fields. They validate together; nothing persists unless both pass.
type UpdateProfileRequest struct {
	FirstName    string `form:"first_name" json:"first_name" binding:"required"`
	LastName     string `form:"last_name" json:"last_name"`
	Email        string `form:"email" json:"email" binding:"required,email"`
	EmployeeID   string `form:"employee_id" json:"employee_id" binding:"required"`
	DepartmentID *uint  `form:"department" json:"department"`
	Phone        string `form:"phone" json:"phone"`
	Address      string `form:"address" json:"address"`

	// Stored file name of an uploaded picture, set by the handler after the
	// upload has been written to disk. Empty means "keep the current one".
	ProfilePicture string `form:"-" json:"-"`
}

type ProfileResponse struct {
	ID             uint    `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	DepartmentID   *uint   `json:"department_id,omitempty"`
	Department     *string `json:"department,omitempty"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	ProfilePicture string  `json:"profile_picture,omitempty"`
	DateJoined     string  `json:"date_joined"`
}

// FieldError reports a single failed field so forms can surface every
// problem at once rather than only the first.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fe[0].Field + ": " + fe[0].Message
}

package domain

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// CanManage reports whether the role may run mutating operations.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID           int32  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"is_active"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

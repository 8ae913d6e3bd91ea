package models

// Role is a named permission group that users may be assigned to.
// Role names are unique.
type Role struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// Built-in role names created at startup.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

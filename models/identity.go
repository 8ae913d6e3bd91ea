package models

// Identity is the authenticated principal attached to a request context by
// the authentication middleware.
type Identity struct {
	UserID int64
	Role   string
}

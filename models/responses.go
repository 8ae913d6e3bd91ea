package models

// MessageResponse is a response that carries only a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message  string     `json:"message"`
	UserInfo PublicUser `json:"userInfo"`
}

// LoginResponse is returned after a successful login. The token itself is
// delivered in the session cookie, not in the body.
type LoginResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

package model

// Roles the remote server is known to hand out. Other values may appear;
// callers should treat the role as an open string.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a remote account as returned by the companion server.
// It is never persisted locally; the admin screens fetch it transiently
// and mutate it only through the remote client.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

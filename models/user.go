package models

// Role gates which views and mutations the surrounding UI permits
type Role string

// Role values
const (
	RoleAdmin       Role = "ADMIN"
	RoleMonitor     Role = "MONITOR"
	RoleCoordinator Role = "COORDINADOR"
	RoleSurveyor    Role = "ENCUESTADOR"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMonitor || r == RoleCoordinator || r == RoleSurveyor
}

// ZoneAll assigns a user to every zone
const ZoneAll = "TODAS"

// UserAccount is a login-capable account. Secret is a bcrypt hash at rest;
// only user-management submissions carry a plaintext secret, and only until
// the store hashes it.
type UserAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Secret   string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Rank     string `json:"cargo,omitempty"`
	Zone     string `json:"zona"`
	Active   bool   `json:"activo"`
}

// Validate checks required account fields
func (u UserAccount) Validate() error {
	if u.Name == "" || u.Username == "" {
		return &ValidationError{Field: "username", Reason: "name and username are required"}
	}
	if u.Secret == "" {
		return &ValidationError{Field: "password", Reason: "secret is required"}
	}
	if !u.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "unknown role"}
	}
	return nil
}

// Credentials is the login exchange request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the authenticated subject for the current dashboard session
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Zone   string `json:"zona"`
	Token  string `json:"token,omitempty"`
}

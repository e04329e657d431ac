package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the authenticated identity of the running gateway instance.
// Exactly one Session exists per process; it is owned by the session service
// and mutated only through login, logout and init.
type Session struct {
	Token    string `json:"-"`
	Username string `json:"username,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Role     string `json:"role"`
}

// IsLoggedIn reports whether the session holds a bearer token.
func (s Session) IsLoggedIn() bool { return s.Token != "" }

// IsAdmin reports whether the session is logged in with the admin role.
// Role is meaningful only while a token is present.
func (s Session) IsAdmin() bool { return s.IsLoggedIn() && s.Role == RoleAdmin }

// Credentials carries a login payload handed to the session service.
type Credentials struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id,omitempty"`
	Role        string `json:"role,omitempty"`
}

// CredentialRecord is the durable mirror of the Session, persisted under the
// fixed marketplace storage keys. It is a cache of the Session, not the
// source of truth while the process is live.
type CredentialRecord struct {
	Token    string
	Username string
	Role     string
}

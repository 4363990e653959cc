package models

// Session is the client-held authentication state that gates screens.
// All fields are optional; a Session without Token is anonymous.
type Session struct {
	Token    string
	Role     Role
	UserName string
	// UserData marks that the full user profile came back from a login
	// response (registration does not set it).
	UserData bool
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Keys under which a Session is persisted, shared by every store backend.
const (
	KeyAuthToken = "authToken"
	KeyUserType  = "userType"
	KeyUserName  = "userName"
	KeyUserData  = "userData"
)

// SessionKeys lists every persisted key, in the order they are written.
var SessionKeys = []string{KeyUserName, KeyUserType, KeyUserData, KeyAuthToken}

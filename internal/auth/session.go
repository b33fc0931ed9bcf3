// Package auth holds the demo session store: who is logged in and the last
// login failure. Credentials are a fixed in-memory list, not a security boundary.
package auth

import (
	"errors"
	"sync"
)

// ErrInvalidCredentials is returned when no credential matches the login attempt.
var ErrInvalidCredentials = errors.New("invalid email or password")

// InvalidCredentialsMessage is the text shown for ErrInvalidCredentials.
const InvalidCredentialsMessage = "Invalid email or password"

// Credential is one accepted email/password pair.
type Credential struct {
	Email    string
	Password string
}

// DemoCredentials is the built-in credential list.
var DemoCredentials = []Credential{
	{Email: "user1@example.com", Password: "password1"},
	{Email: "user2@example.com", Password: "password2"},
}

// Session is the authentication state of one browser session.
type Session struct {
	mu          sync.RWMutex
	credentials []Credential
	currentUser string
	lastError   string
}

// NewSession returns an empty session checking logins against creds.
// A nil creds falls back to DemoCredentials.
func NewSession(creds []Credential) *Session {
	if creds == nil {
		creds = DemoCredentials
	}
	return &Session{credentials: creds}
}

// Login sets the current user when email and password match a credential
// exactly. On mismatch the current user is left as it was and the last error
// is recorded.
func (s *Session) Login(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.credentials {
		if c.Email == email && c.Password == password {
			s.currentUser = email
			s.lastError = ""
			return nil
		}
	}
	s.lastError = InvalidCredentialsMessage
	return ErrInvalidCredentials
}

// Logout clears the current user. The last error is kept.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = ""
}

// CurrentUser returns the logged in email, if any.
func (s *Session) CurrentUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser, s.currentUser != ""
}

// LastError returns the message of the last failed login, or "".
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// Package session tracks the login state and bearer token for the
// remote provider.
package session

import "strings"

// Token parameter keys recognized in the authorization callback URL,
// in precedence order.
const (
	providerTokenKey = "provider_token="
	accessTokenKey   = "access_token="
)

// Session is the auth state machine. It has two states, logged out and
// logged in; the bearer token is only reachable while logged in, so the
// "authenticated with no credential" combination cannot be represented.
//
// Session is not safe for concurrent use.
type Session struct {
	loggedIn bool
	token    string
}

// New creates a logged-out session.
func New() *Session {
	return &Session{}
}

// LoggedIn reports whether a login has completed.
func (s *Session) LoggedIn() bool {
	return s.loggedIn
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	if !s.loggedIn {
		return ""
	}
	return s.token
}

// HandleCallback parses an authorization redirect URL and, when it
// carries a recognized token parameter, transitions to logged in.
// A URL without a recognized parameter leaves the session unchanged
// and returns false.
func (s *Session) HandleCallback(rawURL string) bool {
	token, ok := ExtractToken(rawURL)
	if !ok {
		return false
	}
	s.loggedIn = true
	s.token = token
	return true
}

// Logout transitions to logged out and clears the token.
func (s *Session) Logout() {
	s.loggedIn = false
	s.token = ""
}

// Restore reconciles persisted session fields. The stored flag and
// token are independent fields on disk; an authenticated flag with an
// empty token restores as logged out so the structural invariant holds.
func (s *Session) Restore(authed bool, token string) {
	if authed && token != "" {
		s.loggedIn = true
		s.token = token
		return
	}
	s.loggedIn = false
	s.token = ""
}

// ExtractToken pulls the token value out of an authorization redirect
// URL. provider_token takes precedence over access_token; the value
// runs to the next '&' or the end of the string. The boolean reports
// whether a recognized parameter key was present at all.
func ExtractToken(rawURL string) (string, bool) {
	key := accessTokenKey
	if strings.Contains(rawURL, providerTokenKey) {
		key = providerTokenKey
	}

	pos := strings.Index(rawURL, key)
	if pos < 0 {
		return "", false
	}

	value := rawURL[pos+len(key):]
	if i := strings.IndexByte(value, '&'); i >= 0 {
		value = value[:i]
	}
	return value, true
}

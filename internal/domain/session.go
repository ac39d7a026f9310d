package domain

import (
	"net/url"
	"strings"
)

// Session is the authenticated identity plus the bearer credential the
// service issued for it. Passwords never live here.
type Session struct {
	Username string
	Token    string
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.Username) != "" && strings.TrimSpace(s.Token) != ""
}

// Profile is the durable part of the client state. The token itself stays in
// the secret store and is referenced by TokenRef.
type Profile struct {
	Username string
	TokenRef string
	DarkMode bool
}

func (p Profile) HasSession() bool {
	return strings.TrimSpace(p.Username) != "" && strings.TrimSpace(p.TokenRef) != ""
}

// TokenRefFor returns the secret-store key holding the access token of
// username. The username is escaped into a single path segment, so distinct
// users never share a key.
func TokenRefFor(username string) string {
	return "todo://" + usernameSegment(username) + "/access_token"
}

func usernameSegment(username string) string {
	escaped := url.PathEscape(strings.TrimSpace(username))
	if escaped != "" && strings.Trim(escaped, ".") == "" {
		escaped = strings.ReplaceAll(escaped, ".", "%2E")
	}
	return escaped
}

// SecretPath turns a token reference into a slash-separated store path, so
// "todo://alice/access_token" becomes "todo/alice/access_token".
func SecretPath(ref string) string {
	ref = strings.TrimSpace(ref)
	if scheme, rest, ok := strings.Cut(ref, "://"); ok {
		return scheme + "/" + strings.TrimLeft(rest, "/")
	}
	return ref
}

package api

import (
	"net/http"
	"strings"
)

// SessionCookie is the name of the session cookie issued by the Checkpoint
// API for web clients.
const SessionCookie = "JSESSIONID"

// Credential is the session credential attached to outbound API calls.
// Availability is an explicit capability, never inferred from the ambient
// environment: a render pass with no cookie jar (a prerender, a warmup
// request) carries an unavailable credential, and session checks are skipped
// for it rather than misread as "logged out".
type Credential struct {
	cookie    *http.Cookie
	available bool
}

// NoCredential is the credential of an environment without credential
// transport.
func NoCredential() Credential { return Credential{} }

// AnonymousCredential has transport available but no session attached:
// a browser that simply is not logged in.
func AnonymousCredential() Credential { return Credential{available: true} }

// SessionCredential wraps a session cookie value.
func SessionCredential(value string) Credential {
	return Credential{
		cookie:    &http.Cookie{Name: SessionCookie, Value: value},
		available: true,
	}
}

// CredentialFromRequest extracts the session credential from an incoming
// browser request. A request without the session cookie yields an anonymous
// credential: transport exists, there is just no session to present.
// Speculative loads (prefetch/prerender) yield no credential at all — their
// session state must stay unknown, not be misread as logged out.
func CredentialFromRequest(r *http.Request) Credential {
	purpose := r.Header.Get("Sec-Purpose")
	if purpose == "" {
		purpose = r.Header.Get("Purpose")
	}
	if strings.Contains(purpose, "prefetch") || strings.Contains(purpose, "prerender") {
		return NoCredential()
	}
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return AnonymousCredential()
	}
	return SessionCredential(c.Value)
}

// Available reports whether this environment can attach session credentials
// to outbound requests at all.
func (c Credential) Available() bool { return c.available }

// Token returns the raw session value, or "" when absent. Used for per-session
// cache keys.
func (c Credential) Token() string {
	if c.cookie == nil {
		return ""
	}
	return c.cookie.Value
}

// attach adds the session cookie to an outbound request when present.
func (c Credential) attach(req *http.Request) {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
}

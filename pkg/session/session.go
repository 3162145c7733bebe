// Package session carries the caller identity supplied by the upstream
// identity provider through trusted request headers.
package session

import (
	"context"
	"net/http"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleSystem   Role = "system"
)

type Session struct {
	UserID string
	Role   Role
	// NIP of the signed-in employee, when known.
	NIP string
}

// System is the identity used by scheduled jobs and the CLI.
var System = Session{UserID: "system", Role: RoleSystem}

func (s Session) Anonymous() bool {
	return s.UserID == ""
}

// Owns reports whether nip is the session's own employee number.
func (s Session) Owns(nip string) bool {
	own := strings.TrimSpace(s.NIP)
	return own != "" && own == strings.TrimSpace(nip)
}

// Headers names the trusted headers a Session is read from.
type Headers struct {
	User string
	Role string
	NIP  string
}

func (h Headers) Parse(r *http.Request) Session {
	return Session{
		UserID: strings.TrimSpace(r.Header.Get(h.User)),
		Role:   Role(strings.ToLower(strings.TrimSpace(r.Header.Get(h.Role)))),
		NIP:    strings.TrimSpace(r.Header.Get(h.NIP)),
	}
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by the session middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

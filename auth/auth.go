package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
)

type ctxKey string

const (
	sessionCookieName = "session"
	actorCtxKey       = ctxKey("actor")
	sessionTTL        = 14 * 24 * time.Hour
	devSecret         = "devsessionsecret"
)

// Sessions issues and verifies the signed session cookie. The cookie carries
// the actor's role and branch id; nothing else is stored server side.
type Sessions struct {
	secret []byte
}

// NewSessions returns a cookie signer. An empty secret falls back to a dev value.
func NewSessions(secret string) *Sessions {
	if secret == "" {
		secret = devSecret
	}
	return &Sessions{secret: []byte(secret)}
}

func (s *Sessions) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeActor(a policy.Actor) string {
	return string(a.Role) + ":" + strconv.FormatUint(uint64(a.BranchID), 10)
}

func decodeActor(payload string) (policy.Actor, bool) {
	role, branch, ok := strings.Cut(payload, ":")
	if !ok {
		return policy.Actor{}, false
	}
	id, err := strconv.ParseUint(branch, 10, 32)
	if err != nil {
		return policy.Actor{}, false
	}
	a := policy.Actor{Role: policy.Role(role), BranchID: uint(id)}
	if !a.Authenticated() {
		return policy.Actor{}, false
	}
	if a.IsFactory() {
		a.BranchID = 0
	}
	return a, true
}

// Create sets a signed cookie for the actor.
func (s *Sessions) Create(w http.ResponseWriter, a policy.Actor) {
	payload := encodeActor(a)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + s.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// Clear deletes the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Parse validates the cookie and returns the actor it names.
func (s *Sessions) Parse(r *http.Request) (policy.Actor, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return policy.Actor{}, false
	}
	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return policy.Actor{}, false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return policy.Actor{}, false
	}
	return decodeActor(payload)
}

// Middleware attaches the session actor to the request context if present.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a, ok := s.Parse(r); ok {
			r = r.WithContext(WithActor(r.Context(), a))
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor stores the actor in ctx.
func WithActor(ctx context.Context, a policy.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, a)
}

// ActorFromContext returns the request actor; the zero Actor when there is none.
func ActorFromContext(ctx context.Context) policy.Actor {
	a, _ := ctx.Value(actorCtxKey).(policy.Actor)
	return a
}

// RequireAuth answers 401 for requests without a valid session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).Authenticated() {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PasscodeEqual compares two passcodes in constant time. An empty expected
// passcode never matches.
func PasscodeEqual(expected, given string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

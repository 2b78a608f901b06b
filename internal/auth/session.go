package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"github.com/bariskaantoprak-ui/ITSO/internal/logger"
)

// RoleAdmin is the only role the portal issues.
const RoleAdmin = "admin"

var (
	// ErrUnauthorized is returned for wrong credentials or bad tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured is returned by Login when no admin hash is set.
	ErrNotConfigured = errors.New("admin login is not configured")
)

// Claims is the session token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// Authenticator verifies the admin credential and issues session tokens.
type Authenticator struct {
	email        string
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator builds an Authenticator. An empty secret is replaced by a
// random one, which invalidates sessions on restart.
func NewAuthenticator(email, passwordHash, secret string, ttl time.Duration) (*Authenticator, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		logger.L().Warn("SESSION_SECRET not set; using an ephemeral key")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Authenticator{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		secret:       key,
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login checks the credential and returns a signed token and its expiry.
func (a *Authenticator) Login(email, password string) (string, time.Time, error) {
	if a.passwordHash == "" {
		return "", time.Time{}, ErrNotConfigured
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passOK, err := VerifyPassword(password, a.passwordHash)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("verify password: %w", err)
	}
	if !emailOK || !passOK {
		return "", time.Time{}, ErrUnauthorized
	}
	return a.Issue()
}

// Issue signs a fresh admin token.
func (a *Authenticator) Issue() (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: RoleAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   a.email,
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses a token and checks its signature, expiry and role.
func (a *Authenticator) Verify(raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if !claims.VerifyExpiresAt(a.now().Unix(), true) || claims.Role != RoleAdmin {
		return nil, ErrUnauthorized
	}
	return &claims, nil
}

type ctxKey struct{}

// IsAdmin reports whether the request context carries a verified admin
// session.
func IsAdmin(ctx context.Context) bool {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return ok && c.Role == RoleAdmin
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Identify attaches the admin claims to the context when a valid token is
// present. Requests without one pass through anonymously.
func (a *Authenticator) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearer(r); raw != "" {
			if claims, err := a.Verify(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without a valid admin token with 401.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearer(r)
		claims, err := a.Verify(raw)
		if err != nil {
			logger.L().Warn("rejected admin request",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Bool("token_present", raw != ""),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="urge-admin"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"admin session required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

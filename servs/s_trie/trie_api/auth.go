// file: rtrie/servs/s_trie/trie_api/auth.go
package trie_api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleWriter = "writer"
	tokenTTL   = 12 * time.Hour
)

type jwtClaims struct {
	Username string `json:"sub"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const jwtContextKey = contextKey("jwt_claims")

// Auth guards the mutating routes with HS256 bearer tokens issued by /auth/login.
type Auth struct {
	secret       []byte
	user         string
	passwordHash []byte
	ttl          time.Duration
}

// NewAuth returns nil when cfg has no API secret, which leaves the API open.
func NewAuth(cfg *config.Config) *Auth {
	if cfg == nil || cfg.APISecret == "" {
		return nil
	}
	return &Auth{
		secret:       []byte(cfg.APISecret),
		user:         cfg.APIUser,
		passwordHash: []byte(cfg.APIPasswordHash),
		ttl:          tokenTTL,
	}
}

// HashPassword returns the bcrypt hash stored as api_password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", constant.ErrBadRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// -------- /auth/login --------
func (a *Auth) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		body, err := readBody(r)
		if err != nil || codec.Unmarshal(body, &req) != nil {
			writeError(w, constant.ErrBadRequest)
			return
		}

		if req.Username != a.user ||
			bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := a.Token(req.Username, RoleWriter)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Token signs a token for username with role.
func (a *Auth) Token(username, role string) (string, error) {
	claims := jwtClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// -------- Middleware: JWT Token Validation --------
func (a *Auth) Middleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims := &jwtClaims{}
			_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
				return a.secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			if requiredRole != "" && claims.Role != requiredRole {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			l := x_log.From(r.Context()).With().Str("user", claims.Username).Logger()
			ctx := context.WithValue(r.Context(), jwtContextKey, claims)
			ctx = x_log.WithLogger(ctx, &l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// -------- Utility: Extract Token --------
// Browsers cannot set headers on a websocket handshake, so ?token= is accepted too.
func extractToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// UserFromContext returns the token subject and role set by Middleware.
func UserFromContext(ctx context.Context) (username, role string, ok bool) {
	claims, ok := ctx.Value(jwtContextKey).(*jwtClaims)
	if !ok {
		return "", "", false
	}
	return claims.Username, claims.Role, true
}

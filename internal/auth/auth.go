// Package auth provides password login and JWT bearer authentication for the
// admin API, with a Redis-backed deny-list for revoked tokens.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/CodeBellator/Agent-Management-System/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type contextKey string

const contextKeyActor contextKey = "actor"

// Actor is the authenticated admin identity attached to each request.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// FromContext extracts the actor from a request context, or nil if the
// request is unauthenticated.
func FromContext(ctx context.Context) *Actor {
	if actor, ok := ctx.Value(contextKeyActor).(*Actor); ok {
		return actor
	}
	return nil
}

// Manager handles admin login, token issuance and validation.
type Manager struct {
	cfg   config.AuthConfig
	db    *sql.DB
	redis *redis.Client
}

// NewManager creates a new authentication manager
func NewManager(cfg config.AuthConfig, db *sql.DB, redisClient *redis.Client) *Manager {
	return &Manager{cfg: cfg, db: db, redis: redisClient}
}

// Login verifies the credentials against admin_users and issues a signed
// bearer token.
func (m *Manager) Login(ctx context.Context, email, password string) (string, *Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		id   uuid.UUID
		hash string
	)
	err := m.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM admin_users WHERE email = $1`, email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.String(),
		"email": email,
		"jti":   uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(m.cfg.TokenTTL()).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, &Actor{ID: id, Email: email}, nil
}

// Authenticate validates a bearer token and returns the actor it identifies.
func (m *Manager) Authenticate(ctx context.Context, tokenString string) (*Actor, error) {
	claims, err := m.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		revoked, err := m.redis.Exists(ctx, denyListKey(jti)).Result()
		if err != nil {
			return nil, fmt.Errorf("deny-list check: %w", err)
		}
		if revoked > 0 {
			return nil, ErrTokenRevoked
		}
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &Actor{ID: id, Email: email}, nil
}

// Revoke deny-lists the token until its natural expiry, so logout takes
// effect immediately despite stateless tokens.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parseClaims(tokenString)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return ErrInvalidToken
	}

	ttl := m.cfg.TokenTTL()
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}

	return m.redis.Set(ctx, denyListKey(jti), "1", ttl).Err()
}

func (m *Manager) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Middleware requires a valid bearer token and injects the actor into the
// request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := BearerToken(r)
		if !ok {
			unauthorized(w, "authorization required")
			return
		}

		actor, err := m.Authenticate(r.Context(), tokenString)
		if err != nil {
			unauthorized(w, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the bearer token from a request's Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"message":%q}`, message)
}

func denyListKey(jti string) string {
	return fmt.Sprintf("auth:denylist:%s", jti)
}

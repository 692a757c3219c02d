package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign_forum/internal/models"
	"campaign_forum/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles credential checks and session tokens.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
	now   func() time.Time
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.RememberTTL < cfg.TokenTTL {
		cfg.RememberTTL = cfg.TokenTTL
	}
	return &AuthService{users: users, cfg: cfg, now: time.Now}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Authenticate checks username and password. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GenerateToken validates credentials and returns a short-lived JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.IssueToken(u.ID, false)
	return token, err
}

// IssueToken signs a token for userID. remember selects the long-lived TTL.
func (s *AuthService) IssueToken(userID int, remember bool) (string, time.Time, error) {
	ttl := s.cfg.TokenTTL
	if remember {
		ttl = s.cfg.RememberTTL
	}
	now := s.now()
	expires := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

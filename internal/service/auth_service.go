package service

import (
	"errors"
	"strings"
	"time"

	"shop-metrics/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Claims represents the JWT claims issued at login
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService issues bearer tokens for the write endpoints
type AuthService interface {
	Login(username, password string) (string, error)
}

type authService struct {
	cfg config.JWTConfig
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg}
}

// Login validates the credential pair and returns a signed token. Both
// fields must be non-blank. When no password hash is configured any
// non-blank pair is accepted; otherwise the password must match the
// configured bcrypt hash.
func (s *authService) Login(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", ErrMissingCredentials
	}

	if s.cfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
			return "", ErrInvalidCredentials
		}
	}

	expiry := time.Duration(s.cfg.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 4 * time.Hour
	}

	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

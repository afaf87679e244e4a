package auth

import (
	"errors"
	"time"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role; it may change sources and switch DCs
const RoleAdmin = "admin"

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidPassword = errors.New("invalid password")
	ErrLoginDisabled   = errors.New("admin login is not configured")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// Enabled reports whether a signing secret is configured. Without one the
// admin routes are open, as on a single-user workstation.
func (j *JWTManager) Enabled() bool {
	return j.cfg.Auth.JWTSecret != ""
}

// GenerateToken creates a new admin token
func (j *JWTManager) GenerateToken() (string, time.Time, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(j.cfg.Auth.ExpirationHours) * time.Hour)

	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.Auth.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Auth.JWTSecret))
	return signed, expirationTime, err
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.Auth.JWTSecret), nil
	}, jwt.WithIssuer(j.cfg.Auth.Issuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Login checks the admin password against the configured hash and issues a token
func (j *JWTManager) Login(password string) (string, time.Time, error) {
	if !j.Enabled() || j.cfg.Auth.AdminPasswordHash == "" {
		return "", time.Time{}, ErrLoginDisabled
	}
	if err := checkAdminPassword(j.cfg.Auth.AdminPasswordHash, password); err != nil {
		return "", time.Time{}, err
	}
	return j.GenerateToken()
}

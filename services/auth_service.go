package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"SocialAutoPoster/config"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService guards the admin HTTP surface. There is exactly one
// principal: the bot operator, identified by a bcrypt password hash from
// the environment. Login is disabled until the hash is configured.
type AuthService struct {
	secret       []byte
	passwordHash string
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret:       []byte(cfg.Server.JWTSecret),
		passwordHash: cfg.Server.AdminPasswordHash,
	}
}

func (a *AuthService) Login(password string) error {
	if a.passwordHash == "" {
		return fmt.Errorf("admin login disabled: ADMIN_PASSWORD_HASH not set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

func (a *AuthService) GenerateToken() (string, error) {
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

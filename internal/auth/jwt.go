package auth

import (
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// --- Context Keys ---

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// --- Token Classes ---

// TokenTypeAccess is the only class accepted by the API middleware; refresh
// tokens exist solely to mint new access tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// --- JWT Claims ---

// CustomClaims includes standard JWT claims plus the token class.
// The Subject registered claim carries the user's integer id.
type CustomClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// NewAccessToken generates a new JWT access token for the given user.
func NewAccessToken(userID int64, jwtSecret string, expiration time.Duration) (string, error) {
	return newToken(userID, TokenTypeAccess, jwtSecret, expiration)
}

// NewRefreshToken generates a refresh-class token. It is rejected by the API
// middleware, which only honors access tokens.
func NewRefreshToken(userID int64, jwtSecret string, expiration time.Duration) (string, error) {
	return newToken(userID, TokenTypeRefresh, jwtSecret, expiration)
}

func newToken(userID int64, tokenType, jwtSecret string, expiration time.Duration) (string, error) {
	claims := CustomClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "convospace-backend",
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(), // jti
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Printf("Error signing JWT token for UserID %d: %v", userID, err)
		return "", err
	}

	return signedToken, nil
}

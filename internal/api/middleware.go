package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"convospace-backend/internal/auth"
	"convospace-backend/pkg/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// --- JWT Middleware ---

// JwtAuthMiddleware verifies the JWT bearer token from the Authorization header.
// Only access-class tokens pass; the subject claim must carry the user's
// integer id, which is injected into the request context on success.
func JwtAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("Auth Middleware: Missing Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Printf("Auth Middleware: Malformed Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Malformed Authorization header (Expected: Bearer <token>)")
				return
			}

			tokenString := parts[1]
			claims := &auth.CustomClaims{}

			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				// Validate the signing algorithm
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				log.Printf("Auth Middleware: Error parsing token: %v", err)
				if errors.Is(err, jwt.ErrTokenExpired) {
					httputil.RespondError(w, http.StatusUnauthorized, "Token has expired")
				} else if errors.Is(err, jwt.ErrTokenMalformed) {
					httputil.RespondError(w, http.StatusUnauthorized, "Malformed token")
				} else {
					httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			if !token.Valid {
				log.Println("Auth Middleware: Token is present but invalid")
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// Refresh tokens are not usable against the API itself.
			if claims.TokenType != auth.TokenTypeAccess {
				log.Printf("Auth Middleware: Wrong token class %q", claims.TokenType)
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid token class")
				return
			}

			if claims.Subject == "" {
				log.Println("Auth Middleware: Token missing subject claim")
				httputil.RespondError(w, http.StatusUnauthorized, "Token missing user identity")
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				log.Printf("Auth Middleware: Non-integer subject claim %q", claims.Subject)
				httputil.RespondError(w, http.StatusUnauthorized, "Token missing user identity")
				return
			}

			// Call the next handler in the chain with the enriched context
			ctx := auth.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

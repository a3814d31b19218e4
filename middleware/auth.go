package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// RequireScope guards mutating routes: requests must carry a bearer token
// signed with the API secret and granting the given scope. Reads stay open.
func RequireScope(jwtSecret string, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "malformed authorization header")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "invalid token claims")
				return
			}
			if !tokenGrantsScope(claims, scope) {
				forbidden(w, "insufficient scope")
				return
			}

			ctx := r.Context()
			if clientID, ok := claims["client_id"].(string); ok {
				ctx = context.WithValue(ctx, clientIDKey, clientID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext returns the authenticated client id, if any.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(clientIDKey).(string)
	return clientID, ok
}

// The scope claim is a space-separated list per OAuth2.
func tokenGrantsScope(claims jwt.MapClaims, scope string) bool {
	raw, ok := claims["scope"].(string)
	if !ok {
		return false
	}
	for _, granted := range strings.Fields(raw) {
		if granted == scope {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, "{\"error\":%q}\n", message)
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pizza-delivery/api/internal/auth"
	"github.com/pizza-delivery/api/internal/database"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
	userKey   contextKey = "user"
)

// UserStore resolves a token subject to a stored user.
// Satisfied by *database.Queries.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (database.User, error)
}

// Authenticate rejects any request without a valid bearer token. Failures
// never reach the next handler.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeDetail(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, parts[1])
			if err != nil {
				writeDetail(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadUser resolves the authenticated subject to its user row. A valid token
// whose user no longer exists is answered with 404.
func LoadUser(store UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeDetail(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			user, err := store.GetUserByUsername(r.Context(), claims.Username())
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					writeDetail(w, http.StatusNotFound, "User not found")
					return
				}
				log.Printf("ERROR: load user %q: %v", claims.Username(), err)
				writeDetail(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff must run after LoadUser.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid Token")
			return
		}
		if !user.IsStaff {
			writeDetail(w, http.StatusUnauthorized, "User is not a superuser")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func UserFromContext(ctx context.Context) *database.User {
	user, _ := ctx.Value(userKey).(*database.User)
	return user
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

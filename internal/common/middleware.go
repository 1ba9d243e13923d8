package common

import (
	"context"
	"net/http"
	"strings"

	"stemchat/internal/dbmysql"
)

// AccountResolver rehydrates the current account from the identifier carried
// in the session token subject.
type AccountResolver interface {
	Resolve(ctx context.Context, id string) (*dbmysql.Account, error)
}

type contextKey string

const accountContextKey contextKey = "account"

// AccountFromContext returns the authenticated account placed on the request
// context by AuthMiddleware.
func AccountFromContext(ctx context.Context) (*dbmysql.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*dbmysql.Account)
	return account, ok
}

// ContextWithAccount attaches an authenticated account to the context.
func ContextWithAccount(ctx context.Context, account *dbmysql.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

// AuthMiddleware enforces bearer-token authentication. It validates the
// session token, resolves the subject back to an account row, and injects the
// account into the request context before calling the next handler.
func AuthMiddleware(tokens *TokenManager, resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				// Websocket clients cannot set headers from the browser, so the
				// token may ride in the query string instead.
				if t := r.URL.Query().Get("token"); t != "" {
					header = "Bearer " + t
				}
			}
			if header == "" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				http.Error(w, "invalid auth header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			account, err := resolver.Resolve(r.Context(), claims.Subject)
			if err != nil {
				http.Error(w, "unknown account", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), account)))
		})
	}
}

// CORSMiddleware allows the configured frontend origin.
func CORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip CORS for websocket upgrades
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

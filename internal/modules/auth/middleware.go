package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
)

type claimsKey struct{}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// RequireToken rejects requests without a valid bearer token.
func RequireToken(verifier TokenVerifier, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				apperr.Write(w, apperr.NewUnauthorized(MsgInvalidToken), false)
				return
			}
			claims, err := verifier.Verify(raw, secret)
			if err != nil {
				apperr.Write(w, apperr.NewUnauthorized(MsgInvalidToken), false)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

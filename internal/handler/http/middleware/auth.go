package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthRequired rejects requests without a verified access token and stores the
// caller identity on the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		identity, err := jwt.IdentityFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
	return http.HandlerFunc(hfn)
}

func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the caller set by AuthRequired.
func IdentityFromContext(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(user.Identity)
	return identity, ok
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ristorapos/backoffice-backend/api/responses"
	pkgAuth "github.com/ristorapos/backoffice-backend/pkg/auth"
	"github.com/ristorapos/backoffice-backend/pkg/config"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxStaffID, claims.StaffID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			ctx = context.WithValue(ctx, ctxBusinessID, claims.BusinessID.String())

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"staff_id":    claims.StaffID.String(),
					"staff_role":  string(claims.Role),
					"business_id": claims.BusinessID.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

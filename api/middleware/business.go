package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ristorapos/backoffice-backend/api/responses"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
)

// BusinessScope rejects requests whose URL business does not match the token.
// Routes using it must carry a {businessID} parameter.
func BusinessScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claimed := BusinessIDFromContext(r.Context())
			if claimed == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "business context missing"))
				return
			}
			if requested := chi.URLParam(r, "businessID"); requested != "" && requested != claimed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "business mismatch"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

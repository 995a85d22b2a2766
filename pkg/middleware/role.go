package middleware

import (
	"net/http"
	"slices"

	"github.com/justinas/alice"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-refresh-api/pkg/log"
)

// Papéis presentes no claim user_role_id
const (
	RoleAdmin      = 1
	RoleSupervisor = 2 // dispara atualizações e altera snapshots
	RoleClient     = 3 // somente leitura dos painéis
)

// RequireRoles restringe a rota aos papéis informados. Depende do AuthMiddleware.
func RequireRoles(allowedRoles ...int) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context())

			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logger.Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.UserRoleID) {
				logger.WithFields(log.Fields{
					"user_id": userClaims.UserID,
					"role_id": userClaims.UserRoleID,
					"path":    r.URL.Path,
				}).Warn("Acesso negado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOrSupervisor libera as rotas que alteram estado
func AdminOrSupervisor() alice.Constructor {
	return RequireRoles(RoleAdmin, RoleSupervisor)
}

func AllRoles() alice.Constructor {
	return RequireRoles(RoleAdmin, RoleSupervisor, RoleClient)
}

package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos roles
// allowedRoles é um array de IDs de roles que têm permissão para acessar a rota
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)

			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExecutiveOnly é um middleware que permite acesso apenas para executivos
func ExecutiveOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleExecutive})
}

// ExecutiveOrBookkeeper permite acesso para executivos e contadores
func ExecutiveOrBookkeeper() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleExecutive, domain.RoleBookkeeper})
}

// AllRoles permite acesso para qualquer usuário autenticado; o escopo por
// loja é aplicado na camada de casos de uso
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleExecutive, domain.RoleBookkeeper, domain.RoleManager})
}

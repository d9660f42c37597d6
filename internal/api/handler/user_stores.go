package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authenticating"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
)

type UserStoresRequest struct {
	StoreCodes []string `json:"store_codes"`
}

// UpdateUserStores substitui o conjunto de lojas atribuídas a um gerente.
// Apenas executivos podem alterar atribuições; o novo conjunto passa a valer
// no próximo login do usuário alvo.
func UpdateUserStores(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if idStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
			return
		}

		id, err := strconv.Atoi(idStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleExecutive {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas executivos podem alterar as lojas atribuídas", nil)
			return
		}

		var req UserStoresRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		err = service.ManageUserStores(r.Context(), id, req.StoreCodes)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, domain.ErrStoreNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrStoreNotFound, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar lojas atribuídas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message":     "Lojas atribuídas atualizadas com sucesso",
			"user_id":     id,
			"store_codes": req.StoreCodes,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

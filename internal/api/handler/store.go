package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authorizing"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
)

// ListStores retorna as lojas ativas visíveis para o usuário: todas para
// executivos e contadores, apenas as atribuídas para gerentes
func ListStores(storeRepo repository.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		stores, err := storeRepo.ListActive(r.Context())
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar lojas", nil)
			return
		}

		visible := make([]*domain.Store, 0, len(stores))
		for _, store := range stores {
			if authorizing.CanWriteStore(claims, store.Code) {
				visible = append(visible, store)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(visible); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

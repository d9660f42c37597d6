package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/usecases/ranking"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
)

// GetStoreRanking retorna o snapshot mensal do ranking das lojas por vendas
func GetStoreRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := service.GetStoreRanking(r.Context())
		if err != nil {
			logrus.Error("Erro ao buscar ranking das lojas:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking das lojas", nil)
			return
		}

		if ranking == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nenhum ranking encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(ranking)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

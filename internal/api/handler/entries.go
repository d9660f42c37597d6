package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/recording"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
)

// CreateEntry registra a entrada semanal de uma loja
func CreateEntry(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var input domain.EntryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		entry, err := service.Submit(r.Context(), &input, claims)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateEntry atualiza campos brutos de uma entrada existente
func UpdateEntry(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, err := entryIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da entrada inválido", nil)
			return
		}

		var patch domain.EntryPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		entry, err := service.Update(r.Context(), id, &patch, claims)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteEntry remove uma entrada semanal
func DeleteEntry(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, err := entryIDFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da entrada inválido", nil)
			return
		}

		if err := service.Delete(r.Context(), id, claims); err != nil {
			writeEntryError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetLastWeek retorna a última entrada registrada da loja, usada pelo
// formulário para pré-preencher a próxima semana
func GetLastWeek(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		storeCode := httprouter.ParamsFromContext(r.Context()).ByName("store")
		if storeCode == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código da loja não fornecido", nil)
			return
		}

		data, err := service.GetLastWeek(r.Context(), storeCode, claims)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logrus.Error(err)
		}
	}
}

// ImportRequest é o corpo da importação em lote: linhas cruas chave-valor,
// na ordem em que devem ser processadas.
type ImportRequest struct {
	Rows []map[string]string `json:"rows"`
}

// ImportEntries processa um lote de linhas com isolamento por linha
func ImportEntries(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if len(req.Rows) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma linha para importar", nil)
			return
		}

		result, err := service.ImportBatch(r.Context(), req.Rows, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar importação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

func entryIDFromRequest(r *http.Request) (int64, error) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	return strconv.ParseInt(idStr, 10, 64)
}

// writeEntryError converte os erros do domínio de entradas para os códigos de
// API correspondentes
func writeEntryError(w http.ResponseWriter, err error) {
	var validationErr *recording.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Message, map[string]any{
			"fields": validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEntry):
		apiErrors.WriteError(w, apiErrors.ErrDuplicateEntry, err.Error(), nil)

	case errors.Is(err, domain.ErrEntryNotFound):
		apiErrors.WriteError(w, apiErrors.ErrEntryNotFound, err.Error(), nil)

	case errors.Is(err, domain.ErrStoreNotFound):
		apiErrors.WriteError(w, apiErrors.ErrStoreNotFound, err.Error(), nil)

	case errors.Is(err, domain.ErrStoreForbidden):
		apiErrors.WriteError(w, apiErrors.ErrStoreForbidden, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar entrada", nil)
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/scheduler"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRanking = "ranking"
	CronJobTypeAll     = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	StoreRankingSyncService *scheduler.StoreRankingSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Apenas executivos podem executar cron jobs manualmente
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleExecutive {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas executivos podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeRanking, CronJobTypeAll:
			if services.StoreRankingSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do ranking não disponível", nil)
				return
			}
			services.StoreRankingSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: ranking, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleExecutive {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas executivos podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"ranking": services.StoreRankingSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}

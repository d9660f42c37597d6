package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/reporting"
	"github.com/jpcs2004/store-performance-api/pkg/apiErrors"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
	"github.com/jpcs2004/store-performance-api/pkg/utils"
)

// reportFiltersFromRequest extrai período e lojas da query string.
// Datas no formato YYYY-MM-DD; lojas separadas por vírgula.
func reportFiltersFromRequest(r *http.Request) (*domain.ReportFilters, error) {
	filters := &domain.ReportFilters{}

	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, err := utils.ParseDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("data inicial inválida: %q", startStr)
		}
		filters.StartDate = start
	}

	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, err := utils.ParseDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("data final inválida: %q", endStr)
		}
		filters.EndDate = end
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, fmt.Errorf("data final anterior à data inicial")
	}

	if storesStr := r.URL.Query().Get("stores"); storesStr != "" {
		for _, code := range strings.Split(storesStr, ",") {
			if code = strings.TrimSpace(code); code != "" {
				filters.Stores = append(filters.Stores, code)
			}
		}
	}

	return filters, nil
}

// reportContext resolve os claims e filtros comuns a todos os relatórios.
// Retorna false se a resposta de erro já foi escrita.
func reportContext(w http.ResponseWriter, r *http.Request) (*domain.ReportFilters, *domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, nil, false
	}

	filters, err := reportFiltersFromRequest(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, nil, false
	}

	return filters, claims, true
}

func writeReportJSON(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logrus.Error(err)
	}
}

// GetDashboardSummary retorna os KPIs agregados do período
func GetDashboardSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		summary, err := service.Summary(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar resumo do painel", nil)
			return
		}

		writeReportJSON(w, summary)
	}
}

// GetTimeSeries retorna a série temporal consolidada por semana fiscal
func GetTimeSeries(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		points, err := service.TimeSeries(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar série temporal", nil)
			return
		}

		writeReportJSON(w, points)
	}
}

// GetTimeSeriesByStore retorna uma série temporal por loja
func GetTimeSeriesByStore(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		series, err := service.TimeSeriesByStore(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar séries por loja", nil)
			return
		}

		writeReportJSON(w, series)
	}
}

// GetStorePerformance retorna o comparativo ranqueado das lojas no período
func GetStorePerformance(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		performances, err := service.StorePerformance(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar desempenho das lojas", nil)
			return
		}

		writeReportJSON(w, performances)
	}
}

// GetDetailedEntries retorna as entradas individuais do período
func GetDetailedEntries(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		entries, err := service.DetailedEntries(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar entradas detalhadas", nil)
			return
		}

		writeReportJSON(w, entries)
	}
}

// ExportReport gera o CSV das entradas do período para download
func ExportReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, claims, ok := reportContext(w, r)
		if !ok {
			return
		}

		data, err := service.ExportCSV(r.Context(), filters, claims)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao exportar relatório", nil)
			return
		}

		filename := fmt.Sprintf("desempenho-lojas-%s.csv", time.Now().Format("2006-01-02"))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
		if _, err := w.Write(data); err != nil {
			logrus.Error(err)
		}
	}
}

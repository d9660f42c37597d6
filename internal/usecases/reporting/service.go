// Package reporting implementa as agregações de leitura do painel: resumo de
// KPIs, séries temporais, desempenho por loja e exportação CSV. Nenhuma
// leitura é transacional; cada chamada recomputa a partir das entradas
// persistidas.
package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/config"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authorizing"
	"github.com/jpcs2004/store-performance-api/pkg/fiscal"
	"github.com/jpcs2004/store-performance-api/pkg/utils"
)

type Reporter interface {
	Summary(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) (*domain.DashboardSummary, error)
	TimeSeries(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.TimeSeriesPoint, error)
	TimeSeriesByStore(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) (map[string][]*domain.TimeSeriesPoint, error)
	StorePerformance(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.StorePerformance, error)
	DetailedEntries(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.WeeklyEntry, error)
	ExportCSV(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]byte, error)
}

type Service struct {
	entryRepo repository.EntryRepository
	storeRepo repository.StoreRepository
	score     config.Score
}

func NewService(entryRepo repository.EntryRepository, storeRepo repository.StoreRepository, score config.Score) Reporter {
	return &Service{
		entryRepo: entryRepo,
		storeRepo: storeRepo,
		score:     score,
	}
}

// fetch resolve o escopo de lojas do principal, converte o intervalo de datas
// para o intervalo aproximado de chaves week_iso e carrega as entradas em
// ordem cronológica. Escopo vazio devolve lista vazia sem consultar o banco.
func (s *Service) fetch(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.WeeklyEntry, error) {
	effective := authorizing.EffectiveStores(claims, filters.Stores)
	if effective != nil && len(effective) == 0 {
		return []*domain.WeeklyEntry{}, nil
	}

	start, end := resolveRange(filters)
	startISO, endISO := fiscal.ApproxWeekRange(start, end)

	return s.entryRepo.ListByWeekRange(ctx, startISO, endISO, effective)
}

// resolveRange aplica os padrões do período: início em 1º de janeiro do ano
// corrente e fim na data atual.
func resolveRange(filters *domain.ReportFilters) (time.Time, time.Time) {
	now := time.Now().UTC()

	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if filters.StartDate != nil {
		start = *filters.StartDate
	}

	end := now
	if filters.EndDate != nil {
		end = *filters.EndDate
	}

	return start, end
}

func (s *Service) Summary(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) (*domain.DashboardSummary, error) {
	entries, err := s.fetch(ctx, filters, claims)
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{}
	stores := make(map[string]struct{})

	var pySales, pyLaborCost float64
	var pyTransactions int

	for _, e := range entries {
		summary.TotalSales += e.TotalSales
		summary.TotalTransactions += e.NumTransactions
		summary.TotalLaborCost += e.TotalLaborCost
		summary.TotalLaborHours += e.VariableHours
		stores[e.StoreCode] = struct{}{}

		if e.TotalSalesPy != nil {
			pySales += *e.TotalSalesPy
		}
		if e.NumTransactionsPy != nil {
			pyTransactions += *e.NumTransactionsPy
		}
		if e.TotalLaborCostPy != nil {
			pyLaborCost += *e.TotalLaborCostPy
		}
	}

	summary.EntryCount = len(entries)
	summary.StoreCount = len(stores)

	// Os mesmos guardas numéricos de uma entrada individual, aplicados sobre o
	// agregado do período
	if summary.TotalTransactions > 0 {
		summary.AvgTransactionValue = utils.RoundWithTwoDecimalPlace(summary.TotalSales / float64(summary.TotalTransactions))
	}
	summary.LaborCostPercent = utils.RoundWithTwoDecimalPlace(domain.SafePercent(summary.TotalLaborCost, summary.TotalSales))
	summary.SalesPerLaborHour = utils.RoundWithTwoDecimalPlace(domain.SafePerHour(summary.TotalSales, summary.TotalLaborHours))
	summary.TransactionsPerLaborHour = utils.RoundWithTwoDecimalPlace(domain.SafePerHour(float64(summary.TotalTransactions), summary.TotalLaborHours))

	summary.SalesYoYPercent = utils.RoundWithTwoDecimalPlace(domain.YoYDelta(summary.TotalSales, pySales))
	summary.TransactionsYoYPercent = utils.RoundWithTwoDecimalPlace(domain.YoYDelta(float64(summary.TotalTransactions), float64(pyTransactions)))
	summary.LaborCostYoYPercent = utils.RoundWithTwoDecimalPlace(domain.YoYDelta(summary.TotalLaborCost, pyLaborCost))

	return summary, nil
}

// seriesAccumulator agrega as entradas de um mesmo período fiscal.
type seriesAccumulator struct {
	period       string
	weekEnding   time.Time
	sales        float64
	transactions int
	laborCost    float64
	laborHours   float64

	pySales        float64
	pyTransactions int
	pyLaborCost    float64
	hasPy          bool
}

func (a *seriesAccumulator) add(e *domain.WeeklyEntry) {
	a.sales += e.TotalSales
	a.transactions += e.NumTransactions
	a.laborCost += e.TotalLaborCost
	a.laborHours += e.VariableHours

	if e.TotalSalesPy != nil {
		a.pySales += *e.TotalSalesPy
		a.hasPy = true
	}
	if e.NumTransactionsPy != nil {
		a.pyTransactions += *e.NumTransactionsPy
		a.hasPy = true
	}
	if e.TotalLaborCostPy != nil {
		a.pyLaborCost += *e.TotalLaborCostPy
		a.hasPy = true
	}
}

func (a *seriesAccumulator) toPoint() *domain.TimeSeriesPoint {
	point := &domain.TimeSeriesPoint{
		Period:       a.period,
		WeekEnding:   a.weekEnding,
		Sales:        a.sales,
		Transactions: a.transactions,
		LaborCost:    a.laborCost,
		LaborHours:   a.laborHours,
		LaborPercent: utils.RoundWithTwoDecimalPlace(domain.SafePercent(a.laborCost, a.sales)),
	}

	if a.transactions > 0 {
		point.AvgTransaction = utils.RoundWithTwoDecimalPlace(a.sales / float64(a.transactions))
	}

	if a.hasPy {
		py := &domain.PreviousYearPoint{
			Sales:        a.pySales,
			Transactions: a.pyTransactions,
			LaborPercent: utils.RoundWithTwoDecimalPlace(domain.SafePercent(a.pyLaborCost, a.pySales)),
		}
		if a.pyTransactions > 0 {
			py.AvgTransaction = utils.RoundWithTwoDecimalPlace(a.pySales / float64(a.pyTransactions))
		}
		point.PreviousYear = py
	}

	return point
}

// buildSeries agrupa entradas por week_iso preservando a ordem cronológica de
// chegada. Períodos sem entradas não aparecem: a série não inventa lacunas.
func buildSeries(entries []*domain.WeeklyEntry) []*domain.TimeSeriesPoint {
	accumulators := make(map[string]*seriesAccumulator)
	order := make([]string, 0)

	for _, e := range entries {
		acc, ok := accumulators[e.WeekISO]
		if !ok {
			acc = &seriesAccumulator{period: e.WeekISO, weekEnding: e.WeekEnding}
			accumulators[e.WeekISO] = acc
			order = append(order, e.WeekISO)
		}
		acc.add(e)
	}

	points := make([]*domain.TimeSeriesPoint, 0, len(order))
	for _, period := range order {
		points = append(points, accumulators[period].toPoint())
	}

	return points
}

func (s *Service) TimeSeries(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.TimeSeriesPoint, error) {
	entries, err := s.fetch(ctx, filters, claims)
	if err != nil {
		return nil, err
	}

	return buildSeries(entries), nil
}

func (s *Service) TimeSeriesByStore(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) (map[string][]*domain.TimeSeriesPoint, error) {
	entries, err := s.fetch(ctx, filters, claims)
	if err != nil {
		return nil, err
	}

	byStore := make(map[string][]*domain.WeeklyEntry)
	for _, e := range entries {
		byStore[e.StoreCode] = append(byStore[e.StoreCode], e)
	}

	series := make(map[string][]*domain.TimeSeriesPoint, len(byStore))
	for storeCode, storeEntries := range byStore {
		series[storeCode] = buildSeries(storeEntries)
	}

	return series, nil
}

// StorePerformance soma vendas, transações e custo de mão de obra por loja no
// período, ordena por vendas totais decrescentes (empates mantêm a ordem de
// chegada) e atribui o performance score conforme a política configurada.
func (s *Service) StorePerformance(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.StorePerformance, error) {
	entries, err := s.fetch(ctx, filters, claims)
	if err != nil {
		return nil, err
	}

	storeNames, err := s.storeNames(ctx)
	if err != nil {
		return nil, err
	}

	type storeTotals struct {
		perf    *domain.StorePerformance
		pySales float64
	}

	totalsByStore := make(map[string]*storeTotals)
	order := make([]string, 0)

	for _, e := range entries {
		totals, ok := totalsByStore[e.StoreCode]
		if !ok {
			totals = &storeTotals{perf: &domain.StorePerformance{
				StoreCode: e.StoreCode,
				StoreName: storeNames[e.StoreCode],
			}}
			totalsByStore[e.StoreCode] = totals
			order = append(order, e.StoreCode)
		}

		totals.perf.TotalSales += e.TotalSales
		totals.perf.TotalTransactions += e.NumTransactions
		totals.perf.TotalLaborCost += e.TotalLaborCost
		totals.perf.WeeksReported++
		if e.TotalSalesPy != nil {
			totals.pySales += *e.TotalSalesPy
		}
	}

	performances := make([]*domain.StorePerformance, 0, len(order))
	for _, storeCode := range order {
		totals := totalsByStore[storeCode]
		perf := totals.perf

		perf.LaborCostPercent = utils.RoundWithTwoDecimalPlace(domain.SafePercent(perf.TotalLaborCost, perf.TotalSales))
		perf.SalesYoYPercent = utils.RoundWithTwoDecimalPlace(domain.YoYDelta(perf.TotalSales, totals.pySales))
		perf.PerformanceScore = s.performanceScore(perf)

		performances = append(performances, perf)
	}

	sort.SliceStable(performances, func(i, j int) bool {
		return performances[i].TotalSales > performances[j].TotalSales
	})

	for i, perf := range performances {
		perf.Rank = i + 1
	}

	return performances, nil
}

// performanceScore aplica os três sinais ponderados da política: crescimento
// ano a ano positivo, volume médio semanal acima do limiar e custo de mão de
// obra abaixo do limiar. O resultado fica limitado a [0, 100].
func (s *Service) performanceScore(perf *domain.StorePerformance) float64 {
	var score float64

	if perf.SalesYoYPercent > 0 {
		score += s.score.GrowthWeight
	}

	avgWeeklySales := perf.TotalSales
	if perf.WeeksReported > 0 {
		avgWeeklySales = perf.TotalSales / float64(perf.WeeksReported)
	}
	if avgWeeklySales >= s.score.VolumeThreshold {
		score += s.score.VolumeWeight
	}

	if perf.LaborCostPercent > 0 && perf.LaborCostPercent < s.score.LaborThreshold {
		score += s.score.LaborWeight
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score
}

func (s *Service) DetailedEntries(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]*domain.WeeklyEntry, error) {
	return s.fetch(ctx, filters, claims)
}

var csvHeader = []string{
	"store_code", "week_iso", "week_ending",
	"total_sales", "num_transactions", "variable_hours", "average_wage", "total_fixed_cost",
	"variable_labor_cost", "total_labor_cost", "total_labor_percent",
	"avg_transaction_value", "sales_per_labor_hour", "transactions_per_labor_hour",
	"notes",
}

// ExportCSV serializa as entradas detalhadas do período com escape CSV
// completo; notas com vírgulas ou aspas saem corretamente citadas.
func (s *Service) ExportCSV(ctx context.Context, filters *domain.ReportFilters, claims *domain.Claims) ([]byte, error) {
	entries, err := s.fetch(ctx, filters, claims)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, e := range entries {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}

		record := []string{
			e.StoreCode,
			e.WeekISO,
			e.WeekEnding.Format(time.DateOnly),
			formatFloat(e.TotalSales),
			strconv.Itoa(e.NumTransactions),
			formatFloat(e.VariableHours),
			formatFloat(e.AverageWage),
			formatFloat(e.TotalFixedCost),
			formatFloat(e.VariableLaborCost),
			formatFloat(e.TotalLaborCost),
			formatFloat(e.TotalLaborPercent),
			formatFloat(e.AvgTransactionValue),
			formatFloat(e.SalesPerLaborHour),
			formatFloat(e.TransactionsPerLaborHour),
			notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(v), 'f', -1, 64)
}

// storeNames carrega o mapa código -> nome das lojas ativas para rotular o
// desempenho por loja.
func (s *Service) storeNames(ctx context.Context) (map[string]string, error) {
	stores, err := s.storeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(stores))
	for _, store := range stores {
		names[store.Code] = store.Name
	}

	return names, nil
}

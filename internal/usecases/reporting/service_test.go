package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository/mocks"
	"github.com/jpcs2004/store-performance-api/internal/config"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/pkg/fiscal"
	"go.uber.org/mock/gomock"
)

func defaultScore() config.Score {
	return config.Score{
		GrowthWeight:    40,
		VolumeWeight:    30,
		LaborWeight:     30,
		VolumeThreshold: 10000,
		LaborThreshold:  30,
	}
}

func executiveClaims() *domain.Claims {
	return &domain.Claims{UserID: 10, UserRoleID: domain.RoleExecutive}
}

func managerClaims(stores ...string) *domain.Claims {
	return &domain.Claims{UserID: 20, UserRoleID: domain.RoleManager, UserStores: stores}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// entrada já persistida, com derivados calculados como o repositório faz
func entry(store string, year, week int, sales float64, transactions int, hours, wage, fixedCost float64) *domain.WeeklyEntry {
	e := &domain.WeeklyEntry{
		StoreCode:       store,
		FiscalYear:      year,
		WeekNumber:      week,
		WeekISO:         fiscal.WeekISO(year, week),
		WeekEnding:      fiscal.WeekEnding(year, week),
		TotalSales:      sales,
		NumTransactions: transactions,
		VariableHours:   hours,
		AverageWage:     wage,
		TotalFixedCost:  fixedCost,
	}
	e.Recalculate()
	return e
}

func yearFilters(year int) *domain.ReportFilters {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	return &domain.ReportFilters{StartDate: &start, EndDate: &end}
}

func TestService_Summary(t *testing.T) {
	t.Run("Resumo soma os brutos e deriva os percentuais do agregado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		first := entry("anna", 2025, 1, 10000, 200, 100, 15, 0)
		first.TotalSalesPy = floatPtr(8000)
		first.NumTransactionsPy = intPtr(180)
		first.TotalLaborCostPy = floatPtr(1400)
		second := entry("bell", 2025, 1, 20000, 400, 150, 16, 600)

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), "2025-01", gomock.Any(), gomock.Nil()).
			Return([]*domain.WeeklyEntry{first, second}, nil)

		summary, err := service.Summary(context.Background(), yearFilters(2025), executiveClaims())
		assert.NoError(t, err)

		assert.Equal(t, 30000.0, summary.TotalSales)
		assert.Equal(t, 600, summary.TotalTransactions)
		assert.Equal(t, 1500.0+3000.0, summary.TotalLaborCost)
		assert.Equal(t, 250.0, summary.TotalLaborHours)
		assert.Equal(t, 2, summary.EntryCount)
		assert.Equal(t, 2, summary.StoreCount)

		assert.Equal(t, 50.0, summary.AvgTransactionValue)
		assert.Equal(t, 15.0, summary.LaborCostPercent)
		assert.Equal(t, 120.0, summary.SalesPerLaborHour)
		assert.Equal(t, 2.4, summary.TransactionsPerLaborHour)

		// variação calculada só contra o sombreamento presente
		assert.Equal(t, 275.0, summary.SalesYoYPercent)
		assert.InDelta(t, 233.33, summary.TransactionsYoYPercent, 0.001)
		assert.InDelta(t, 221.43, summary.LaborCostYoYPercent, 0.001)
	})

	t.Run("Período sem entradas devolve resumo zerado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return([]*domain.WeeklyEntry{}, nil)

		summary, err := service.Summary(context.Background(), yearFilters(2025), executiveClaims())
		assert.NoError(t, err)
		assert.Equal(t, 0.0, summary.TotalSales)
		assert.Equal(t, 0.0, summary.AvgTransactionValue)
		assert.Equal(t, 0.0, summary.SalesYoYPercent)
		assert.Equal(t, 0, summary.EntryCount)
	})

	t.Run("Gerente sem lojas atribuídas não consulta o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		summary, err := service.Summary(context.Background(), yearFilters(2025), managerClaims())
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.EntryCount)
	})

	t.Run("Gerente consulta apenas a interseção com as lojas atribuídas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), []string{"anna"}).
			Return([]*domain.WeeklyEntry{}, nil)

		filters := yearFilters(2025)
		filters.Stores = []string{"anna", "cole"}

		_, err := service.Summary(context.Background(), filters, managerClaims("anna", "bell"))
		assert.NoError(t, err)
	})
}

func TestService_TimeSeries(t *testing.T) {
	t.Run("Semanas sem entradas não geram pontos sintéticos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return([]*domain.WeeklyEntry{
				entry("anna", 2025, 1, 10000, 200, 100, 15, 0),
				entry("anna", 2025, 3, 12000, 240, 110, 15, 0),
			}, nil)

		points, err := service.TimeSeries(context.Background(), yearFilters(2025), executiveClaims())
		assert.NoError(t, err)
		assert.Len(t, points, 2)
		assert.Equal(t, "2025-01", points[0].Period)
		assert.Equal(t, "2025-03", points[1].Period)
	})

	t.Run("Entradas da mesma semana são agregadas em um único ponto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		first := entry("anna", 2025, 1, 10000, 200, 100, 15, 0)
		first.TotalSalesPy = floatPtr(9000)
		first.NumTransactionsPy = intPtr(150)
		first.TotalLaborCostPy = floatPtr(1300)
		second := entry("bell", 2025, 1, 5000, 100, 50, 14, 0)

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return([]*domain.WeeklyEntry{first, second}, nil)

		points, err := service.TimeSeries(context.Background(), yearFilters(2025), executiveClaims())
		assert.NoError(t, err)
		assert.Len(t, points, 1)

		point := points[0]
		assert.Equal(t, 15000.0, point.Sales)
		assert.Equal(t, 300, point.Transactions)
		assert.Equal(t, 2200.0, point.LaborCost)
		assert.Equal(t, 150.0, point.LaborHours)
		assert.Equal(t, 50.0, point.AvgTransaction)
		assert.Equal(t, fiscal.WeekEnding(2025, 1), point.WeekEnding)

		assert.NotNil(t, point.PreviousYear)
		assert.Equal(t, 9000.0, point.PreviousYear.Sales)
		assert.Equal(t, 150, point.PreviousYear.Transactions)
		assert.Equal(t, 60.0, point.PreviousYear.AvgTransaction)
	})

	t.Run("Ponto sem sombreamento não carrega ano anterior", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo, defaultScore())

		entryRepo.EXPECT().
			ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return([]*domain.WeeklyEntry{entry("anna", 2025, 5, 10000, 200, 100, 15, 0)}, nil)

		points, err := service.TimeSeries(context.Background(), yearFilters(2025), executiveClaims())
		assert.NoError(t, err)
		assert.Nil(t, points[0].PreviousYear)
	})
}

func TestService_TimeSeriesByStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo, defaultScore())

	entryRepo.EXPECT().
		ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]*domain.WeeklyEntry{
			entry("anna", 2025, 1, 10000, 200, 100, 15, 0),
			entry("bell", 2025, 1, 5000, 100, 50, 14, 0),
			entry("anna", 2025, 2, 11000, 220, 100, 15, 0),
		}, nil)

	series, err := service.TimeSeriesByStore(context.Background(), yearFilters(2025), executiveClaims())
	assert.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Len(t, series["anna"], 2)
	assert.Len(t, series["bell"], 1)
	assert.Equal(t, "2025-01", series["anna"][0].Period)
	assert.Equal(t, "2025-02", series["anna"][1].Period)
	assert.Equal(t, 5000.0, series["bell"][0].Sales)
}

func TestService_StorePerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo, defaultScore())

	// anna: duas semanas, crescimento positivo, volume médio 12500,
	// mão de obra ~12% -> pontua nos três sinais
	annaW1 := entry("anna", 2025, 1, 12000, 240, 100, 15, 0)
	annaW1.TotalSalesPy = floatPtr(10000)
	annaW2 := entry("anna", 2025, 2, 13000, 260, 100, 15, 0)

	// bell: uma semana, sem sombreamento, volume abaixo do limiar,
	// mão de obra acima do limiar -> não pontua
	bellW1 := entry("bell", 2025, 1, 5000, 100, 120, 14, 0)

	entryRepo.EXPECT().
		ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]*domain.WeeklyEntry{bellW1, annaW1, annaW2}, nil)
	storeRepo.EXPECT().
		ListActive(gomock.Any()).
		Return([]*domain.Store{
			{Code: "anna", Name: "Loja Anna", Active: true},
			{Code: "bell", Name: "Loja Bell", Active: true},
		}, nil)

	performances, err := service.StorePerformance(context.Background(), yearFilters(2025), executiveClaims())
	assert.NoError(t, err)
	assert.Len(t, performances, 2)

	top := performances[0]
	assert.Equal(t, "anna", top.StoreCode)
	assert.Equal(t, "Loja Anna", top.StoreName)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 25000.0, top.TotalSales)
	assert.Equal(t, 2, top.WeeksReported)
	assert.Equal(t, 150.0, top.SalesYoYPercent)
	assert.Equal(t, 12.0, top.LaborCostPercent)
	assert.Equal(t, 100.0, top.PerformanceScore)

	second := performances[1]
	assert.Equal(t, "bell", second.StoreCode)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, 5000.0, second.TotalSales)
	assert.Equal(t, 0.0, second.SalesYoYPercent)
	assert.Equal(t, 33.6, second.LaborCostPercent)
	assert.Equal(t, 0.0, second.PerformanceScore)
}

func TestService_ExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo, defaultScore())

	withNotes := entry("anna", 2025, 1, 15000, 350, 120.5, 15.50, 0)
	notes := `liquidação de "inverno", loja cheia`
	withNotes.Notes = &notes

	entryRepo.EXPECT().
		ListByWeekRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]*domain.WeeklyEntry{withNotes}, nil)

	data, err := service.ExportCSV(context.Background(), yearFilters(2025), executiveClaims())
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])

	// notas com vírgula e aspas saem citadas com aspas dobradas
	assert.Contains(t, lines[1], `"liquidação de ""inverno"", loja cheia"`)
	assert.True(t, strings.HasPrefix(lines[1], "anna,2025-01,2025-01-07,15000,350,120.5,15.5,0,"))
}

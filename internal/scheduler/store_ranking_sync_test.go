package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository/mocks"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestStoreRankingSyncService_ProcessWithDate(t *testing.T) {
	// Data de referência: 16 de janeiro processa o mês de ontem (15 de janeiro)
	processingDate := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)
	month := "01-2025"

	activeStores := []*domain.Store{
		{Code: "anna", Name: "Loja Anna", Active: true},
		{Code: "bell", Name: "Loja Bell", Active: true},
	}

	entries := []*domain.WeeklyEntry{
		{StoreCode: "anna", FiscalYear: 2025, WeekNumber: 1, WeekISO: "2025-01", TotalSales: 12000},
		{StoreCode: "anna", FiscalYear: 2025, WeekNumber: 2, WeekISO: "2025-02", TotalSales: 13000},
		{StoreCode: "bell", FiscalYear: 2025, WeekNumber: 1, WeekISO: "2025-01", TotalSales: 10000},
	}

	tests := []struct {
		name     string
		setup    func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository, rankingRepo *mocks.MockStoreRankingRepository)
		validate func(t *testing.T, result []*domain.StoreRankingItem, err error)
	}{
		{
			name: "Primeira materialização do mês - posições sem variação",
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository, rankingRepo *mocks.MockStoreRankingRepository) {
				storeRepo.EXPECT().ListActive(gomock.Any()).Return(activeStores, nil)
				entryRepo.EXPECT().
					ListByWeekRange(gomock.Any(), "2025-01", "2025-03", gomock.Nil()).
					Return(entries, nil)
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "anna", month).Return(nil, nil)
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "bell", month).Return(nil, nil)
				rankingRepo.EXPECT().SaveOrUpdateStoreRanking(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.StoreRankingItem, err error) {
				assert.NoError(t, err)
				assert.Len(t, result, 2)

				assert.Equal(t, "anna", result[0].StoreCode)
				assert.Equal(t, month, result[0].Month)
				assert.Equal(t, "Loja Anna", result[0].StoreName)
				assert.Equal(t, 25000.0, result[0].TotalSales)
				assert.Equal(t, 1, result[0].Position)
				assert.Equal(t, 0, result[0].PositionChange)
				assert.Equal(t, 0, result[0].PreviousPosition)

				assert.Equal(t, "bell", result[1].StoreCode)
				assert.Equal(t, 10000.0, result[1].TotalSales)
				assert.Equal(t, 2, result[1].Position)
			},
		},
		{
			name: "Snapshot anterior existente - calcula a variação de posição",
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository, rankingRepo *mocks.MockStoreRankingRepository) {
				storeRepo.EXPECT().ListActive(gomock.Any()).Return(activeStores, nil)
				entryRepo.EXPECT().
					ListByWeekRange(gomock.Any(), "2025-01", "2025-03", gomock.Nil()).
					Return(entries, nil)

				// No snapshot anterior bell liderava e anna era a segunda
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "anna", month).
					Return(&domain.StoreRankingItem{StoreCode: "anna", Month: month, Position: 2}, nil)
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "bell", month).
					Return(&domain.StoreRankingItem{StoreCode: "bell", Month: month, Position: 1}, nil)
				rankingRepo.EXPECT().SaveOrUpdateStoreRanking(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.StoreRankingItem, err error) {
				assert.NoError(t, err)
				assert.Len(t, result, 2)

				assert.Equal(t, "anna", result[0].StoreCode)
				assert.Equal(t, 1, result[0].Position)
				assert.Equal(t, 1, result[0].PositionChange) // subiu da 2ª para a 1ª
				assert.Equal(t, 2, result[0].PreviousPosition)

				assert.Equal(t, "bell", result[1].StoreCode)
				assert.Equal(t, 2, result[1].Position)
				assert.Equal(t, -1, result[1].PositionChange) // caiu da 1ª para a 2ª
				assert.Equal(t, 1, result[1].PreviousPosition)
			},
		},
		{
			name: "Loja sem entradas no mês entra no ranking com vendas zeradas",
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository, rankingRepo *mocks.MockStoreRankingRepository) {
				storeRepo.EXPECT().ListActive(gomock.Any()).Return(activeStores, nil)
				entryRepo.EXPECT().
					ListByWeekRange(gomock.Any(), "2025-01", "2025-03", gomock.Nil()).
					Return([]*domain.WeeklyEntry{
						{StoreCode: "anna", FiscalYear: 2025, WeekNumber: 1, WeekISO: "2025-01", TotalSales: 12000},
					}, nil)
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "anna", month).Return(nil, nil)
				rankingRepo.EXPECT().GetByStoreCode(gomock.Any(), "bell", month).Return(nil, nil)
				rankingRepo.EXPECT().SaveOrUpdateStoreRanking(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.StoreRankingItem, err error) {
				assert.NoError(t, err)
				assert.Len(t, result, 2)
				assert.Equal(t, "bell", result[1].StoreCode)
				assert.Equal(t, 0.0, result[1].TotalSales)
				assert.Equal(t, 2, result[1].Position)
			},
		},
		{
			name: "Nenhuma loja ativa - não materializa nada",
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository, rankingRepo *mocks.MockStoreRankingRepository) {
				storeRepo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Store{}, nil)
			},
			validate: func(t *testing.T, result []*domain.StoreRankingItem, err error) {
				assert.NoError(t, err)
				assert.Empty(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			entryRepo := mocks.NewMockEntryRepository(ctrl)
			storeRepo := mocks.NewMockStoreRepository(ctrl)
			rankingRepo := mocks.NewMockStoreRankingRepository(ctrl)
			tt.setup(entryRepo, storeRepo, rankingRepo)

			service := &StoreRankingSyncService{
				entryRepo:   entryRepo,
				storeRepo:   storeRepo,
				rankingRepo: rankingRepo,
			}

			result, err := service.ProcessWithDate(context.Background(), processingDate)
			tt.validate(t, result, err)
		})
	}
}

func TestGetFirstDayOfMonth(t *testing.T) {
	date := time.Date(2025, 3, 17, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), getFirstDayOfMonth(date))
}

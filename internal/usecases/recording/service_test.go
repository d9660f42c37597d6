package recording

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository/mocks"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func executiveClaims() *domain.Claims {
	return &domain.Claims{UserID: 10, UserRoleID: domain.RoleExecutive}
}

func managerClaims(stores ...string) *domain.Claims {
	return &domain.Claims{UserID: 20, UserRoleID: domain.RoleManager, UserStores: stores}
}

func floatPtr(f float64) *float64 { return &f }

// persistindo via mock: atribui id e recalcula derivados como o repositório real
func echoCreate(mockRepo *mocks.MockEntryRepository) {
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, carryForward bool) (*domain.WeeklyEntry, error) {
			entry.ID = 1
			entry.Recalculate()
			return entry, nil
		})
}

func validInput() *domain.EntryInput {
	return &domain.EntryInput{
		StoreCode:       "anna",
		FiscalYear:      2025,
		WeekNumber:      1,
		TotalSales:      15000,
		NumTransactions: 350,
		VariableHours:   120.5,
		AverageWage:     15.50,
	}
}

func TestService_Submit(t *testing.T) {
	annaStore := &domain.Store{Code: "anna", Name: "Loja Anna", Active: true}

	tests := []struct {
		name     string
		claims   *domain.Claims
		input    *domain.EntryInput
		setup    func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository)
		validate func(t *testing.T, entry *domain.WeeklyEntry, err error)
	}{
		{
			name:   "Submissão válida calcula os campos derivados",
			claims: executiveClaims(),
			input:  validInput(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {
				storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil)
				echoCreate(entryRepo)
			},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "2025-01", entry.WeekISO)
				assert.Equal(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), entry.WeekEnding)
				assert.Equal(t, 1867.75, entry.VariableLaborCost)
				assert.InDelta(t, 42.857, entry.AvgTransactionValue, 0.001)
				assert.InDelta(t, 12.45, entry.TotalLaborPercent, 0.01)
				assert.Equal(t, 10, entry.CreatedBy)
			},
		},
		{
			name:   "Custo fixo omitido dispara a herança no repositório",
			claims: executiveClaims(),
			input:  validInput(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {
				storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil)
				entryRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), true).
					DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, _ bool) (*domain.WeeklyEntry, error) {
						entry.TotalFixedCost = 300 // valor herdado da semana anterior
						entry.Recalculate()
						return entry, nil
					})
			},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 300.0, entry.TotalFixedCost)
				assert.Equal(t, 1867.75+300, entry.TotalLaborCost)
			},
		},
		{
			name:   "Custo fixo informado não dispara herança",
			claims: executiveClaims(),
			input: func() *domain.EntryInput {
				in := validInput()
				in.TotalFixedCost = floatPtr(500)
				return in
			}(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {
				storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil)
				entryRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), false).
					DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, _ bool) (*domain.WeeklyEntry, error) {
						entry.Recalculate()
						return entry, nil
					})
			},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 500.0, entry.TotalFixedCost)
			},
		},
		{
			name:   "Identidade duplicada devolve DuplicateEntry",
			claims: executiveClaims(),
			input:  validInput(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {
				storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil)
				entryRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrDuplicateEntry)
			},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
				assert.Nil(t, entry)
			},
		},
		{
			name:   "Gerente não grava fora das lojas atribuídas",
			claims: managerClaims("bell"),
			input:  validInput(),
			setup:  func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrStoreForbidden)
			},
		},
		{
			name:   "Loja desconhecida devolve StoreNotFound",
			claims: executiveClaims(),
			input: func() *domain.EntryInput {
				in := validInput()
				in.StoreCode = "zzzz"
				return in
			}(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {
				storeRepo.EXPECT().GetByCode(gomock.Any(), "zzzz").Return(nil, nil)
			},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				assert.ErrorIs(t, err, domain.ErrStoreNotFound)
			},
		},
		{
			name:   "Ano fiscal fora da faixa é rejeitado na validação",
			claims: executiveClaims(),
			input: func() *domain.EntryInput {
				in := validInput()
				in.FiscalYear = 2019
				return in
			}(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Fields, "fiscal_year")
			},
		},
		{
			name:   "Valores negativos são rejeitados na validação",
			claims: executiveClaims(),
			input: func() *domain.EntryInput {
				in := validInput()
				in.TotalSales = -100
				in.VariableHours = -1
				return in
			}(),
			setup: func(entryRepo *mocks.MockEntryRepository, storeRepo *mocks.MockStoreRepository) {},
			validate: func(t *testing.T, entry *domain.WeeklyEntry, err error) {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Fields, "total_sales")
				assert.Contains(t, validationErr.Fields, "variable_hours")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			entryRepo := mocks.NewMockEntryRepository(ctrl)
			storeRepo := mocks.NewMockStoreRepository(ctrl)
			tt.setup(entryRepo, storeRepo)

			service := NewService(entryRepo, storeRepo)
			entry, err := service.Submit(context.Background(), tt.input, tt.claims)
			tt.validate(t, entry, err)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo)

	t.Run("Entrada inexistente devolve NotFound", func(t *testing.T) {
		entryRepo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)

		_, err := service.Update(context.Background(), 99, &domain.EntryPatch{}, executiveClaims())
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("Gerente não atualiza entrada de loja não atribuída", func(t *testing.T) {
		entryRepo.EXPECT().GetByID(gomock.Any(), int64(5)).
			Return(&domain.WeeklyEntry{ID: 5, StoreCode: "cole"}, nil)

		_, err := service.Update(context.Background(), 5, &domain.EntryPatch{}, managerClaims("anna"))
		assert.ErrorIs(t, err, domain.ErrStoreForbidden)
	})

	t.Run("Atualização delega o patch ao repositório", func(t *testing.T) {
		patch := &domain.EntryPatch{TotalSales: floatPtr(18000)}

		entryRepo.EXPECT().GetByID(gomock.Any(), int64(5)).
			Return(&domain.WeeklyEntry{ID: 5, StoreCode: "anna"}, nil)
		entryRepo.EXPECT().Update(gomock.Any(), int64(5), patch).
			Return(&domain.WeeklyEntry{ID: 5, StoreCode: "anna", TotalSales: 18000}, nil)

		updated, err := service.Update(context.Background(), 5, patch, executiveClaims())
		assert.NoError(t, err)
		assert.Equal(t, 18000.0, updated.TotalSales)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo)

	t.Run("Exclusão de id desconhecido devolve NotFound", func(t *testing.T) {
		entryRepo.EXPECT().GetByID(gomock.Any(), int64(404)).Return(nil, nil)

		err := service.Delete(context.Background(), 404, executiveClaims())
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("Exclusão autorizada remove a linha", func(t *testing.T) {
		entryRepo.EXPECT().GetByID(gomock.Any(), int64(7)).
			Return(&domain.WeeklyEntry{ID: 7, StoreCode: "anna"}, nil)
		entryRepo.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)

		err := service.Delete(context.Background(), 7, managerClaims("anna"))
		assert.NoError(t, err)
	})
}

func TestService_GetLastWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	storeRepo := mocks.NewMockStoreRepository(ctrl)
	service := NewService(entryRepo, storeRepo)

	t.Run("Retorna a última entrada e o término da próxima semana", func(t *testing.T) {
		weekEnding := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
		entryRepo.EXPECT().GetLastByStore(gomock.Any(), "anna").
			Return(&domain.WeeklyEntry{StoreCode: "anna", FiscalYear: 2025, WeekNumber: 1, WeekEnding: weekEnding, TotalFixedCost: 300}, nil)

		data, err := service.GetLastWeek(context.Background(), "anna", executiveClaims())
		assert.NoError(t, err)
		assert.NotNil(t, data.Entry)
		assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), *data.NextWeekEnding)
	})

	t.Run("Loja sem entradas devolve dados vazios", func(t *testing.T) {
		entryRepo.EXPECT().GetLastByStore(gomock.Any(), "bell").Return(nil, nil)

		data, err := service.GetLastWeek(context.Background(), "bell", executiveClaims())
		assert.NoError(t, err)
		assert.Nil(t, data.Entry)
		assert.Nil(t, data.NextWeekEnding)
	})

	t.Run("Gerente não consulta loja fora da atribuição", func(t *testing.T) {
		_, err := service.GetLastWeek(context.Background(), "cole", managerClaims("anna"))
		assert.ErrorIs(t, err, domain.ErrStoreForbidden)
	})
}

func validRow(store string, week string) map[string]string {
	return map[string]string{
		"store_code":       store,
		"fiscal_year":      "2025",
		"week_number":      week,
		"total_sales":      "12000",
		"variable_hours":   "100",
		"num_transactions": "280",
		"average_wage":     "16",
	}
}

func TestService_ImportBatch(t *testing.T) {
	annaStore := &domain.Store{Code: "anna", Name: "Loja Anna", Active: true}

	t.Run("Linha malformada não aborta o lote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo)

		rows := []map[string]string{
			validRow("anna", "1"),
			{"store_code": "anna"}, // faltam os campos numéricos
			validRow("anna", "3"),
		}

		storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil).Times(2)
		entryRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, _ bool) (*domain.WeeklyEntry, error) {
				entry.Recalculate()
				return entry, nil
			}).
			Times(2)

		result, err := service.ImportBatch(context.Background(), rows, executiveClaims())
		assert.NoError(t, err)
		assert.Equal(t, 2, result.SuccessfulCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row) // linha com base 1
		assert.Contains(t, result.Errors[0].Message, "fiscal_year")
		assert.NotEmpty(t, result.BatchID)
	})

	t.Run("Duplicata em uma linha não desfaz as anteriores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo)

		rows := []map[string]string{
			validRow("anna", "1"),
			validRow("anna", "1"), // mesma identidade
		}

		storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil).Times(2)
		first := entryRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, _ bool) (*domain.WeeklyEntry, error) {
				entry.Recalculate()
				return entry, nil
			})
		entryRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrDuplicateEntry).
			After(first)

		result, err := service.ImportBatch(context.Background(), rows, executiveClaims())
		assert.NoError(t, err)
		assert.Equal(t, 1, result.SuccessfulCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Equal(t, 2, result.Errors[0].Row)
	})

	t.Run("Gerente importa apenas lojas atribuídas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		entryRepo := mocks.NewMockEntryRepository(ctrl)
		storeRepo := mocks.NewMockStoreRepository(ctrl)
		service := NewService(entryRepo, storeRepo)

		rows := []map[string]string{
			validRow("anna", "1"),
			validRow("cole", "1"), // fora da atribuição
		}

		storeRepo.EXPECT().GetByCode(gomock.Any(), "anna").Return(annaStore, nil)
		entryRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.WeeklyEntry, _ bool) (*domain.WeeklyEntry, error) {
				entry.Recalculate()
				return entry, nil
			})

		result, err := service.ImportBatch(context.Background(), rows, managerClaims("anna"))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.SuccessfulCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Message, "acesso")
	})
}

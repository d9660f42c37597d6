// Package recording implementa a entrada de dados semanais: submissão manual,
// atualização, exclusão e importação em lote.
package recording

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authorizing"
	"github.com/jpcs2004/store-performance-api/pkg/fiscal"
	"github.com/jpcs2004/store-performance-api/pkg/utils"
)

// Campos obrigatórios de uma linha de importação, na grafia aceita no arquivo.
var requiredRowFields = []string{
	"store_code",
	"fiscal_year",
	"week_number",
	"total_sales",
	"variable_hours",
	"num_transactions",
	"average_wage",
}

type Recorder interface {
	Submit(ctx context.Context, input *domain.EntryInput, claims *domain.Claims) (*domain.WeeklyEntry, error)
	Update(ctx context.Context, id int64, patch *domain.EntryPatch, claims *domain.Claims) (*domain.WeeklyEntry, error)
	Delete(ctx context.Context, id int64, claims *domain.Claims) error
	GetLastWeek(ctx context.Context, storeCode string, claims *domain.Claims) (*domain.LastWeekData, error)
	ImportBatch(ctx context.Context, rows []map[string]string, claims *domain.Claims) (*domain.BatchImportResult, error)
}

type Service struct {
	entryRepo repository.EntryRepository
	storeRepo repository.StoreRepository
}

func NewService(entryRepo repository.EntryRepository, storeRepo repository.StoreRepository) Recorder {
	return &Service{
		entryRepo: entryRepo,
		storeRepo: storeRepo,
	}
}

// Submit valida, autoriza e persiste uma entrada semanal. O custo fixo omitido
// é herdado da entrada anterior da loja dentro da mesma transação de inserção.
func (s *Service) Submit(ctx context.Context, input *domain.EntryInput, claims *domain.Claims) (*domain.WeeklyEntry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if !authorizing.CanWriteStore(claims, input.StoreCode) {
		return nil, domain.ErrStoreForbidden
	}

	store, err := s.storeRepo.GetByCode(ctx, input.StoreCode)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}

	entry := &domain.WeeklyEntry{
		StoreCode:         input.StoreCode,
		FiscalYear:        input.FiscalYear,
		WeekNumber:        input.WeekNumber,
		WeekISO:           fiscal.WeekISO(input.FiscalYear, input.WeekNumber),
		WeekEnding:        fiscal.WeekEnding(input.FiscalYear, input.WeekNumber),
		TotalSales:        input.TotalSales,
		NumTransactions:   input.NumTransactions,
		VariableHours:     input.VariableHours,
		AverageWage:       input.AverageWage,
		Notes:             input.Notes,
		TotalSalesPy:      input.TotalSalesPy,
		NumTransactionsPy: input.NumTransactionsPy,
		TotalLaborCostPy:  input.TotalLaborCostPy,
		VariableHoursPy:   input.VariableHoursPy,
		CreatedBy:         claims.UserID,
	}

	carryForward := input.TotalFixedCost == nil
	if !carryForward {
		entry.TotalFixedCost = *input.TotalFixedCost
	}

	return s.entryRepo.Create(ctx, entry, carryForward)
}

// Update aceita apenas campos brutos; os derivados são recalculados sobre o
// estado mesclado. Identidade da entrada é imutável.
func (s *Service) Update(ctx context.Context, id int64, patch *domain.EntryPatch, claims *domain.Claims) (*domain.WeeklyEntry, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrEntryNotFound
	}

	if !authorizing.CanWriteStore(claims, existing.StoreCode) {
		return nil, domain.ErrStoreForbidden
	}

	return s.entryRepo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64, claims *domain.Claims) error {
	existing, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrEntryNotFound
	}

	if !authorizing.CanWriteStore(claims, existing.StoreCode) {
		return domain.ErrStoreForbidden
	}

	return s.entryRepo.Delete(ctx, id)
}

// GetLastWeek retorna a entrada mais recente da loja e o término da semana
// seguinte, para pré-preencher a próxima submissão.
func (s *Service) GetLastWeek(ctx context.Context, storeCode string, claims *domain.Claims) (*domain.LastWeekData, error) {
	if !authorizing.CanWriteStore(claims, storeCode) {
		return nil, domain.ErrStoreForbidden
	}

	entry, err := s.entryRepo.GetLastByStore(ctx, storeCode)
	if err != nil {
		return nil, err
	}

	data := &domain.LastWeekData{Entry: entry}
	if entry != nil {
		next := entry.WeekEnding.AddDate(0, 0, 7)
		data.NextWeekEnding = &next
	}

	return data, nil
}

// ImportBatch processa as linhas na ordem de entrada com isolamento por linha:
// cada inserção roda em transação própria, e uma linha inválida nunca aborta o
// lote nem desfaz linhas anteriores.
func (s *Service) ImportBatch(ctx context.Context, rows []map[string]string, claims *domain.Claims) (*domain.BatchImportResult, error) {
	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	result := &domain.BatchImportResult{
		BatchID: batchID,
		Errors:  make([]domain.BatchRowError, 0),
	}

	for i, row := range rows {
		rowNumber := i + 1

		input, err := parseRow(row)
		if err == nil {
			_, err = s.Submit(ctx, input, claims)
		}

		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, domain.BatchRowError{
				Row:     rowNumber,
				Message: err.Error(),
			})
			continue
		}

		result.SuccessfulCount++
	}

	logrus.WithFields(logrus.Fields{
		"batch_id":   batchID,
		"total":      len(rows),
		"successful": result.SuccessfulCount,
		"failed":     result.FailedCount,
	}).Info("Importação em lote concluída")

	return result, nil
}

// parseRow converte uma linha bruta de importação em EntryInput, acusando
// campos obrigatórios ausentes pelo nome.
func parseRow(row map[string]string) (*domain.EntryInput, error) {
	var missing []string
	for _, field := range requiredRowFields {
		if strings.TrimSpace(row[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, newValidationError("campos obrigatórios ausentes", missing...)
	}

	input := &domain.EntryInput{
		StoreCode: strings.TrimSpace(row["store_code"]),
	}

	var err error
	if input.FiscalYear, err = parseIntField(row, "fiscal_year"); err != nil {
		return nil, err
	}
	if input.WeekNumber, err = parseIntField(row, "week_number"); err != nil {
		return nil, err
	}
	if input.TotalSales, err = parseFloatField(row, "total_sales"); err != nil {
		return nil, err
	}
	if input.VariableHours, err = parseFloatField(row, "variable_hours"); err != nil {
		return nil, err
	}
	if input.NumTransactions, err = parseIntField(row, "num_transactions"); err != nil {
		return nil, err
	}
	if input.AverageWage, err = parseFloatField(row, "average_wage"); err != nil {
		return nil, err
	}

	if strings.TrimSpace(row["total_fixed_cost"]) != "" {
		fixedCost, err := parseFloatField(row, "total_fixed_cost")
		if err != nil {
			return nil, err
		}
		input.TotalFixedCost = &fixedCost
	}

	if notes := strings.TrimSpace(row["notes"]); notes != "" {
		input.Notes = &notes
	}

	return input, nil
}

func parseIntField(row map[string]string, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(row[field]))
	if err != nil {
		return 0, newValidationError(fmt.Sprintf("valor inválido para %s: %q", field, row[field]), field)
	}
	return value, nil
}

func parseFloatField(row map[string]string, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(row[field]), 64)
	if err != nil {
		return 0, newValidationError(fmt.Sprintf("valor inválido para %s: %q", field, row[field]), field)
	}
	return value, nil
}

func validateInput(input *domain.EntryInput) error {
	var fields []string

	if strings.TrimSpace(input.StoreCode) == "" {
		fields = append(fields, "store_code")
	}
	if !fiscal.ValidYear(input.FiscalYear) {
		fields = append(fields, "fiscal_year")
	}
	if !fiscal.ValidWeek(input.WeekNumber) {
		fields = append(fields, "week_number")
	}
	if input.TotalSales < 0 {
		fields = append(fields, "total_sales")
	}
	if input.NumTransactions < 0 {
		fields = append(fields, "num_transactions")
	}
	if input.VariableHours < 0 {
		fields = append(fields, "variable_hours")
	}
	if input.AverageWage < 0 {
		fields = append(fields, "average_wage")
	}
	if input.TotalFixedCost != nil && *input.TotalFixedCost < 0 {
		fields = append(fields, "total_fixed_cost")
	}

	if len(fields) > 0 {
		return newValidationError("entrada inválida", fields...)
	}

	return nil
}

func validatePatch(patch *domain.EntryPatch) error {
	var fields []string

	if patch.TotalSales != nil && *patch.TotalSales < 0 {
		fields = append(fields, "total_sales")
	}
	if patch.NumTransactions != nil && *patch.NumTransactions < 0 {
		fields = append(fields, "num_transactions")
	}
	if patch.VariableHours != nil && *patch.VariableHours < 0 {
		fields = append(fields, "variable_hours")
	}
	if patch.AverageWage != nil && *patch.AverageWage < 0 {
		fields = append(fields, "average_wage")
	}
	if patch.TotalFixedCost != nil && *patch.TotalFixedCost < 0 {
		fields = append(fields, "total_fixed_cost")
	}

	if len(fields) > 0 {
		return newValidationError("atualização inválida", fields...)
	}

	return nil
}

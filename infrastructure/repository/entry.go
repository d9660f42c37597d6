// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/jpcs2004/store-performance-api/infrastructure/database/postgres"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

const (
	entriesTable = "weekly_entries we"

	entryColumns = `we.id, we.store_code, we.fiscal_year, we.week_number, we.week_iso, we.week_ending,
		we.total_sales, we.num_transactions, we.variable_hours, we.average_wage, we.total_fixed_cost, we.notes,
		we.variable_labor_cost, we.total_labor_cost, we.total_labor_percent, we.variable_labor_percent,
		we.fixed_labor_percent, we.avg_transaction_value, we.sales_per_labor_hour, we.transactions_per_labor_hour,
		we.total_sales_py, we.num_transactions_py, we.total_labor_cost_py, we.variable_hours_py,
		we.created_by, we.created_at, we.updated_at`

	// Código de violação de unicidade do Postgres. A restrição UNIQUE sobre
	// (store_code, fiscal_year, week_number) é o guarda autoritativo contra
	// duplicatas; a checagem de leitura que a precede só melhora a mensagem.
	pqUniqueViolation = "23505"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *domain.WeeklyEntry, carryForwardFixedCost bool) (*domain.WeeklyEntry, error)
	Update(ctx context.Context, id int64, patch *domain.EntryPatch) (*domain.WeeklyEntry, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.WeeklyEntry, error)
	GetLastByStore(ctx context.Context, storeCode string) (*domain.WeeklyEntry, error)
	ListByWeekRange(ctx context.Context, startISO, endISO string, stores []string) ([]*domain.WeeklyEntry, error)
}

type entryRepository struct {
	conn *postgres.Connection
}

func NewEntryRepository(conn *postgres.Connection) EntryRepository {
	return &entryRepository{
		conn: conn,
	}
}

// Create insere uma entrada semanal em uma única transação: checagem de
// duplicata, herança do custo fixo quando solicitada, recálculo dos campos
// derivados e inserção com id e timestamps atribuídos pelo servidor.
func (r *entryRepository) Create(ctx context.Context, entry *domain.WeeklyEntry, carryForwardFixedCost bool) (*domain.WeeklyEntry, error) {
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		exists, err := r.identityExists(tx, entry.StoreCode, entry.FiscalYear, entry.WeekNumber)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateEntry
		}

		if carryForwardFixedCost {
			fixedCost, err := r.lastFixedCostBefore(tx, entry.StoreCode, entry.FiscalYear, entry.WeekNumber)
			if err != nil {
				return err
			}
			entry.TotalFixedCost = fixedCost
		}

		entry.Recalculate()

		query, args, err := squirrel.
			Insert("weekly_entries").
			Columns(
				"store_code", "fiscal_year", "week_number", "week_iso", "week_ending",
				"total_sales", "num_transactions", "variable_hours", "average_wage", "total_fixed_cost", "notes",
				"variable_labor_cost", "total_labor_cost", "total_labor_percent", "variable_labor_percent",
				"fixed_labor_percent", "avg_transaction_value", "sales_per_labor_hour", "transactions_per_labor_hour",
				"total_sales_py", "num_transactions_py", "total_labor_cost_py", "variable_hours_py",
				"created_by",
			).
			Values(
				entry.StoreCode, entry.FiscalYear, entry.WeekNumber, entry.WeekISO, entry.WeekEnding,
				entry.TotalSales, entry.NumTransactions, entry.VariableHours, entry.AverageWage, entry.TotalFixedCost, entry.Notes,
				entry.VariableLaborCost, entry.TotalLaborCost, entry.TotalLaborPercent, entry.VariableLaborPercent,
				entry.FixedLaborPercent, entry.AvgTransactionValue, entry.SalesPerLaborHour, entry.TransactionsPerLaborHour,
				entry.TotalSalesPy, entry.NumTransactionsPy, entry.TotalLaborCostPy, entry.VariableHoursPy,
				entry.CreatedBy,
			).
			Suffix("RETURNING id, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de inserção: %w", err)
		}

		err = tx.QueryRow(query, args...).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
				return domain.ErrDuplicateEntry
			}
			return fmt.Errorf("erro ao inserir entrada semanal: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Update aplica campos brutos parciais sobre o estado atual da linha e regrava
// todos os campos derivados. Identidade (loja, ano, semana) nunca muda.
func (r *entryRepository) Update(ctx context.Context, id int64, patch *domain.EntryPatch) (*domain.WeeklyEntry, error) {
	var entry *domain.WeeklyEntry

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Select(entryColumns).
			From(entriesTable).
			Where(squirrel.Eq{"we.id": id}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		entry, err = scanEntry(tx.QueryRow(query, args...))
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrEntryNotFound
			}
			return fmt.Errorf("erro ao buscar entrada para atualização: %w", err)
		}

		applyPatch(entry, patch)
		entry.Recalculate()

		updateSQL, updateArgs, err := squirrel.
			Update("weekly_entries").
			Set("total_sales", entry.TotalSales).
			Set("num_transactions", entry.NumTransactions).
			Set("variable_hours", entry.VariableHours).
			Set("average_wage", entry.AverageWage).
			Set("total_fixed_cost", entry.TotalFixedCost).
			Set("notes", entry.Notes).
			Set("variable_labor_cost", entry.VariableLaborCost).
			Set("total_labor_cost", entry.TotalLaborCost).
			Set("total_labor_percent", entry.TotalLaborPercent).
			Set("variable_labor_percent", entry.VariableLaborPercent).
			Set("fixed_labor_percent", entry.FixedLaborPercent).
			Set("avg_transaction_value", entry.AvgTransactionValue).
			Set("sales_per_labor_hour", entry.SalesPerLaborHour).
			Set("transactions_per_labor_hour", entry.TransactionsPerLaborHour).
			Set("total_sales_py", entry.TotalSalesPy).
			Set("num_transactions_py", entry.NumTransactionsPy).
			Set("total_labor_cost_py", entry.TotalLaborCostPy).
			Set("variable_hours_py", entry.VariableHoursPy).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de atualização: %w", err)
		}

		if err := tx.QueryRow(updateSQL, updateArgs...).Scan(&entry.UpdatedAt); err != nil {
			return fmt.Errorf("erro ao atualizar entrada semanal: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete("weekly_entries").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao excluir entrada semanal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int64) (*domain.WeeklyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns).
		From(entriesTable).
		Where(squirrel.Eq{"we.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry, err := scanEntry(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear entrada semanal: %w", err)
	}

	return entry, nil
}

// GetLastByStore retorna a entrada mais recente da loja por (ano, semana)
// decrescente; nil quando a loja ainda não tem entradas.
func (r *entryRepository) GetLastByStore(ctx context.Context, storeCode string) (*domain.WeeklyEntry, error) {
	query, args, err := squirrel.
		Select(entryColumns).
		From(entriesTable).
		Where(squirrel.Eq{"we.store_code": storeCode}).
		OrderBy("we.fiscal_year DESC", "we.week_number DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry, err := scanEntry(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear entrada semanal: %w", err)
	}

	return entry, nil
}

// ListByWeekRange retorna as entradas do intervalo de chaves week_iso em ordem
// cronológica. stores nula significa sem filtro de loja; vazia, nenhuma loja.
func (r *entryRepository) ListByWeekRange(ctx context.Context, startISO, endISO string, stores []string) ([]*domain.WeeklyEntry, error) {
	if stores != nil && len(stores) == 0 {
		return []*domain.WeeklyEntry{}, nil
	}

	queryBuilder := squirrel.
		Select(entryColumns).
		From(entriesTable).
		Where(squirrel.GtOrEq{"we.week_iso": startISO}).
		Where(squirrel.LtOrEq{"we.week_iso": endISO}).
		OrderBy("we.fiscal_year ASC", "we.week_number ASC", "we.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if stores != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"we.store_code": stores})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.WeeklyEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear entradas semanais: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// identityExistsQuery monta a checagem de duplicata sobre a identidade
// (loja, ano fiscal, semana) de uma entrada.
func identityExistsQuery(storeCode string, year, week int) (string, []interface{}, error) {
	return squirrel.
		Select("1").
		From("weekly_entries").
		Where(squirrel.Eq{"store_code": storeCode, "fiscal_year": year, "week_number": week}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *entryRepository) identityExists(tx *sql.Tx, storeCode string, year, week int) (bool, error) {
	query, args, err := identityExistsQuery(storeCode, year, week)
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var one int
	err = tx.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao checar duplicata: %w", err)
	}

	return true, nil
}

// lastFixedCostQuery seleciona o custo fixo da entrada imediatamente anterior
// a (year, week): qualquer semana de um ano fiscal anterior ou uma semana
// menor do mesmo ano, a mais recente primeiro. A ordenação por (ano, semana)
// é o que faz a herança atravessar a virada de ano.
func lastFixedCostQuery(storeCode string, year, week int) (string, []interface{}, error) {
	return squirrel.
		Select("total_fixed_cost").
		From("weekly_entries").
		Where(squirrel.Eq{"store_code": storeCode}).
		Where(squirrel.Or{
			squirrel.Lt{"fiscal_year": year},
			squirrel.And{
				squirrel.Eq{"fiscal_year": year},
				squirrel.Lt{"week_number": week},
			},
		}).
		OrderBy("fiscal_year DESC", "week_number DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// lastFixedCostBefore implementa a herança de custo fixo: o custo da entrada
// anterior mais recente da loja, ou 0 quando não há entrada anterior.
func (r *entryRepository) lastFixedCostBefore(tx *sql.Tx, storeCode string, year, week int) (float64, error) {
	query, args, err := lastFixedCostQuery(storeCode, year, week)
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var fixedCost float64
	err = tx.QueryRow(query, args...).Scan(&fixedCost)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar custo fixo anterior: %w", err)
	}

	return fixedCost, nil
}

func applyPatch(entry *domain.WeeklyEntry, patch *domain.EntryPatch) {
	if patch.TotalSales != nil {
		entry.TotalSales = *patch.TotalSales
	}
	if patch.NumTransactions != nil {
		entry.NumTransactions = *patch.NumTransactions
	}
	if patch.VariableHours != nil {
		entry.VariableHours = *patch.VariableHours
	}
	if patch.AverageWage != nil {
		entry.AverageWage = *patch.AverageWage
	}
	if patch.TotalFixedCost != nil {
		entry.TotalFixedCost = *patch.TotalFixedCost
	}
	if patch.Notes != nil {
		entry.Notes = patch.Notes
	}
	if patch.TotalSalesPy != nil {
		entry.TotalSalesPy = patch.TotalSalesPy
	}
	if patch.NumTransactionsPy != nil {
		entry.NumTransactionsPy = patch.NumTransactionsPy
	}
	if patch.TotalLaborCostPy != nil {
		entry.TotalLaborCostPy = patch.TotalLaborCostPy
	}
	if patch.VariableHoursPy != nil {
		entry.VariableHoursPy = patch.VariableHoursPy
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WeeklyEntry, error) {
	entry := &domain.WeeklyEntry{}

	err := row.Scan(
		&entry.ID,
		&entry.StoreCode,
		&entry.FiscalYear,
		&entry.WeekNumber,
		&entry.WeekISO,
		&entry.WeekEnding,
		&entry.TotalSales,
		&entry.NumTransactions,
		&entry.VariableHours,
		&entry.AverageWage,
		&entry.TotalFixedCost,
		&entry.Notes,
		&entry.VariableLaborCost,
		&entry.TotalLaborCost,
		&entry.TotalLaborPercent,
		&entry.VariableLaborPercent,
		&entry.FixedLaborPercent,
		&entry.AvgTransactionValue,
		&entry.SalesPerLaborHour,
		&entry.TransactionsPerLaborHour,
		&entry.TotalSalesPy,
		&entry.NumTransactionsPy,
		&entry.TotalLaborCostPy,
		&entry.VariableHoursPy,
		&entry.CreatedBy,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// WeeklyEntry representa o desempenho semanal de uma loja. A identidade da
// entrada é a tripla (store_code, fiscal_year, week_number); week_iso é a
// chave canônica derivada usada para ordenação e agrupamento.
type WeeklyEntry struct {
	ID         int64     `json:"id"`
	StoreCode  string    `json:"store_code"`
	FiscalYear int       `json:"fiscal_year"`
	WeekNumber int       `json:"week_number"`
	WeekISO    string    `json:"week_iso"`
	WeekEnding time.Time `json:"week_ending"`

	// Campos brutos informados pelo usuário
	TotalSales      float64 `json:"total_sales"`
	NumTransactions int     `json:"num_transactions"`
	VariableHours   float64 `json:"variable_hours"`
	AverageWage     float64 `json:"average_wage"`
	TotalFixedCost  float64 `json:"total_fixed_cost"`
	Notes           *string `json:"notes,omitempty"`

	// Campos derivados, sempre recalculados a partir dos campos brutos
	VariableLaborCost        float64 `json:"variable_labor_cost"`
	TotalLaborCost           float64 `json:"total_labor_cost"`
	TotalLaborPercent        float64 `json:"total_labor_percent"`
	VariableLaborPercent     float64 `json:"variable_labor_percent"`
	FixedLaborPercent        float64 `json:"fixed_labor_percent"`
	AvgTransactionValue      float64 `json:"avg_transaction_value"`
	SalesPerLaborHour        float64 `json:"sales_per_labor_hour"`
	TransactionsPerLaborHour float64 `json:"transactions_per_labor_hour"`

	// Valores sombra do ano anterior, usados para comparação ano a ano
	TotalSalesPy      *float64 `json:"total_sales_py,omitempty"`
	NumTransactionsPy *int     `json:"num_transactions_py,omitempty"`
	TotalLaborCostPy  *float64 `json:"total_labor_cost_py,omitempty"`
	VariableHoursPy   *float64 `json:"variable_hours_py,omitempty"`

	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryInput é o payload de criação de uma entrada semanal. TotalFixedCost
// nulo indica que o custo fixo deve ser herdado da entrada anterior da loja.
type EntryInput struct {
	StoreCode       string   `json:"store_code"`
	FiscalYear      int      `json:"fiscal_year"`
	WeekNumber      int      `json:"week_number"`
	TotalSales      float64  `json:"total_sales"`
	NumTransactions int      `json:"num_transactions"`
	VariableHours   float64  `json:"variable_hours"`
	AverageWage     float64  `json:"average_wage"`
	TotalFixedCost  *float64 `json:"total_fixed_cost"`
	Notes           *string  `json:"notes"`

	TotalSalesPy      *float64 `json:"total_sales_py"`
	NumTransactionsPy *int     `json:"num_transactions_py"`
	TotalLaborCostPy  *float64 `json:"total_labor_cost_py"`
	VariableHoursPy   *float64 `json:"variable_hours_py"`
}

// EntryPatch representa uma atualização parcial de campos brutos. Campos de
// identidade não aparecem aqui: são imutáveis após a criação.
type EntryPatch struct {
	TotalSales      *float64 `json:"total_sales"`
	NumTransactions *int     `json:"num_transactions"`
	VariableHours   *float64 `json:"variable_hours"`
	AverageWage     *float64 `json:"average_wage"`
	TotalFixedCost  *float64 `json:"total_fixed_cost"`
	Notes           *string  `json:"notes"`

	TotalSalesPy      *float64 `json:"total_sales_py"`
	NumTransactionsPy *int     `json:"num_transactions_py"`
	TotalLaborCostPy  *float64 `json:"total_labor_cost_py"`
	VariableHoursPy   *float64 `json:"variable_hours_py"`
}

// LastWeekData é o retorno da consulta de última semana de uma loja, usado
// pelo front para pré-preencher o período e o custo fixo da próxima submissão.
type LastWeekData struct {
	Entry          *WeeklyEntry `json:"entry"`
	NextWeekEnding *time.Time   `json:"next_week_ending,omitempty"`
}

// BatchImportResult acumula o resultado de uma importação em lote. Falhas são
// isoladas por linha e nunca abortam o lote.
type BatchImportResult struct {
	BatchID         string          `json:"batch_id"`
	SuccessfulCount int             `json:"successful_count"`
	FailedCount     int             `json:"failed_count"`
	Errors          []BatchRowError `json:"errors"`
}

// BatchRowError referencia a linha com base 1 na ordem de entrada.
type BatchRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

package domain

import "time"

// ReportFilters delimita o período e as lojas de um relatório. Datas nulas
// assumem o ano fiscal corrente; a lista de lojas vazia significa "todas as
// lojas permitidas ao usuário".
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Stores    []string
}

// DashboardSummary agrega os KPIs do período sobre todas as entradas
// correspondentes, com os mesmos guardas numéricos de uma entrada individual.
type DashboardSummary struct {
	TotalSales               float64 `json:"total_sales"`
	TotalTransactions        int     `json:"total_transactions"`
	TotalLaborCost           float64 `json:"total_labor_cost"`
	TotalLaborHours          float64 `json:"total_labor_hours"`
	AvgTransactionValue      float64 `json:"avg_transaction_value"`
	LaborCostPercent         float64 `json:"labor_cost_percent"`
	SalesPerLaborHour        float64 `json:"sales_per_labor_hour"`
	TransactionsPerLaborHour float64 `json:"transactions_per_labor_hour"`

	// Variações ano a ano; 0 quando não há valor sombra do ano anterior
	SalesYoYPercent        float64 `json:"sales_yoy_percent"`
	TransactionsYoYPercent float64 `json:"transactions_yoy_percent"`
	LaborCostYoYPercent    float64 `json:"labor_cost_yoy_percent"`

	EntryCount int `json:"entry_count"`
	StoreCount int `json:"store_count"`
}

// TimeSeriesPoint é uma projeção imutável de um período fiscal, sempre
// derivada na leitura e nunca persistida.
type TimeSeriesPoint struct {
	Period          string             `json:"period"` // week_iso (YYYY-WW)
	WeekEnding      time.Time          `json:"week_ending"`
	Sales           float64            `json:"sales"`
	Transactions    int                `json:"transactions"`
	AvgTransaction  float64            `json:"avg_transaction"`
	LaborPercent    float64            `json:"labor_percent"`
	LaborCost       float64            `json:"labor_cost"`
	LaborHours      float64            `json:"labor_hours"`
	PreviousYear    *PreviousYearPoint `json:"previous_year,omitempty"`
}

// PreviousYearPoint carrega os valores sombra agregados do período.
type PreviousYearPoint struct {
	Sales          float64 `json:"sales"`
	Transactions   int     `json:"transactions"`
	AvgTransaction float64 `json:"avg_transaction"`
	LaborPercent   float64 `json:"labor_percent"`
}

// StorePerformance resume o desempenho de uma loja no período, com a posição
// no ranking por vendas totais e um score limitado a [0, 100].
type StorePerformance struct {
	StoreCode        string  `json:"store_code"`
	StoreName        string  `json:"store_name"`
	Rank             int     `json:"rank"`
	TotalSales       float64 `json:"total_sales"`
	TotalTransactions int    `json:"total_transactions"`
	TotalLaborCost   float64 `json:"total_labor_cost"`
	LaborCostPercent float64 `json:"labor_cost_percent"`
	SalesYoYPercent  float64 `json:"sales_yoy_percent"`
	PerformanceScore float64 `json:"performance_score"`
	WeeksReported    int     `json:"weeks_reported"`
}

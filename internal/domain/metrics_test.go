package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name     string
		entry    WeeklyEntry
		validate func(t *testing.T, e WeeklyEntry)
	}{
		{
			name: "Semana típica - valores de referência",
			entry: WeeklyEntry{
				TotalSales:      15000,
				NumTransactions: 350,
				VariableHours:   120.5,
				AverageWage:     15.50,
			},
			validate: func(t *testing.T, e WeeklyEntry) {
				assert.Equal(t, 1867.75, e.VariableLaborCost)
				assert.Equal(t, 1867.75, e.TotalLaborCost)
				assert.InDelta(t, 42.857, e.AvgTransactionValue, 0.001)
				assert.InDelta(t, 12.4517, e.TotalLaborPercent, 0.001)
				assert.InDelta(t, 124.48, e.SalesPerLaborHour, 0.01)
			},
		},
		{
			name: "Custo total inclui custo fixo exatamente",
			entry: WeeklyEntry{
				TotalSales:      10000,
				NumTransactions: 200,
				VariableHours:   80,
				AverageWage:     20,
				TotalFixedCost:  1200,
			},
			validate: func(t *testing.T, e WeeklyEntry) {
				assert.Equal(t, 1600.0, e.VariableLaborCost)
				assert.Equal(t, 2800.0, e.TotalLaborCost)
				assert.Equal(t, 28.0, e.TotalLaborPercent)
				assert.Equal(t, 16.0, e.VariableLaborPercent)
				assert.Equal(t, 12.0, e.FixedLaborPercent)
			},
		},
		{
			name: "Vendas zero - percentuais e ticket médio zerados",
			entry: WeeklyEntry{
				TotalSales:      0,
				NumTransactions: 0,
				VariableHours:   40,
				AverageWage:     18,
				TotalFixedCost:  500,
			},
			validate: func(t *testing.T, e WeeklyEntry) {
				assert.Equal(t, 720.0, e.VariableLaborCost)
				assert.Equal(t, 1220.0, e.TotalLaborCost)
				assert.Equal(t, 0.0, e.TotalLaborPercent)
				assert.Equal(t, 0.0, e.VariableLaborPercent)
				assert.Equal(t, 0.0, e.FixedLaborPercent)
				assert.Equal(t, 0.0, e.AvgTransactionValue)
			},
		},
		{
			name: "Vendas quase zero com custo alto - percentual limitado",
			entry: WeeklyEntry{
				TotalSales:      0.01,
				NumTransactions: 1,
				VariableHours:   100,
				AverageWage:     20,
			},
			validate: func(t *testing.T, e WeeklyEntry) {
				assert.Equal(t, MaxPercentMagnitude, e.TotalLaborPercent)
				assert.Equal(t, MaxPercentMagnitude, e.VariableLaborPercent)
			},
		},
		{
			name: "Horas zero - divisor com piso, sem explosão",
			entry: WeeklyEntry{
				TotalSales:      500,
				NumTransactions: 10,
				VariableHours:   0,
				AverageWage:     15,
			},
			validate: func(t *testing.T, e WeeklyEntry) {
				assert.Equal(t, 0.0, e.VariableLaborCost)
				// 500 / 0.01 estoura o limite e é grampeado
				assert.Equal(t, MaxPercentMagnitude, e.SalesPerLaborHour)
				assert.Equal(t, 1000.0, e.TransactionsPerLaborHour)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			e.Recalculate()
			tt.validate(t, e)
		})
	}
}

func TestRecalculate_LaborCostExact(t *testing.T) {
	// total_labor_cost = horas * salário + custo fixo, sem arredondamento além
	// da precisão de ponto flutuante
	e := WeeklyEntry{VariableHours: 120.5, AverageWage: 15.50, TotalFixedCost: 300}
	e.Recalculate()
	assert.Equal(t, 120.5*15.50+300, e.TotalLaborCost)
}

func TestSafePercent(t *testing.T) {
	assert.Equal(t, 50.0, SafePercent(5, 10))
	assert.Equal(t, 0.0, SafePercent(5, 0))
	assert.Equal(t, 0.0, SafePercent(5, -1))
	assert.Equal(t, MaxPercentMagnitude, SafePercent(1000, 0.001))
	assert.Equal(t, -MaxPercentMagnitude, SafePercent(-1000, 0.001))
}

func TestSafePerHour(t *testing.T) {
	assert.Equal(t, 100.0, SafePerHour(1000, 10))
	// piso de 0.01 no divisor
	assert.Equal(t, 100.0, SafePerHour(1, 0))
	assert.Equal(t, 100.0, SafePerHour(1, 0.005))
}

func TestYoYDelta(t *testing.T) {
	assert.Equal(t, 10.0, YoYDelta(110, 100))
	assert.Equal(t, -25.0, YoYDelta(75, 100))
	assert.Equal(t, 0.0, YoYDelta(100, 0))
}

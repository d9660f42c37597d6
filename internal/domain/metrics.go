package domain

// Limites de segurança numérica: percentuais e razões por hora são limitados
// em magnitude para que entradas patológicas (vendas próximas de zero com
// custo alto) não estourem colunas nem gráficos no consumo posterior.
const (
	MaxPercentMagnitude = 9999.9999
	MinLaborHoursDiv    = 0.01
)

// SafePercent calcula (num/den)*100 apenas quando o denominador é positivo.
func SafePercent(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return ClampMagnitude(num / den * 100)
}

// SafePerHour divide pelo total de horas com piso de MinLaborHoursDiv, para
// evitar explosão da divisão quando as horas são reportadas como zero.
func SafePerHour(value, hours float64) float64 {
	if hours < MinLaborHoursDiv {
		hours = MinLaborHoursDiv
	}
	return ClampMagnitude(value / hours)
}

// ClampMagnitude limita o valor ao intervalo [-MaxPercentMagnitude, +MaxPercentMagnitude].
func ClampMagnitude(v float64) float64 {
	if v > MaxPercentMagnitude {
		return MaxPercentMagnitude
	}
	if v < -MaxPercentMagnitude {
		return -MaxPercentMagnitude
	}
	return v
}

// Recalculate recalcula todos os campos derivados a partir dos campos brutos.
// É determinístico e é a única forma legítima de preencher campos derivados:
// valores derivados vindos do chamador nunca são aceitos como autoritativos.
func (e *WeeklyEntry) Recalculate() {
	e.VariableLaborCost = e.VariableHours * e.AverageWage
	e.TotalLaborCost = e.VariableLaborCost + e.TotalFixedCost

	e.TotalLaborPercent = SafePercent(e.TotalLaborCost, e.TotalSales)
	e.VariableLaborPercent = SafePercent(e.VariableLaborCost, e.TotalSales)
	e.FixedLaborPercent = SafePercent(e.TotalFixedCost, e.TotalSales)

	if e.NumTransactions > 0 {
		e.AvgTransactionValue = e.TotalSales / float64(e.NumTransactions)
	} else {
		e.AvgTransactionValue = 0
	}

	e.SalesPerLaborHour = SafePerHour(e.TotalSales, e.VariableHours)
	e.TransactionsPerLaborHour = SafePerHour(float64(e.NumTransactions), e.VariableHours)
}

// YoYDelta calcula a variação percentual ano a ano. Retorna 0 quando o valor
// do ano anterior é ausente ou zero.
func YoYDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

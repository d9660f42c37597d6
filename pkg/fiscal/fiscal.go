// Package fiscal implementa o calendário fiscal simplificado das lojas:
// semanas de 7 dias ancoradas em 1º de janeiro, numeradas de 1 a 53 dentro
// do ano fiscal. Não são semanas ISO-8601; o mapeamento precisa ser mantido
// exatamente assim porque os rótulos derivados já persistidos dependem dele.
package fiscal

import (
	"fmt"
	"time"
)

const (
	MinWeek       = 1
	MaxWeek       = 53
	MinFiscalYear = 2020
	MaxFiscalYear = 2030
)

// WeekEnding retorna a data de término da semana fiscal: 1º de janeiro do ano
// mais (week-1)*7 + 6 dias.
func WeekEnding(year, week int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.AddDate(0, 0, (week-1)*7+6)
}

// YearWeekFromDate é a inversa aproximada de WeekEnding, por teto da divisão
// do dia do ano por 7. Perto da virada do ano a inversa não reproduz o par
// original; é uma limitação conhecida e intencional, não um defeito a
// corrigir, porque dados armazenados dependem deste comportamento.
func YearWeekFromDate(date time.Time) (year, week int) {
	year = date.Year()
	week = (date.YearDay() + 6) / 7
	if week < MinWeek {
		week = MinWeek
	}
	if week > MaxWeek {
		week = MaxWeek
	}
	return year, week
}

// WeekISO monta a chave canônica "YYYY-WW", com zero à esquerda na semana.
// É a chave de ordenação e junção usada em todo o restante do sistema.
func WeekISO(year, week int) string {
	return fmt.Sprintf("%d-%02d", year, week)
}

// ApproxWeekRange converte um intervalo de datas de calendário no intervalo
// aproximado de chaves week_iso usado nos filtros de relatório. A conversão
// herda a folga de YearWeekFromDate nas bordas do intervalo: uma data nos
// primeiros dias de janeiro pode cair na última semana contada do ano
// anterior ou na primeira do corrente. A folga é aceita por contrato.
func ApproxWeekRange(start, end time.Time) (startISO, endISO string) {
	sy, sw := YearWeekFromDate(start)
	ey, ew := YearWeekFromDate(end)
	return WeekISO(sy, sw), WeekISO(ey, ew)
}

// ValidYear informa se o ano fiscal está na faixa aceita para entrada de dados.
func ValidYear(year int) bool {
	return year >= MinFiscalYear && year <= MaxFiscalYear
}

// ValidWeek informa se o número da semana está na faixa 1..53.
func ValidWeek(week int) bool {
	return week >= MinWeek && week <= MaxWeek
}

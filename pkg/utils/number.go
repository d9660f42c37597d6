package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas decimais, o formato de
// apresentação de todos os valores monetários e percentuais da API.
func RoundWithTwoDecimalPlace(f float64) float64 {
	return math.Round(f*100) / 100
}

package utils

import "time"

// DateLayout é o formato de data aceito em query strings e filtros.
const DateLayout = "2006-01-02"

// ParseDate interpreta uma data no formato YYYY-MM-DD. String vazia resulta
// na data zero, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

package domain

import "time"

// StoreRankingResponse é o snapshot mensal de ranking mantido pelo agendador,
// servido sem tocar no caminho de agregação ao vivo.
type StoreRankingResponse struct {
	Ranking    []StoreRankingItem `json:"ranking"`
	LastUpdate time.Time          `json:"last_update"`
}

type StoreRankingItem struct {
	ID               int       `json:"id"`
	StoreCode        string    `json:"store_code"`
	Month            string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	StoreName        string    `json:"store_name"`
	TotalSales       float64   `json:"total_sales"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

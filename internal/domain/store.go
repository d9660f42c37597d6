package domain

import "time"

// Store é dado de referência, de leitura. O núcleo trata a loja apenas como
// uma consulta de código para nome e marca.
type Store struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

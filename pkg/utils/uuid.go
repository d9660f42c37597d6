package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

// GenerateID gera um identificador curto alfanumérico, usado como referência
// de lotes de importação nos logs e nas respostas da API.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

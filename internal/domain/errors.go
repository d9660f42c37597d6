package domain

import "errors"

// Erros sentinela do núcleo. A camada de repositório traduz violações de
// restrição do banco para estes erros; os handlers os mapeiam para códigos
// de API via errors.Is.
var (
	ErrDuplicateEntry = errors.New("já existe uma entrada para esta loja e semana fiscal")
	ErrEntryNotFound  = errors.New("entrada não encontrada")
	ErrStoreNotFound  = errors.New("loja não encontrada")
	ErrStoreForbidden = errors.New("usuário não tem acesso à loja solicitada")
)

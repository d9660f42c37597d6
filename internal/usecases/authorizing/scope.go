// Package authorizing concentra a regra de escopo de lojas por perfil. É a
// única fronteira de autorização de dados: toda leitura ou escrita que aceita
// filtro de loja passa por EffectiveStores antes de tocar o repositório.
package authorizing

import "github.com/jpcs2004/store-performance-api/internal/domain"

// EffectiveStores devolve o conjunto efetivo de lojas que o principal pode
// consultar ou alterar, dado o filtro solicitado.
//
// Executivo e contador: o filtro solicitado é devolvido como está; nil (nenhum
// filtro) significa todas as lojas. Gerente: interseção do filtro com as lojas
// atribuídas; sem filtro, as lojas atribuídas. O retorno de um gerente nunca é
// nil — um gerente sem atribuição enxerga um conjunto vazio, não o universo.
func EffectiveStores(claims *domain.Claims, requested []string) []string {
	if !claims.IsManager() {
		if len(requested) == 0 {
			return nil
		}
		return requested
	}

	assigned := claims.UserStores
	if len(requested) == 0 {
		if assigned == nil {
			return []string{}
		}
		return assigned
	}

	allowed := make(map[string]struct{}, len(assigned))
	for _, code := range assigned {
		allowed[code] = struct{}{}
	}

	effective := make([]string, 0, len(requested))
	for _, code := range requested {
		if _, ok := allowed[code]; ok {
			effective = append(effective, code)
		}
	}

	return effective
}

// CanWriteStore informa se o principal pode gravar entradas para a loja.
func CanWriteStore(claims *domain.Claims, storeCode string) bool {
	if !claims.IsManager() {
		return true
	}

	for _, code := range claims.UserStores {
		if code == storeCode {
			return true
		}
	}

	return false
}

package authorizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

func executive() *domain.Claims {
	return &domain.Claims{UserID: 1, UserRoleID: domain.RoleExecutive}
}

func bookkeeper() *domain.Claims {
	return &domain.Claims{UserID: 2, UserRoleID: domain.RoleBookkeeper}
}

func manager(stores ...string) *domain.Claims {
	return &domain.Claims{UserID: 3, UserRoleID: domain.RoleManager, UserStores: stores}
}

func TestEffectiveStores(t *testing.T) {
	tests := []struct {
		name      string
		claims    *domain.Claims
		requested []string
		expected  []string
	}{
		{
			name:      "Executivo sem filtro enxerga todas as lojas",
			claims:    executive(),
			requested: nil,
			expected:  nil,
		},
		{
			name:      "Executivo com filtro recebe o filtro inalterado",
			claims:    executive(),
			requested: []string{"anna", "bell"},
			expected:  []string{"anna", "bell"},
		},
		{
			name:      "Contador sem filtro enxerga todas as lojas",
			claims:    bookkeeper(),
			requested: nil,
			expected:  nil,
		},
		{
			name:      "Gerente sem filtro recebe as lojas atribuídas",
			claims:    manager("anna", "bell"),
			requested: nil,
			expected:  []string{"anna", "bell"},
		},
		{
			name:      "Gerente com filtro recebe a interseção",
			claims:    manager("anna", "bell"),
			requested: []string{"anna", "cole"},
			expected:  []string{"anna"},
		},
		{
			name:      "Gerente pedindo apenas lojas fora da atribuição recebe vazio",
			claims:    manager("anna"),
			requested: []string{"cole", "dane"},
			expected:  []string{},
		},
		{
			name:      "Gerente sem atribuição nunca recebe nil",
			claims:    manager(),
			requested: nil,
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveStores(tt.claims, tt.requested)
			assert.Equal(t, tt.expected, got)
			if tt.claims.IsManager() {
				assert.NotNil(t, got, "escopo de gerente nunca pode ser nil")
			}
		})
	}
}

func TestCanWriteStore(t *testing.T) {
	assert.True(t, CanWriteStore(executive(), "cole"))
	assert.True(t, CanWriteStore(bookkeeper(), "cole"))
	assert.True(t, CanWriteStore(manager("anna", "bell"), "anna"))
	assert.False(t, CanWriteStore(manager("anna", "bell"), "cole"))
	assert.False(t, CanWriteStore(manager(), "anna"))
}

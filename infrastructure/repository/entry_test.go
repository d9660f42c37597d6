package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A herança de custo fixo precisa enxergar a última entrada do ano anterior
// quando a semana nova é a primeira do ano: o predicado aceita qualquer ano
// fiscal menor, não apenas semanas menores do mesmo ano.
func TestLastFixedCostQuery(t *testing.T) {
	query, args, err := lastFixedCostQuery("anna", 2025, 1)
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT total_fixed_cost FROM weekly_entries")
	assert.Contains(t, query, "store_code = $1")
	assert.Contains(t, query, "(fiscal_year < $2 OR (fiscal_year = $3 AND week_number < $4))",
		"o ramo de ano anterior é o que permite herdar 2024-52 ao criar 2025-01")
	assert.Contains(t, query, "ORDER BY fiscal_year DESC, week_number DESC",
		"sem a ordenação por ano antes da semana, 2024-52 perderia para 2024-01")
	assert.Contains(t, query, "LIMIT 1")

	assert.Equal(t, []interface{}{"anna", 2025, 2025, 1}, args)
}

func TestIdentityExistsQuery(t *testing.T) {
	query, args, err := identityExistsQuery("bell", 2025, 7)
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT 1 FROM weekly_entries")
	assert.Contains(t, query, "fiscal_year = $")
	assert.Contains(t, query, "store_code = $")
	assert.Contains(t, query, "week_number = $")
	assert.ElementsMatch(t, []interface{}{"bell", 2025, 7}, args)
}

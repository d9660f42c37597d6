package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findStatement(t *testing.T, fragment string) string {
	t.Helper()
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, fragment) {
			return stmt
		}
	}
	require.Failf(t, "statement não encontrado", "nenhum DDL contém %q", fragment)
	return ""
}

// Os campos opcionais do domínio (Notes, sombras *_py, CreatedBy) são
// ponteiros e chegam como NULL quando omitidos; as colunas correspondentes
// precisam aceitar NULL ou a inserção de uma entrada válida sem notas falha.
func TestSchemaOptionalColumnsAreNullable(t *testing.T) {
	entries := findStatement(t, "CREATE TABLE IF NOT EXISTS weekly_entries")

	optionalColumns := []string{
		"notes TEXT",
		"total_sales_py DOUBLE PRECISION",
		"num_transactions_py INTEGER",
		"total_labor_cost_py DOUBLE PRECISION",
		"variable_hours_py DOUBLE PRECISION",
		"created_by INTEGER",
	}

	for _, column := range optionalColumns {
		t.Run(column, func(t *testing.T) {
			idx := strings.Index(entries, column)
			require.GreaterOrEqual(t, idx, 0, "coluna ausente do DDL")

			rest := entries[idx+len(column):]
			lineEnd := strings.IndexAny(rest, ",\n")
			require.GreaterOrEqual(t, lineEnd, 0)

			assert.NotContains(t, rest[:lineEnd], "NOT NULL",
				"coluna opcional não pode rejeitar NULL")
		})
	}
}

func TestSchemaUniqueConstraints(t *testing.T) {
	entries := findStatement(t, "CREATE TABLE IF NOT EXISTS weekly_entries")
	assert.Contains(t, entries, "UNIQUE (store_code, fiscal_year, week_number)",
		"a restrição de identidade da entrada semanal é o guarda autoritativo contra duplicatas")

	ranking := findStatement(t, "CREATE TABLE IF NOT EXISTS store_ranking")
	assert.Contains(t, ranking, "UNIQUE (store_code, month)",
		"o upsert do ranking depende da restrição composta por loja e mês")
}

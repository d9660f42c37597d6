package postgres

import "database/sql"

// Queryer é o conjunto mínimo de operações de consulta, satisfeito tanto por
// *sql.DB quanto por *sql.Tx. Permite que os helpers de leitura dos
// repositórios rodem dentro ou fora de uma transação.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

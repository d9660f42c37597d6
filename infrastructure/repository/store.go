package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jpcs2004/store-performance-api/infrastructure/database/postgres"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

const (
	storesTable = "stores s"
)

type StoreRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Store, error)
	ListActive(ctx context.Context) ([]*domain.Store, error)
}

type storeRepository struct {
	conn *postgres.Connection
}

func NewStoreRepository(conn *postgres.Connection) StoreRepository {
	return &storeRepository{
		conn: conn,
	}
}

func (r *storeRepository) GetByCode(ctx context.Context, code string) (*domain.Store, error) {
	query, args, err := squirrel.
		Select("s.code, s.name, s.brand, s.active, s.created_at").
		From(storesTable).
		Where(squirrel.Eq{"s.code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	store := &domain.Store{}
	err = r.conn.QueryRow(query, args...).Scan(
		&store.Code,
		&store.Name,
		&store.Brand,
		&store.Active,
		&store.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear loja: %w", err)
	}

	return store, nil
}

func (r *storeRepository) ListActive(ctx context.Context) ([]*domain.Store, error) {
	query, args, err := squirrel.
		Select("s.code, s.name, s.brand, s.active, s.created_at").
		From(storesTable).
		Where(squirrel.Eq{"s.active": true}).
		OrderBy("s.code ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)
	for rows.Next() {
		store := &domain.Store{}
		err := rows.Scan(&store.Code, &store.Name, &store.Brand, &store.Active, &store.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lojas: %w", err)
		}
		stores = append(stores, store)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stores, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jpcs2004/store-performance-api/infrastructure/database/postgres"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

const (
	storeRankingTable = "store_ranking sr"
)

type StoreRankingRepository interface {
	GetByStoreCode(ctx context.Context, storeCode string, month string) (*domain.StoreRankingItem, error)
	GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error)
	SaveOrUpdateStoreRanking(ctx context.Context, rankings []*domain.StoreRankingItem) error
}

type storeRankingRepository struct {
	conn *postgres.Connection
}

func NewStoreRankingRepository(conn *postgres.Connection) StoreRankingRepository {
	return &storeRankingRepository{
		conn: conn,
	}
}

func (r *storeRankingRepository) GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error) {
	query, args, err := squirrel.
		Select(
			"sr.id",
			"sr.store_code",
			"sr.month",
			"sr.store_name",
			"sr.total_sales",
			"sr.position",
			"sr.position_change",
			"sr.previous_position",
			"sr.created_at",
			"sr.updated_at",
		).
		From(storeRankingTable).
		Where(squirrel.Eq{"sr.month": month}).
		OrderBy("sr.position ASC").
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

	rankings := make([]domain.StoreRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := scanStoreRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.StoreRankingResponse{
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *storeRankingRepository) GetByStoreCode(ctx context.Context, storeCode string, month string) (*domain.StoreRankingItem, error) {
	query, args, err := squirrel.
		Select("sr.id, sr.store_code, sr.month, sr.store_name, sr.total_sales, sr.position, sr.position_change, sr.previous_position, sr.created_at, sr.updated_at").
		From(storeRankingTable).
		Where(squirrel.Eq{"sr.store_code": storeCode, "sr.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ranking, err := scanStoreRankingItem(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}
	return ranking, nil
}

func (r *storeRankingRepository) SaveOrUpdateStoreRanking(ctx context.Context, rankings []*domain.StoreRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("store_ranking").
		Columns(
			"store_code",
			"month",
			"store_name",
			"total_sales",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.StoreCode,
			ranking.Month,
			ranking.StoreName,
			ranking.TotalSales,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (store_code, month) DO UPDATE SET
			store_name = EXCLUDED.store_name,
			total_sales = EXCLUDED.total_sales,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func scanStoreRankingItem(row rowScanner) (*domain.StoreRankingItem, error) {
	item := &domain.StoreRankingItem{}

	err := row.Scan(
		&item.ID,
		&item.StoreCode,
		&item.Month,
		&item.StoreName,
		&item.TotalSales,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

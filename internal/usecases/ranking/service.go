package ranking

import (
	"context"
	"time"

	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

// MonthKey formata a chave mensal do snapshot de ranking (mm-yyyy).
func MonthKey(t time.Time) string {
	return t.Format("01-2006")
}

type RankingService interface {
	GetStoreRanking(ctx context.Context) (*domain.StoreRankingResponse, error)
}

type StoreRankingService struct {
	StoreRankingRepository repository.StoreRankingRepository
}

func NewStoreRankingService(storeRankingRepository repository.StoreRankingRepository) RankingService {
	return &StoreRankingService{
		StoreRankingRepository: storeRankingRepository,
	}
}

// GetStoreRanking devolve o snapshot do mês corrente mantido pelo agendador.
func (s *StoreRankingService) GetStoreRanking(ctx context.Context) (*domain.StoreRankingResponse, error) {
	return s.StoreRankingRepository.GetStoreRanking(ctx, MonthKey(time.Now()))
}

// Package scheduler contém os serviços de agendamento que materializam
// snapshots a partir das entradas semanais.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/config"
	"github.com/jpcs2004/store-performance-api/internal/domain"
	"github.com/jpcs2004/store-performance-api/internal/usecases/ranking"
	"github.com/jpcs2004/store-performance-api/pkg/fiscal"
)

type StoreRankingSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// StoreRankingSyncService recalcula o ranking mensal de lojas por vendas
// totais e persiste o snapshot com a variação de posição em relação à última
// materialização do mesmo mês.
type StoreRankingSyncService struct {
	scheduler           *gocron.Scheduler
	entryRepo           repository.EntryRepository
	storeRepo           repository.StoreRepository
	rankingRepo         repository.StoreRankingRepository
	config              StoreRankingSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewStoreRankingSyncService(
	entryRepo repository.EntryRepository,
	storeRepo repository.StoreRepository,
	rankingRepo repository.StoreRankingRepository,
	cfg *config.Config,
) *StoreRankingSyncService {
	syncConfig := StoreRankingSyncConfig{
		CronSchedule: cfg.RankingSync.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.RankingSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador do ranking de lojas carregada")

	return &StoreRankingSyncService{
		scheduler:   scheduler,
		entryRepo:   entryRepo,
		storeRepo:   storeRepo,
		rankingRepo: rankingRepo,
		config:      syncConfig,
	}
}

func (s *StoreRankingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do ranking de lojas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do ranking de lojas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateStoreRanking(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de lojas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do ranking de lojas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de lojas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *StoreRankingSyncService) UpdateStoreRanking(ctx context.Context) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Sincronização do ranking de lojas já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando atualização do ranking de lojas")

	_, err := s.ProcessWithDate(ctx, time.Now())
	if err != nil {
		return err
	}

	logrus.Info("Atualização do ranking de lojas concluída")

	return nil
}

// ProcessWithDate materializa o ranking do mês de ontem em relação à data de
// processamento: soma as vendas das semanas fiscais que tocam o mês, ordena
// por vendas totais e calcula a variação de posição contra o snapshot
// anterior.
func (s *StoreRankingSyncService) ProcessWithDate(ctx context.Context, processingDate time.Time) ([]*domain.StoreRankingItem, error) {
	yesterday := processingDate.AddDate(0, 0, -1)
	firstDayOfMonth := getFirstDayOfMonth(yesterday)
	month := ranking.MonthKey(yesterday)

	stores, err := s.storeRepo.ListActive(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lojas ativas para o ranking")
		return nil, err
	}
	if len(stores) == 0 {
		logrus.Info("Nenhuma loja ativa encontrada para atualização do ranking")
		return []*domain.StoreRankingItem{}, nil
	}

	totals, err := s.monthTotals(ctx, firstDayOfMonth, yesterday)
	if err != nil {
		return nil, err
	}

	previous := s.previousSnapshot(ctx, stores, month)

	updatedRankings := make([]*domain.StoreRankingItem, 0, len(stores))
	for _, store := range stores {
		updatedRankings = append(updatedRankings, &domain.StoreRankingItem{
			StoreCode:  store.Code,
			Month:      month,
			StoreName:  store.Name,
			TotalSales: totals[store.Code],
		})
	}

	s.updatePositions(updatedRankings, previous)

	if err := s.rankingRepo.SaveOrUpdateStoreRanking(ctx, updatedRankings); err != nil {
		logrus.WithError(err).Error("Erro ao salvar ranking de lojas atualizado")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"month":  month,
		"stores": len(updatedRankings),
	}).Info("Ranking de lojas atualizado")

	return updatedRankings, nil
}

// monthTotals soma as vendas por loja nas semanas fiscais que cobrem o
// intervalo do mês corrente.
func (s *StoreRankingSyncService) monthTotals(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	startISO, endISO := fiscal.ApproxWeekRange(start, end)

	entries, err := s.entryRepo.ListByWeekRange(ctx, startISO, endISO, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar entradas semanais para o ranking")
		return nil, err
	}

	totals := make(map[string]float64, len(entries))
	for _, entry := range entries {
		totals[entry.StoreCode] += entry.TotalSales
	}

	return totals, nil
}

// previousSnapshot carrega em paralelo o snapshot anterior de cada loja para
// o mesmo mês. Erros individuais não abortam a sincronização: a loja apenas
// fica sem variação de posição.
func (s *StoreRankingSyncService) previousSnapshot(ctx context.Context, stores []*domain.Store, month string) map[string]*domain.StoreRankingItem {
	wg := sync.WaitGroup{}
	items := make(chan domain.StoreRankingItem, len(stores))

	for _, store := range stores {
		wg.Add(1)

		go func(store domain.Store) {
			defer wg.Done()

			item, err := s.rankingRepo.GetByStoreCode(ctx, store.Code, month)
			if err != nil {
				logrus.WithError(err).WithField("store_code", store.Code).
					Error("Erro ao buscar snapshot anterior do ranking")
				return
			}

			if item != nil {
				items <- *item
			}
		}(*store)
	}

	wg.Wait()
	close(items)

	previous := make(map[string]*domain.StoreRankingItem, len(stores))
	for item := range items {
		item := item
		previous[item.StoreCode] = &item
	}

	return previous
}

func (*StoreRankingSyncService) updatePositions(
	updatedRankings []*domain.StoreRankingItem,
	previous map[string]*domain.StoreRankingItem,
) {
	sort.SliceStable(updatedRankings, func(i, j int) bool {
		return updatedRankings[i].TotalSales > updatedRankings[j].TotalSales
	})

	for i, item := range updatedRankings {
		item.Position = i + 1

		if before, exists := previous[item.StoreCode]; exists {
			item.PositionChange = before.Position - item.Position
			item.PreviousPosition = before.Position
		}
	}
}

// TriggerManualSync inicia manualmente uma sincronização do ranking de lojas.
// A execução roda em background com contexto próprio para não ser cancelada
// junto com a requisição que a disparou.
func (s *StoreRankingSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do ranking de lojas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do ranking de lojas")
	go func() {
		if err := s.UpdateStoreRanking(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual do ranking de lojas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *StoreRankingSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

func getFirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/infrastructure/database/postgres"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/api"
	"github.com/jpcs2004/store-performance-api/internal/config"
	"github.com/jpcs2004/store-performance-api/internal/scheduler"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authenticating"
	"github.com/jpcs2004/store-performance-api/internal/usecases/ranking"
	"github.com/jpcs2004/store-performance-api/internal/usecases/recording"
	"github.com/jpcs2004/store-performance-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	entryRepo := repository.NewEntryRepository(pgConn)
	storeRepo := repository.NewStoreRepository(pgConn)
	storeRankingRepo := repository.NewStoreRankingRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, storeRepo, cfg)
	recorder := recording.NewService(entryRepo, storeRepo)
	reporter := reporting.NewService(entryRepo, storeRepo, cfg.Score)
	rankingService := ranking.NewStoreRankingService(storeRankingRepo)

	// Agendador de materialização do ranking mensal de lojas
	storeRankingSyncService := scheduler.NewStoreRankingSyncService(
		entryRepo,
		storeRepo,
		storeRankingRepo,
		cfg,
	)

	if err := storeRankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de ranking de lojas")
	} else {
		logrus.Info("Agendador de ranking de lojas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		recorder,
		reporter,
		rankingService,
		authenticator,
		storeRepo,
		storeRankingSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

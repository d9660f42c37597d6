package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	RankingSync RankingSync `mapstructure:",squash"`
	Score       Score       `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN                string `mapstructure:"-"`
	Driver             string `mapstructure:"database_driver"`
	Password           string `mapstructure:"database_password"`
	URL                string `mapstructure:"database_url"`
	User               string `mapstructure:"database_user"`
	MaxOpenConns       int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns       int    `mapstructure:"database_max_idle_conns"`
	ConnMaxIdleSeconds int    `mapstructure:"database_conn_max_idle_seconds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// RankingSync configura o agendador que materializa o snapshot mensal de
// ranking das lojas a partir das entradas semanais.
type RankingSync struct {
	CronSchedule string `mapstructure:"ranking_sync_cron"`
	Enabled      bool   `mapstructure:"ranking_sync_enabled"`
}

// Score define a política do performance score das lojas. Os pesos e limiares
// são escolha de política operacional, não lei do domínio: ficam em
// configuração em vez de constantes no código.
type Score struct {
	GrowthWeight    float64 `mapstructure:"score_growth_weight"`
	VolumeWeight    float64 `mapstructure:"score_volume_weight"`
	LaborWeight     float64 `mapstructure:"score_labor_weight"`
	VolumeThreshold float64 `mapstructure:"score_volume_threshold"`
	LaborThreshold  float64 `mapstructure:"score_labor_threshold"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/storeperf")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_SECONDS", 300)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("RANKING_SYNC_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("RANKING_SYNC_ENABLED", false)

	// Política padrão do performance score: crescimento positivo ano a ano,
	// volume semanal médio acima do limiar e custo de mão de obra abaixo do
	// limiar somam 100 pontos
	viper.SetDefault("SCORE_GROWTH_WEIGHT", 40.0)
	viper.SetDefault("SCORE_VOLUME_WEIGHT", 30.0)
	viper.SetDefault("SCORE_LABOR_WEIGHT", 30.0)
	viper.SetDefault("SCORE_VOLUME_THRESHOLD", 10000.0) // vendas semanais
	viper.SetDefault("SCORE_LABOR_THRESHOLD", 30.0)     // percentual

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o arquivo .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/attribution-api/internal/attribution"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Attribution     Attribution     `mapstructure:",squash"`
	AttributionSync AttributionSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Attribution contém os parâmetros padrão das estratégias de atribuição
type Attribution struct {
	HalfLifeDays   float64 `mapstructure:"attribution_half_life_days"`
	FirstWeight    float64 `mapstructure:"attribution_first_weight"`
	MiddleWeight   float64 `mapstructure:"attribution_middle_weight"`
	LastWeight     float64 `mapstructure:"attribution_last_weight"`
	Iterations     int     `mapstructure:"attribution_iterations"`
	ForestTrees    int     `mapstructure:"attribution_forest_trees"`
	ForestMaxDepth int     `mapstructure:"attribution_forest_max_depth"`
	Seed           int64   `mapstructure:"attribution_seed"`
	LookbackDays   int     `mapstructure:"attribution_lookback_days"`
	ControlGroup   string  `mapstructure:"attribution_control_group"`
}

type AttributionSync struct {
	CronSchedule string        `mapstructure:"attribution_sync_cron"`
	Enabled      bool          `mapstructure:"attribution_sync_enabled"`
	Timeout      time.Duration `mapstructure:"attribution_sync_timeout"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/attribution")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL

	// Defaults das estratégias de atribuição
	viper.SetDefault("ATTRIBUTION_HALF_LIFE_DAYS", 7.0)
	viper.SetDefault("ATTRIBUTION_FIRST_WEIGHT", 0.3)
	viper.SetDefault("ATTRIBUTION_MIDDLE_WEIGHT", 0.2)
	viper.SetDefault("ATTRIBUTION_LAST_WEIGHT", 0.5)
	viper.SetDefault("ATTRIBUTION_ITERATIONS", 1000)
	viper.SetDefault("ATTRIBUTION_FOREST_TREES", 100)
	viper.SetDefault("ATTRIBUTION_FOREST_MAX_DEPTH", 0) // 0 = sem limite
	viper.SetDefault("ATTRIBUTION_SEED", 42)
	viper.SetDefault("ATTRIBUTION_LOOKBACK_DAYS", 30)
	viper.SetDefault("ATTRIBUTION_CONTROL_GROUP", "")

	viper.SetDefault("ATTRIBUTION_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("ATTRIBUTION_SYNC_ENABLED", false)
	viper.SetDefault("ATTRIBUTION_SYNC_TIMEOUT", "30m")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

// AttributionOptions converte a seção de atribuição nas opções do engine.
// A validação acontece em attribution.NewEngine.
func (c *Config) AttributionOptions() attribution.Options {
	opts := attribution.DefaultOptions()

	opts.HalfLifeDays = c.Attribution.HalfLifeDays
	opts.PositionWeights = attribution.PositionWeights{
		First:  c.Attribution.FirstWeight,
		Middle: c.Attribution.MiddleWeight,
		Last:   c.Attribution.LastWeight,
	}
	opts.Iterations = c.Attribution.Iterations
	opts.Forest.NumTrees = c.Attribution.ForestTrees
	opts.Forest.MaxDepth = c.Attribution.ForestMaxDepth
	opts.Seed = c.Attribution.Seed

	return opts
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

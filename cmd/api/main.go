package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/infrastructure/repository"
	"github.com/vfg2006/attribution-api/internal/api"
	"github.com/vfg2006/attribution-api/internal/attribution"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/scheduler"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/internal/usecases/authenticating"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	// Parâmetros padrão inválidos impedem a inicialização
	defaults := cfg.AttributionOptions()
	if _, err := attribution.NewEngine(defaults); err != nil {
		logrus.WithError(err).Fatal("Configuração de atribuição inválida")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	touchpointRepo := repository.NewTouchpointRepository(pgConn)
	conversionRepo := repository.NewConversionRepository(pgConn)
	controlGroupRepo := repository.NewControlGroupRepository(pgConn)
	runRepo := repository.NewAttributionRunRepository(pgConn)

	attributionService := attributing.NewService(
		defaults,
		cfg.Attribution.ControlGroup,
		touchpointRepo,
		conversionRepo,
		controlGroupRepo,
		runRepo,
	)

	tokenValidator := authenticating.NewService(cfg.Auth.Secret)

	attributionSyncService := scheduler.NewAttributionSyncService(attributionService, cfg)
	if err := attributionSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atribuição")
	} else {
		logrus.Info("Agendador de atribuição iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		attributionService,
		tokenValidator,
		pgConn,
		attributionSyncService,
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

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/internal/config"
)

// schema é aplicado em ordem; todos os comandos são idempotentes
var schema = []struct {
	name string
	ddl  string
}{
	{
		name: "touchpoints",
		ddl: `CREATE TABLE IF NOT EXISTS touchpoints (
			id               BIGSERIAL PRIMARY KEY,
			customer_id      VARCHAR(64)  NOT NULL,
			channel          VARCHAR(128) NOT NULL,
			interaction_type VARCHAR(16)  NOT NULL,
			occurred_at      TIMESTAMPTZ  NOT NULL,
			created_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "touchpoints_customer_time_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS touchpoints_customer_time_idx ON touchpoints (customer_id, occurred_at)`,
	},
	{
		name: "conversions",
		ddl: `CREATE TABLE IF NOT EXISTS conversions (
			id               BIGSERIAL PRIMARY KEY,
			customer_id      VARCHAR(64)    NOT NULL,
			converted_at     TIMESTAMPTZ    NOT NULL,
			conversion_value NUMERIC(14, 2) NOT NULL,
			created_at       TIMESTAMPTZ    NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "conversions_time_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS conversions_time_idx ON conversions (converted_at)`,
	},
	{
		name: "control_group_members",
		ddl: `CREATE TABLE IF NOT EXISTS control_group_members (
			group_name  VARCHAR(64) NOT NULL,
			customer_id VARCHAR(64) NOT NULL,
			PRIMARY KEY (group_name, customer_id)
		)`,
	},
	{
		name: "attribution_runs",
		ddl: `CREATE TABLE IF NOT EXISTS attribution_runs (
			id                          VARCHAR(32) PRIMARY KEY,
			model                       VARCHAR(32) NOT NULL,
			parameters                  JSONB NOT NULL DEFAULT '{}',
			channel_credits             JSONB,
			probabilistic_credits       JSONB,
			incremental_credits         JSONB,
			total_value                 DOUBLE PRECISION NOT NULL DEFAULT 0,
			conversions_considered      INTEGER NOT NULL DEFAULT 0,
			conversions_attributed      INTEGER NOT NULL DEFAULT 0,
			attributed_conversion_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			started_at                  TIMESTAMPTZ NOT NULL,
			completed_at                TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		name: "attribution_runs_attributed_conversion_value",
		ddl:  `ALTER TABLE attribution_runs ADD COLUMN IF NOT EXISTS attributed_conversion_value DOUBLE PRECISION NOT NULL DEFAULT 0`,
	},
	{
		name: "attribution_runs_model_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS attribution_runs_model_idx ON attribution_runs (model, completed_at DESC)`,
	},
}

func applySchema(ctx context.Context, tx *sql.Tx) error {
	for i, step := range schema {
		startTime := time.Now()
		if _, err := tx.ExecContext(ctx, step.ddl); err != nil {
			logrus.WithError(err).Errorf("ERRO ao aplicar %s [%d/%d]", step.name, i+1, len(schema))
			return err
		}
		logrus.Infof("%s aplicado em %v", step.name, time.Since(startTime))
	}
	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	if err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return applySchema(ctx, tx)
	}); err != nil {
		logrus.Fatalf("ERRO na migração, nenhuma alteração aplicada: %v", err)
	}

	logrus.Info("Migração concluída com sucesso")
}

package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	attributionRunsTable   = "attribution_runs"
	attributionRunsColumns = "id, model, parameters, channel_credits, probabilistic_credits, incremental_credits, " +
		"total_value, conversions_considered, conversions_attributed, attributed_conversion_value, started_at, completed_at"
)

type AttributionRunRepository interface {
	Save(ctx context.Context, run *domain.AttributionRun) error
	GetLatestByModel(ctx context.Context, model domain.AttributionModel) (*domain.AttributionRun, error)
	ListByModel(ctx context.Context, model domain.AttributionModel, limit uint64) ([]*domain.AttributionRun, error)
}

type attributionRunRepository struct {
	conn postgres.Queryer
}

func NewAttributionRunRepository(conn postgres.Queryer) AttributionRunRepository {
	return &attributionRunRepository{
		conn: conn,
	}
}

// marshalNullable serializa slices vazios como NULL no jsonb
func marshalNullable[T any](items []T) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}

func buildSaveRunQuery(run *domain.AttributionRun) (string, []interface{}, error) {
	parameters, err := json.Marshal(run.Parameters)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar parâmetros")
	}
	channelCredits, err := marshalNullable(run.ChannelCredits)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar créditos por canal")
	}
	probabilisticCredits, err := marshalNullable(run.ProbabilisticCredits)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar créditos probabilísticos")
	}
	incrementalCredits, err := marshalNullable(run.IncrementalCredits)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao serializar créditos incrementais")
	}

	return squirrel.StatementBuilder.
		Insert(attributionRunsTable).
		Columns(
			"id", "model", "parameters", "channel_credits", "probabilistic_credits", "incremental_credits",
			"total_value", "conversions_considered", "conversions_attributed", "attributed_conversion_value",
			"started_at", "completed_at",
		).
		Values(
			run.ID,
			string(run.Model),
			parameters,
			channelCredits,
			probabilisticCredits,
			incrementalCredits,
			run.TotalValue,
			run.ConversionsConsidered,
			run.ConversionsAttributed,
			run.AttributedConversionValue,
			run.StartedAt,
			run.CompletedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *attributionRunRepository) Save(ctx context.Context, run *domain.AttributionRun) error {
	query, args, err := buildSaveRunQuery(run)
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao salvar execução %s", run.ID)
	}

	return nil
}

func buildListRunsQuery(model domain.AttributionModel, limit uint64) (string, []interface{}, error) {
	return squirrel.
		Select(attributionRunsColumns).
		From(attributionRunsTable).
		Where(squirrel.Eq{"model": string(model)}).
		OrderBy("completed_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// GetLatestByModel retorna nil quando o modelo ainda não foi executado
func (r *attributionRunRepository) GetLatestByModel(ctx context.Context, model domain.AttributionModel) (*domain.AttributionRun, error) {
	query, args, err := buildListRunsQuery(model, 1)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de execuções")
	}

	run, err := scanRun(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar última execução")
	}

	return run, nil
}

func (r *attributionRunRepository) ListByModel(ctx context.Context, model domain.AttributionModel, limit uint64) ([]*domain.AttributionRun, error) {
	query, args, err := buildListRunsQuery(model, limit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de execuções")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar execuções")
	}
	defer rows.Close()

	runs := make([]*domain.AttributionRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear execução")
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de execuções")
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.AttributionRun, error) {
	var (
		run                  domain.AttributionRun
		model                string
		parameters           []byte
		channelCredits       []byte
		probabilisticCredits []byte
		incrementalCredits   []byte
	)

	err := row.Scan(
		&run.ID,
		&model,
		&parameters,
		&channelCredits,
		&probabilisticCredits,
		&incrementalCredits,
		&run.TotalValue,
		&run.ConversionsConsidered,
		&run.ConversionsAttributed,
		&run.AttributedConversionValue,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Model = domain.AttributionModel(model)
	if err := decodeRunPayload(&run, parameters, channelCredits, probabilisticCredits, incrementalCredits); err != nil {
		return nil, err
	}

	return &run, nil
}

func decodeRunPayload(run *domain.AttributionRun, parameters, channelCredits, probabilisticCredits, incrementalCredits []byte) error {
	if len(parameters) > 0 {
		if err := json.Unmarshal(parameters, &run.Parameters); err != nil {
			return errors.Wrap(err, "erro ao desserializar parâmetros")
		}
	}
	if len(channelCredits) > 0 {
		if err := json.Unmarshal(channelCredits, &run.ChannelCredits); err != nil {
			return errors.Wrap(err, "erro ao desserializar créditos por canal")
		}
	}
	if len(probabilisticCredits) > 0 {
		if err := json.Unmarshal(probabilisticCredits, &run.ProbabilisticCredits); err != nil {
			return errors.Wrap(err, "erro ao desserializar créditos probabilísticos")
		}
	}
	if len(incrementalCredits) > 0 {
		if err := json.Unmarshal(incrementalCredits, &run.IncrementalCredits); err != nil {
			return errors.Wrap(err, "erro ao desserializar créditos incrementais")
		}
	}
	return nil
}

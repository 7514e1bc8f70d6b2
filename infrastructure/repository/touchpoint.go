package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/internal/domain"
)

const touchpointsTable = "touchpoints t"

type TouchpointRepository interface {
	List(ctx context.Context, filters *domain.AttributionFilters) ([]domain.Touchpoint, error)
}

type touchpointRepository struct {
	conn postgres.Queryer
}

func NewTouchpointRepository(conn postgres.Queryer) TouchpointRepository {
	return &touchpointRepository{
		conn: conn,
	}
}

// buildListTouchpointsQuery filtra apenas pelo fim do período: touchpoints anteriores
// ao início ainda podem preceder conversões dentro do período.
func buildListTouchpointsQuery(filters *domain.AttributionFilters) (string, []interface{}, error) {
	query := squirrel.
		Select("t.customer_id, t.channel, t.interaction_type, t.occurred_at").
		From(touchpointsTable).
		OrderBy("t.occurred_at ASC", "t.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil && filters.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"t.occurred_at": *filters.EndDate})
	}

	return query.ToSql()
}

func (r *touchpointRepository) List(ctx context.Context, filters *domain.AttributionFilters) ([]domain.Touchpoint, error) {
	query, args, err := buildListTouchpointsQuery(filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de touchpoints")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar touchpoints")
	}
	defer rows.Close()

	touchpoints := make([]domain.Touchpoint, 0)
	for rows.Next() {
		var tp domain.Touchpoint
		if err := rows.Scan(&tp.CustomerID, &tp.Channel, &tp.InteractionType, &tp.Timestamp); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear touchpoint")
		}
		touchpoints = append(touchpoints, tp)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de touchpoints")
	}

	return touchpoints, nil
}

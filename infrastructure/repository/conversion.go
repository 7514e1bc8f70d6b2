package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/internal/domain"
)

const conversionsTable = "conversions c"

type ConversionRepository interface {
	List(ctx context.Context, filters *domain.AttributionFilters) ([]domain.Conversion, error)
}

type conversionRepository struct {
	conn postgres.Queryer
}

func NewConversionRepository(conn postgres.Queryer) ConversionRepository {
	return &conversionRepository{
		conn: conn,
	}
}

func buildListConversionsQuery(filters *domain.AttributionFilters) (string, []interface{}, error) {
	query := squirrel.
		Select("c.customer_id, c.converted_at, c.conversion_value").
		From(conversionsTable).
		OrderBy("c.converted_at ASC", "c.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.StartDate != nil {
			query = query.Where(squirrel.GtOrEq{"c.converted_at": *filters.StartDate})
		}
		if filters.EndDate != nil {
			query = query.Where(squirrel.LtOrEq{"c.converted_at": *filters.EndDate})
		}
	}

	return query.ToSql()
}

func (r *conversionRepository) List(ctx context.Context, filters *domain.AttributionFilters) ([]domain.Conversion, error) {
	query, args, err := buildListConversionsQuery(filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de conversões")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar conversões")
	}
	defer rows.Close()

	conversions := make([]domain.Conversion, 0)
	for rows.Next() {
		var c domain.Conversion
		if err := rows.Scan(&c.CustomerID, &c.Timestamp, &c.ConversionValue); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear conversão")
		}
		conversions = append(conversions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de conversões")
	}

	return conversions, nil
}

package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
)

const controlGroupMembersTable = "control_group_members"

type ControlGroupRepository interface {
	ListCustomerIDs(ctx context.Context, groupName string) ([]string, error)
}

type controlGroupRepository struct {
	conn postgres.Queryer
}

func NewControlGroupRepository(conn postgres.Queryer) ControlGroupRepository {
	return &controlGroupRepository{
		conn: conn,
	}
}

func buildListMembersQuery(groupName string) (string, []interface{}, error) {
	return squirrel.
		Select("customer_id").
		From(controlGroupMembersTable).
		Where(squirrel.Eq{"group_name": groupName}).
		OrderBy("customer_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *controlGroupRepository) ListCustomerIDs(ctx context.Context, groupName string) ([]string, error) {
	query, args, err := buildListMembersQuery(groupName)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query do grupo de controle")
	}

	return r.queryIDs(ctx, query, args)
}

func (r *controlGroupRepository) queryIDs(ctx context.Context, query string, args []interface{}) ([]string, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar membros do grupo de controle")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear membro do grupo de controle")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de membros")
	}

	return ids, nil
}

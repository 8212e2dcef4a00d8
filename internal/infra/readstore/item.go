package readstore

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
)

const tableItems = "items"

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(dbtx db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: dbtx}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	query, args, err := db.Builder().
		From(tableItems).
		Select("id", "owner_id", "name", "description", "available").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err, infra.KindQueryBuild)
	}

	var view queries.ItemView
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&view.ID, &view.OwnerID, &view.Name, &view.Description, &view.Available)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return &view, nil
}

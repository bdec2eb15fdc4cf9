package inventoryRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"WarehouseGolang/internal/api/inventory"
	"WarehouseGolang/internal/entity"
	contextPkg "WarehouseGolang/pkg/context"
)

type CategoryDB struct {
	ID          int            `db:"id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

type LocationDB struct {
	ID          int            `db:"id"`
	ShelfNumber int            `db:"shelf_number"`
	Block       sql.NullString `db:"block"`
	Zone        sql.NullString `db:"zone"`
	Capacity    sql.NullInt64  `db:"capacity"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *categoriesRepository) GetByID(ctx context.Context, id int) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var category CategoryDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetCategoryByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("category GetByID named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Category{}, inventory.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("category GetByID execution err")
		return entity.Category{}, err
	}

	return entity.Category{
		ID:          category.ID,
		Name:        category.Name.String,
		Description: category.Description.String,
		CreatedAt:   category.CreatedAt,
	}, nil
}

func (r *locationsRepository) GetByID(ctx context.Context, id int) (entity.Location, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var location LocationDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetLocationByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("location GetByID named query preparation err")
		return entity.Location{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Location{}, inventory.ErrLocationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("location GetByID execution err")
		return entity.Location{}, err
	}

	return entity.Location{
		ID:          location.ID,
		ShelfNumber: location.ShelfNumber,
		Block:       location.Block.String,
		Zone:        location.Zone.String,
		Capacity:    int(location.Capacity.Int64),
		CreatedAt:   location.CreatedAt,
	}, nil
}

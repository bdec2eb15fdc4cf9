package inventoryRepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"WarehouseGolang/internal/api/inventory"
	"WarehouseGolang/internal/entity"
	contextPkg "WarehouseGolang/pkg/context"
)

type ProductDB struct {
	ID         int             `db:"id"`
	Name       sql.NullString  `db:"name"`
	SKU        sql.NullString  `db:"sku"`
	CategoryID int             `db:"category_id"`
	LocationID int             `db:"location_id"`
	Quantity   int             `db:"quantity"`
	Price      sql.NullFloat64 `db:"price"`
	Barcode    sql.NullString  `db:"barcode"`
	QRCode     sql.NullString  `db:"qr_code"`
	IsActive   bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

type ProductDetailDB struct {
	ProductDB
	CategoryName sql.NullString `db:"category_name"`
	ShelfNumber  sql.NullInt64  `db:"shelf_number"`
	Block        sql.NullString `db:"block"`
}

func (r *productsRepository) GetByQRCode(ctx context.Context, qrCode string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var product ProductDB

	argsKV := map[string]interface{}{
		"qr_code": qrCode,
	}

	query, args, err := sqlx.Named(queryGetProductByQRCode, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByQRCode named query preparation err")
		return entity.Product{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, inventory.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByQRCode execution err")
		return entity.Product{}, err
	}

	return r.makeProduct(product), nil
}

func (r *productsRepository) GetByID(ctx context.Context, id int) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var product ProductDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetProductByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Product{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, inventory.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Product{}, err
	}

	return r.makeProduct(product), nil
}

func (r *productsRepository) GetAllActive(ctx context.Context) ([]entity.ProductDetail, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var productsList []ProductDetailDB

	query, args, err := sqlx.Named(queryGetAllActiveProducts, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllActive named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &productsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllActive execution err")
		return nil, err
	}

	details := make([]entity.ProductDetail, 0, len(productsList))
	for _, productDB := range productsList {
		detail := entity.ProductDetail{
			Product:      r.makeProduct(productDB.ProductDB),
			CategoryName: productDB.CategoryName.String,
		}
		if productDB.ShelfNumber.Valid && productDB.Block.Valid {
			detail.LocationLabel = fmt.Sprintf("Shelf %d in Block %s", productDB.ShelfNumber.Int64, productDB.Block.String)
		}
		details = append(details, detail)
	}

	return details, nil
}

func (r *productsRepository) makeProduct(product ProductDB) entity.Product {
	return entity.Product{
		ID:         product.ID,
		Name:       product.Name.String,
		SKU:        product.SKU.String,
		CategoryID: product.CategoryID,
		LocationID: product.LocationID,
		Quantity:   product.Quantity,
		Price:      product.Price.Float64,
		Barcode:    product.Barcode.String,
		QRCode:     product.QRCode.String,
		IsActive:   product.IsActive,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

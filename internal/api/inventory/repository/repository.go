package inventoryRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"WarehouseGolang/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Products:   &productsRepository{q: sqlExecutor, log: r.log},
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Locations:  &locationsRepository{q: sqlExecutor, log: r.log},
		ScanLogs:   &scanLogsRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Products interface {
		GetByQRCode(ctx context.Context, qrCode string) (entity.Product, error)
		GetByID(ctx context.Context, id int) (entity.Product, error)
		GetAllActive(ctx context.Context) ([]entity.ProductDetail, error)
	}

	Categories interface {
		GetByID(ctx context.Context, id int) (entity.Category, error)
	}

	Locations interface {
		GetByID(ctx context.Context, id int) (entity.Location, error)
	}

	ScanLogs interface {
		Create(ctx context.Context, scanLog entity.ScanLog) error
		GetRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error)
	}

	Commit   func() error
	Rollback func() error
}

type productsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type locationsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type scanLogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

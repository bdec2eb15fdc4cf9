package inventoryRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"WarehouseGolang/internal/entity"
	contextPkg "WarehouseGolang/pkg/context"
)

type ScanRecordDB struct {
	ID                int64             `db:"id"`
	ProductID         sql.NullInt64     `db:"product_id"`
	QRData            string            `db:"qr_data"`
	ScannedLocationID sql.NullInt64     `db:"scanned_location_id"`
	IsCorrectLocation bool              `db:"is_correct_location"`
	Status            entity.ScanStatus `db:"status"`
	Message           string            `db:"message"`
	Timestamp         time.Time         `db:"timestamp"`
	ProductName       sql.NullString    `db:"product_name"`
}

func (r *scanLogsRepository) Create(ctx context.Context, scanLog entity.ScanLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	var productID, scannedLocationID sql.NullInt64
	if scanLog.ProductID != nil {
		productID = sql.NullInt64{Int64: int64(*scanLog.ProductID), Valid: true}
	}
	if scanLog.ScannedLocationID != nil {
		scannedLocationID = sql.NullInt64{Int64: int64(*scanLog.ScannedLocationID), Valid: true}
	}

	argsKV := map[string]interface{}{
		"product_id":          productID,
		"qr_data":             scanLog.QRData,
		"scanned_location_id": scannedLocationID,
		"is_correct_location": scanLog.IsCorrectLocation,
		"status":              scanLog.Status,
		"message":             scanLog.Message,
		"timestamp":           scanLog.Timestamp,
	}

	query, args, err := sqlx.Named(queryCreateScanLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("scan log Create named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("scan log Create execution err")
		return err
	}

	return nil
}

func (r *scanLogsRepository) GetRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var scanLogsList []ScanRecordDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetRecentScanLogs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("scan log GetRecent named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &scanLogsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("scan log GetRecent execution err")
		return nil, err
	}

	records := make([]entity.ScanRecord, 0, len(scanLogsList))
	for _, row := range scanLogsList {
		record := entity.ScanRecord{
			ScanLog: entity.ScanLog{
				ID:                row.ID,
				QRData:            row.QRData,
				IsCorrectLocation: row.IsCorrectLocation,
				Status:            row.Status,
				Message:           row.Message,
				Timestamp:         row.Timestamp,
			},
			ProductName: row.ProductName.String,
		}
		if row.ProductID.Valid {
			productID := int(row.ProductID.Int64)
			record.ProductID = &productID
		}
		if row.ScannedLocationID.Valid {
			locationID := int(row.ScannedLocationID.Int64)
			record.ScannedLocationID = &locationID
		}
		records = append(records, record)
	}

	return records, nil
}

package inventoryService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"WarehouseGolang/internal/api/inventory"
	contextPkg "WarehouseGolang/pkg/context"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

func (s *inventoryService) ListProducts(ctx context.Context) ([]inventory.ProductResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, inventory.ErrStoreUnavailable
	}

	details, err := repo.Products.GetAllActive(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list products")
		return nil, inventory.ErrStoreUnavailable
	}

	products := make([]inventory.ProductResponse, 0, len(details))
	for _, detail := range details {
		product := inventory.ProductResponse{
			ID:       detail.ID,
			Name:     detail.Name,
			SKU:      detail.SKU,
			QRCode:   detail.QRCode,
			Quantity: detail.Quantity,
			Price:    detail.Price,
		}
		if detail.CategoryName != "" {
			categoryName := detail.CategoryName
			product.Category = &categoryName
		}
		if detail.LocationLabel != "" {
			locationLabel := detail.LocationLabel
			product.Location = &locationLabel
		}
		products = append(products, product)
	}

	return products, nil
}

func (s *inventoryService) GetScanHistory(ctx context.Context, limit int) ([]inventory.ScanLogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	repo, err := s.inventoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, inventory.ErrStoreUnavailable
	}

	records, err := repo.ScanLogs.GetRecent(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get scan history")
		return nil, inventory.ErrStoreUnavailable
	}

	history := make([]inventory.ScanLogResponse, 0, len(records))
	for _, record := range records {
		entry := inventory.ScanLogResponse{
			ID:        record.ID,
			QRData:    record.QRData,
			Status:    string(record.Status),
			IsCorrect: record.IsCorrectLocation,
			Message:   record.Message,
			Timestamp: record.Timestamp,
		}
		if record.ProductName != "" {
			productName := record.ProductName
			entry.Product = &productName
		}
		history = append(history, entry)
	}

	return history, nil
}

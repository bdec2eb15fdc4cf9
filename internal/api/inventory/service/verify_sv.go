package inventoryService

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"WarehouseGolang/internal/api/inventory"
	inventoryRepository "WarehouseGolang/internal/api/inventory/repository"
	"WarehouseGolang/internal/entity"
	contextPkg "WarehouseGolang/pkg/context"
	"WarehouseGolang/pkg/qr"
	"WarehouseGolang/pkg/redis"
)

const (
	productCacheKeyPrefix = "product:qr:"
	productCacheTTL       = 5 * time.Minute

	invalidFormatLogMessage = "Invalid QR format. Expected: category/product/location"
	invalidFormatMessage    = "Invalid QR format"
	productNotFoundMessage  = "Product not found in database"
	unknownLocationLabel    = "Unknown"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// VerifyScan resolves a QR payload against the inventory and returns a
// verdict. Every verdict, including invalid and not_found, is persisted as a
// scan log row; only a store failure produces an error instead of a verdict.
func (s *inventoryService) VerifyScan(ctx context.Context, req inventory.VerifyQRRequest) (inventory.VerifyQRResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	qrData := strings.TrimSpace(req.QRData)
	if qrData == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Empty QR data")
		return inventory.VerifyQRResponse{}, inventory.ErrEmptyQRData
	}

	repo, err := s.inventoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
	}

	payload, err := qr.ParsePayload(qrData)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"qr_data":    qrData,
		}).Warn("Malformed QR payload")

		if err := s.persistScan(ctx, repo, entity.ScanLog{
			QRData:    qrData,
			Status:    entity.ScanStatusInvalid,
			Message:   invalidFormatLogMessage,
			Timestamp: time.Now(),
		}); err != nil {
			return inventory.VerifyQRResponse{}, err
		}

		return inventory.VerifyQRResponse{
			Status:  string(entity.ScanStatusInvalid),
			Message: invalidFormatMessage,
		}, nil
	}

	product, err := s.resolveProduct(ctx, repo, qrData, payload.ProductID)
	if err != nil {
		if !errors.Is(err, inventory.ErrProductNotFound) {
			return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
		}

		scanLog := entity.ScanLog{
			QRData:    qrData,
			Status:    entity.ScanStatusNotFound,
			Message:   productNotFoundMessage,
			Timestamp: time.Now(),
		}

		// Reference the scanned location only when it actually exists.
		if scannedLocation, locErr := repo.Locations.GetByID(ctx, payload.LocationID); locErr == nil {
			locationID := scannedLocation.ID
			scanLog.ScannedLocationID = &locationID
		} else if !errors.Is(locErr, inventory.ErrLocationNotFound) {
			return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
		}

		if err := s.persistScan(ctx, repo, scanLog); err != nil {
			return inventory.VerifyQRResponse{}, err
		}

		return inventory.VerifyQRResponse{
			Status:  string(entity.ScanStatusNotFound),
			Message: productNotFoundMessage,
			QRData:  qrData,
		}, nil
	}

	isCorrect := product.CategoryID == payload.CategoryID && product.LocationID == payload.LocationID

	category, err := s.lookupCategory(ctx, repo, payload.CategoryID)
	if err != nil {
		return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
	}
	expectedLocation, err := s.lookupLocation(ctx, repo, product.LocationID)
	if err != nil {
		return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
	}
	scannedLocation, err := s.lookupLocation(ctx, repo, payload.LocationID)
	if err != nil {
		return inventory.VerifyQRResponse{}, inventory.ErrStoreUnavailable
	}

	var status entity.ScanStatus
	var message string
	if isCorrect {
		status = entity.ScanStatusCorrect
		message = fmt.Sprintf("CORRECT: %s is at the right location", product.Name)
	} else {
		status = entity.ScanStatusMisplaced
		expectedLabel := unknownLocationLabel
		if expectedLocation != nil {
			expectedLabel = expectedLocation.FullLocation()
		}
		scannedLabel := unknownLocationLabel
		if scannedLocation != nil {
			scannedLabel = scannedLocation.FullLocation()
		}
		message = fmt.Sprintf("MISPLACED: %s should be at %s, but found at %s", product.Name, expectedLabel, scannedLabel)
	}

	productID := product.ID
	scannedLocationID := payload.LocationID
	if err := s.persistScan(ctx, repo, entity.ScanLog{
		ProductID:         &productID,
		QRData:            qrData,
		ScannedLocationID: &scannedLocationID,
		IsCorrectLocation: isCorrect,
		Status:            status,
		Message:           message,
		Timestamp:         time.Now(),
	}); err != nil {
		return inventory.VerifyQRResponse{}, err
	}

	if status == entity.ScanStatusMisplaced {
		s.notifyMisplaced(requestID, product.Name, message, expectedLocation, scannedLocation)
	}

	response := inventory.VerifyQRResponse{
		Status:    string(status),
		IsCorrect: isCorrect,
		Message:   message,
		Product: &inventory.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			SKU:      product.SKU,
			Quantity: product.Quantity,
			Price:    product.Price,
		},
	}
	if category != nil {
		response.Category = &inventory.CategorySummary{ID: category.ID, Name: category.Name}
	}
	if expectedLocation != nil {
		response.ExpectedLocation = &inventory.LocationSummary{
			ID:          expectedLocation.ID,
			Description: expectedLocation.FullLocation(),
		}
	}
	if scannedLocation != nil {
		response.ScannedLocation = &inventory.LocationSummary{
			ID:          scannedLocation.ID,
			Description: scannedLocation.FullLocation(),
		}
	}

	return response, nil
}

// resolveProduct looks the product up by the full QR payload first, then falls
// back to the embedded product ID. The cache fronts the qr_code lookup only.
func (s *inventoryService) resolveProduct(ctx context.Context, repo inventoryRepository.Client, qrData string, productID int) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productCacheKeyPrefix+qrData)
		if err == nil {
			var product entity.Product
			if err := json.UnmarshalFromString(cached, &product); err == nil {
				return product, nil
			}
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"qr_data":    qrData,
			}).Warn("Discarding undecodable cached product")
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Product cache lookup failed")
		}
	}

	product, err := repo.Products.GetByQRCode(ctx, qrData)
	if errors.Is(err, inventory.ErrProductNotFound) {
		product, err = repo.Products.GetByID(ctx, productID)
	}
	if err != nil {
		if !errors.Is(err, inventory.ErrProductNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to resolve product")
		}
		return entity.Product{}, err
	}

	if s.cache != nil {
		if encoded, err := json.MarshalToString(product); err == nil {
			if err := s.cache.Set(ctx, productCacheKeyPrefix+qrData, encoded, productCacheTTL); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to cache product")
			}
		}
	}

	return product, nil
}

func (s *inventoryService) lookupCategory(ctx context.Context, repo inventoryRepository.Client, id int) (*entity.Category, error) {
	category, err := repo.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventory.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (s *inventoryService) lookupLocation(ctx context.Context, repo inventoryRepository.Client, id int) (*entity.Location, error) {
	location, err := repo.Locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventory.ErrLocationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// persistScan writes the scan log row and pushes the event to dashboard
// clients. A write failure surfaces as a store error so the scanner retries.
func (s *inventoryService) persistScan(ctx context.Context, repo inventoryRepository.Client, scanLog entity.ScanLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := repo.ScanLogs.Create(ctx, scanLog); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to write scan log")
		return inventory.ErrStoreUnavailable
	}

	if s.publisher != nil {
		s.publisher.PublishScan(inventory.ScanEvent{
			Status:    string(scanLog.Status),
			IsCorrect: scanLog.IsCorrectLocation,
			Message:   scanLog.Message,
			QRData:    scanLog.QRData,
			Timestamp: scanLog.Timestamp,
		})
	}

	return nil
}

// notifyMisplaced sends the alert mail and uploads the evidence frame in the
// background. Both are best effort and never affect the verdict.
func (s *inventoryService) notifyMisplaced(requestID string, productName string, message string, expectedLocation *entity.Location, scannedLocation *entity.Location) {
	if s.mailer != nil {
		expectedLabel := unknownLocationLabel
		if expectedLocation != nil {
			expectedLabel = expectedLocation.FullLocation()
		}
		scannedLabel := unknownLocationLabel
		if scannedLocation != nil {
			scannedLabel = scannedLocation.FullLocation()
		}

		go func() {
			if err := s.mailer.SendMisplacedAlert(productName, expectedLabel, scannedLabel); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Failed to send misplaced alert mail")
			}
		}()
	}

	if s.s3 != nil && s.frames != nil {
		if frame, ok := s.frames.Latest(); ok {
			go func() {
				key, err := s.s3.UploadFrame("misplaced", frame)
				if err != nil {
					s.log.WithFields(logrus.Fields{
						"request_id": requestID,
						"error":      err.Error(),
					}).Error("Failed to upload evidence frame")
					return
				}

				url, err := s.s3.PresignUrl(key)
				if err != nil {
					url = key
				}

				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"key":        key,
					"url":        url,
					"message":    message,
				}).Info("Uploaded misplaced evidence frame")
			}()
		}
	}
}

package inventoryService

import (
	"WarehouseGolang/internal/api/inventory"
	inventoryRepository "WarehouseGolang/internal/api/inventory/repository"
	"WarehouseGolang/pkg/redis"
	"WarehouseGolang/pkg/s3"
	"WarehouseGolang/pkg/smtp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// FrameSource yields the most recent camera frame, if one has arrived.
type FrameSource interface {
	Latest() ([]byte, bool)
}

// ScanPublisher fans a scan event out to connected dashboard clients.
type ScanPublisher interface {
	PublishScan(event inventory.ScanEvent)
}

type IInventoryService interface {
	VerifyScan(ctx context.Context, req inventory.VerifyQRRequest) (inventory.VerifyQRResponse, error)
	ListProducts(ctx context.Context) ([]inventory.ProductResponse, error)
	GetScanHistory(ctx context.Context, limit int) ([]inventory.ScanLogResponse, error)
}

type inventoryService struct {
	log                 *logrus.Logger
	inventoryRepository inventoryRepository.Repository
	cache               redis.ICache
	mailer              smtp.IMailer
	s3                  s3.ItfS3
	frames              FrameSource
	publisher           ScanPublisher
}

// NewInventoryService wires the verification service. Cache, mailer, s3,
// frames and publisher may be nil; the service degrades to database-only
// behavior without them.
func NewInventoryService(
	log *logrus.Logger,
	ir inventoryRepository.Repository,
	cache redis.ICache,
	mailer smtp.IMailer,
	s3 s3.ItfS3,
	frames FrameSource,
	publisher ScanPublisher,
) IInventoryService {
	return &inventoryService{
		log:                 log,
		inventoryRepository: ir,
		cache:               cache,
		mailer:              mailer,
		s3:                  s3,
		frames:              frames,
		publisher:           publisher,
	}
}

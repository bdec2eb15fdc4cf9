package inventoryService

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarehouseGolang/internal/api/inventory"
	inventoryRepository "WarehouseGolang/internal/api/inventory/repository"
	"WarehouseGolang/internal/entity"
)

type fakeProducts struct {
	byQR map[string]entity.Product
	byID map[int]entity.Product
	err  error
}

func (f *fakeProducts) GetByQRCode(_ context.Context, qrCode string) (entity.Product, error) {
	if f.err != nil {
		return entity.Product{}, f.err
	}
	if product, ok := f.byQR[qrCode]; ok {
		return product, nil
	}
	return entity.Product{}, inventory.ErrProductNotFound
}

func (f *fakeProducts) GetByID(_ context.Context, id int) (entity.Product, error) {
	if f.err != nil {
		return entity.Product{}, f.err
	}
	if product, ok := f.byID[id]; ok {
		return product, nil
	}
	return entity.Product{}, inventory.ErrProductNotFound
}

func (f *fakeProducts) GetAllActive(_ context.Context) ([]entity.ProductDetail, error) {
	return nil, nil
}

type fakeCategories struct {
	byID map[int]entity.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id int) (entity.Category, error) {
	if category, ok := f.byID[id]; ok {
		return category, nil
	}
	return entity.Category{}, inventory.ErrCategoryNotFound
}

type fakeLocations struct {
	byID map[int]entity.Location
}

func (f *fakeLocations) GetByID(_ context.Context, id int) (entity.Location, error) {
	if location, ok := f.byID[id]; ok {
		return location, nil
	}
	return entity.Location{}, inventory.ErrLocationNotFound
}

type fakeScanLogs struct {
	rows      []entity.ScanLog
	createErr error
}

func (f *fakeScanLogs) Create(_ context.Context, scanLog entity.ScanLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, scanLog)
	return nil
}

func (f *fakeScanLogs) GetRecent(_ context.Context, limit int) ([]entity.ScanRecord, error) {
	records := make([]entity.ScanRecord, 0, limit)
	for i := len(f.rows) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, entity.ScanRecord{ScanLog: f.rows[i]})
	}
	return records, nil
}

type fakeRepository struct {
	products   *fakeProducts
	categories *fakeCategories
	locations  *fakeLocations
	scanLogs   *fakeScanLogs
}

func (f *fakeRepository) NewClient(_ bool) (inventoryRepository.Client, error) {
	return inventoryRepository.Client{
		Products:   f.products,
		Categories: f.categories,
		Locations:  f.locations,
		ScanLogs:   f.scanLogs,
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type capturingPublisher struct {
	events []inventory.ScanEvent
}

func (p *capturingPublisher) PublishScan(event inventory.ScanEvent) {
	p.events = append(p.events, event)
}

func newFakeRepository() *fakeRepository {
	widget := entity.Product{
		ID:         1,
		Name:       "Wireless Mouse",
		SKU:        "ELEC-001",
		CategoryID: 1,
		LocationID: 1,
		Quantity:   25,
		Price:      29.99,
		QRCode:     "1/1/1",
		IsActive:   true,
	}

	return &fakeRepository{
		products: &fakeProducts{
			byQR: map[string]entity.Product{"1/1/1": widget},
			byID: map[int]entity.Product{1: widget},
		},
		categories: &fakeCategories{
			byID: map[int]entity.Category{
				1: {ID: 1, Name: "Electronics"},
			},
		},
		locations: &fakeLocations{
			byID: map[int]entity.Location{
				1: {ID: 1, ShelfNumber: 1, Block: "A"},
				2: {ID: 2, ShelfNumber: 2, Block: "A"},
			},
		},
		scanLogs: &fakeScanLogs{},
	}
}

func newTestService(repo *fakeRepository, publisher ScanPublisher) IInventoryService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewInventoryService(log, repo, nil, nil, nil, nil, publisher)
}

func TestVerifyScanCorrect(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/1"})
	require.NoError(t, err)

	assert.Equal(t, "correct", resp.Status)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, "CORRECT: Wireless Mouse is at the right location", resp.Message)
	require.NotNil(t, resp.Product)
	assert.Equal(t, 1, resp.Product.ID)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Electronics", resp.Category.Name)
	require.NotNil(t, resp.ExpectedLocation)
	assert.Equal(t, "Shelf 1 in Block A", resp.ExpectedLocation.Description)
	require.NotNil(t, resp.ScannedLocation)
	assert.Equal(t, "Shelf 1 in Block A", resp.ScannedLocation.Description)

	require.Len(t, repo.scanLogs.rows, 1)
	row := repo.scanLogs.rows[0]
	assert.Equal(t, entity.ScanStatusCorrect, row.Status)
	assert.True(t, row.IsCorrectLocation)
	require.NotNil(t, row.ProductID)
	assert.Equal(t, 1, *row.ProductID)
	require.NotNil(t, row.ScannedLocationID)
	assert.Equal(t, 1, *row.ScannedLocationID)
}

func TestVerifyScanMisplaced(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/2"})
	require.NoError(t, err)

	assert.Equal(t, "misplaced", resp.Status)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, "MISPLACED: Wireless Mouse should be at Shelf 1 in Block A, but found at Shelf 2 in Block A", resp.Message)
	require.NotNil(t, resp.ScannedLocation)
	assert.Equal(t, "Shelf 2 in Block A", resp.ScannedLocation.Description)

	require.Len(t, repo.scanLogs.rows, 1)
	row := repo.scanLogs.rows[0]
	assert.Equal(t, entity.ScanStatusMisplaced, row.Status)
	assert.False(t, row.IsCorrectLocation)
	require.NotNil(t, row.ScannedLocationID)
	assert.Equal(t, 2, *row.ScannedLocationID)
}

func TestVerifyScanMisplacedUnknownScannedLocation(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/7"})
	require.NoError(t, err)

	assert.Equal(t, "misplaced", resp.Status)
	assert.Equal(t, "MISPLACED: Wireless Mouse should be at Shelf 1 in Block A, but found at Unknown", resp.Message)
	assert.Nil(t, resp.ScannedLocation)
}

func TestVerifyScanNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "99/99/99"})
	require.NoError(t, err)

	assert.Equal(t, "not_found", resp.Status)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, "Product not found in database", resp.Message)
	assert.Equal(t, "99/99/99", resp.QRData)
	assert.Nil(t, resp.Product)

	require.Len(t, repo.scanLogs.rows, 1)
	row := repo.scanLogs.rows[0]
	assert.Equal(t, entity.ScanStatusNotFound, row.Status)
	assert.Nil(t, row.ProductID)
	assert.Nil(t, row.ScannedLocationID)
}

func TestVerifyScanNotFoundKeepsExistingScannedLocation(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "5/42/2"})
	require.NoError(t, err)

	require.Len(t, repo.scanLogs.rows, 1)
	row := repo.scanLogs.rows[0]
	assert.Equal(t, entity.ScanStatusNotFound, row.Status)
	require.NotNil(t, row.ScannedLocationID)
	assert.Equal(t, 2, *row.ScannedLocationID)
}

func TestVerifyScanFallsBackToProductID(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	// qr_code column holds "1/1/1", so a scan at another shelf misses the
	// qr_code lookup and must resolve through the product ID instead.
	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/2"})
	require.NoError(t, err)

	require.NotNil(t, resp.Product)
	assert.Equal(t, 1, resp.Product.ID)
}

func TestVerifyScanInvalidFormat(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	resp, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "not-a-payload"})
	require.NoError(t, err)

	assert.Equal(t, "invalid", resp.Status)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, "Invalid QR format", resp.Message)

	require.Len(t, repo.scanLogs.rows, 1)
	row := repo.scanLogs.rows[0]
	assert.Equal(t, entity.ScanStatusInvalid, row.Status)
	assert.Equal(t, "Invalid QR format. Expected: category/product/location", row.Message)
	assert.Nil(t, row.ProductID)
	assert.Nil(t, row.ScannedLocationID)
}

func TestVerifyScanEmptyQRData(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "   "})
	assert.ErrorIs(t, err, inventory.ErrEmptyQRData)
	assert.Empty(t, repo.scanLogs.rows)
}

func TestVerifyScanEveryAttemptLogged(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	for _, qrData := range []string{"1/1/1", "1/1/2", "99/99/99", "garbage"} {
		_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: qrData})
		require.NoError(t, err)
	}

	assert.Len(t, repo.scanLogs.rows, 4)
}

func TestVerifyScanStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.scanLogs.createErr = errors.New("connection refused")
	svc := newTestService(repo, nil)

	_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/1"})
	assert.ErrorIs(t, err, inventory.ErrStoreUnavailable)
}

func TestVerifyScanProductLookupFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.products.err = errors.New("connection refused")
	svc := newTestService(repo, nil)

	_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/1"})
	assert.ErrorIs(t, err, inventory.ErrStoreUnavailable)
	assert.Empty(t, repo.scanLogs.rows)
}

func TestVerifyScanPublishesEvent(t *testing.T) {
	repo := newFakeRepository()
	publisher := &capturingPublisher{}
	svc := newTestService(repo, publisher)

	_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/2"})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "misplaced", event.Status)
	assert.Equal(t, "1/1/2", event.QRData)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
}

func TestGetScanHistoryLimits(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	for i := 0; i < 60; i++ {
		_, err := svc.VerifyScan(context.Background(), inventory.VerifyQRRequest{QRData: "1/1/1"})
		require.NoError(t, err)
	}

	history, err := svc.GetScanHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, history, 50)

	history, err = svc.GetScanHistory(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

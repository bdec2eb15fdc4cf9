package entity

import (
	"fmt"
	"time"
)

type ScanStatus string

const (
	ScanStatusCorrect   ScanStatus = "correct"
	ScanStatusMisplaced ScanStatus = "misplaced"
	ScanStatusNotFound  ScanStatus = "not_found"
	ScanStatusInvalid   ScanStatus = "invalid"
)

type Category struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Location struct {
	ID          int       `db:"id"`
	ShelfNumber int       `db:"shelf_number"`
	Block       string    `db:"block"`
	Zone        string    `db:"zone"`
	Capacity    int       `db:"capacity"`
	CreatedAt   time.Time `db:"created_at"`
}

// FullLocation is the display string used in verification messages and
// product listings.
func (l Location) FullLocation() string {
	return fmt.Sprintf("Shelf %d in Block %s", l.ShelfNumber, l.Block)
}

type Product struct {
	ID         int       `db:"id"`
	Name       string    `db:"name"`
	SKU        string    `db:"sku"`
	CategoryID int       `db:"category_id"`
	LocationID int       `db:"location_id"`
	Quantity   int       `db:"quantity"`
	Price      float64   `db:"price"`
	Barcode    string    `db:"barcode"`
	QRCode     string    `db:"qr_code"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ProductDetail is a product with its reference data resolved for listings.
// CategoryName and LocationLabel are empty when the reference row is missing.
type ProductDetail struct {
	Product
	CategoryName  string
	LocationLabel string
}

// ScanLog is append-only: one row per verification attempt, written for every
// verdict including invalid and not_found. ProductID and ScannedLocationID
// are nil when the payload could not be resolved.
type ScanLog struct {
	ID                int64      `db:"id"`
	ProductID         *int       `db:"product_id"`
	QRData            string     `db:"qr_data"`
	ScannedLocationID *int       `db:"scanned_location_id"`
	IsCorrectLocation bool       `db:"is_correct_location"`
	Status            ScanStatus `db:"status"`
	Message           string     `db:"message"`
	Timestamp         time.Time  `db:"timestamp"`
}

// ScanRecord is a scan log row with the product name resolved for history
// listings. ProductName is empty when the log has no product reference.
type ScanRecord struct {
	ScanLog
	ProductName string
}
